package app

import "errors"

// Output formats accepted by Config.Format.
const (
	FormatSexpr = "sexpr"
	FormatJSON  = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path   string // .hcl file or directory
	Format string

	// Check compares each rendering with its golden file; Update rewrites
	// the golden files instead.
	Check  bool
	Update bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	if cfg.Check && cfg.Update {
		return nil, errors.New("check and update cannot be used together")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatSexpr
	case FormatSexpr, FormatJSON:
	default:
		return nil, errors.New("invalid format: must be 'sexpr' or 'json'")
	}

	return &cfg, nil
}
