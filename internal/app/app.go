package app

import (
	"io"
	"log/slog"

	"github.com/vk/justtree/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Rendered trees go to
// outW and log records to logW, so the output stays machine-readable.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}
