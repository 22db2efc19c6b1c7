package hcl

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/justtree/internal/ast"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// set translates a `set` block. Setting names may use underscores in place
// of dashes, so `set "dotenv_load"` and `set "dotenv-load"` are the same.
func (d *decoder) set(block *hcl.Block) ast.Item {
	content, diags := block.Body.Content(setSchema)
	if !d.extend(diags) {
		return nil
	}

	name := labelName(block)
	kind, known := ast.LookupSetting(strings.ReplaceAll(name.Lexeme, "_", "-"))
	if !known {
		d.errorf(block.LabelRanges[0], "Unknown setting", "There is no setting named %q.", name.Lexeme)
		return nil
	}

	attr := content.Attributes["value"]
	val, diags := attr.Expr.Value(nil)
	if !d.extend(diags) {
		return nil
	}

	value, ok := d.settingValue(kind, val, attr.Expr.Range())
	if !ok {
		return nil
	}
	return &ast.Set{Name: name, Value: value}
}

func (d *decoder) settingValue(kind ast.SettingKind, val cty.Value, rng hcl.Range) (ast.Setting, bool) {
	switch kind.Class() {
	case ast.BoolClass:
		var b bool
		if !d.decodeValue(val, cty.Bool, &b, kind, rng) {
			return nil, false
		}
		return &ast.BoolSetting{Kind: kind, Value: b}, true

	case ast.StringClass:
		var s string
		if !d.decodeValue(val, cty.String, &s, kind, rng) {
			return nil, false
		}
		return &ast.StringSetting{Kind: kind, Value: s}, true

	case ast.ShellClass:
		var words []string
		if !d.decodeValue(val, cty.List(cty.String), &words, kind, rng) {
			return nil, false
		}
		if len(words) == 0 {
			d.errorf(rng, "Invalid setting value", "Setting %q needs at least a command.", kind.Keyword())
			return nil, false
		}
		return &ast.ShellSetting{Kind: kind, Command: words[0], Arguments: words[1:]}, true
	}

	d.errorf(rng, "Invalid setting", "Setting %q has no known value shape.", kind.Keyword())
	return nil, false
}

var errNullValue = errors.New("value must not be null")

// decodeValue converts val to want and stores it in target.
func (d *decoder) decodeValue(val cty.Value, want cty.Type, target any, kind ast.SettingKind, rng hcl.Range) bool {
	converted, err := convert.Convert(val, want)
	if err == nil && converted.IsNull() {
		err = errNullValue
	}
	if err == nil {
		err = gocty.FromCtyValue(converted, target)
	}
	if err != nil {
		d.errorf(rng, "Invalid setting value", "Setting %q expects %s: %s.", kind.Keyword(), want.FriendlyName(), err)
		return false
	}
	return true
}
