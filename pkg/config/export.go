package config

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// themeDoc is the top level of a theme file holding only icon rules
type themeDoc struct {
	Icon IconConfig `toml:"icon" yaml:"icon" json:"icon"`
}

// Encode writes ic as a theme document that Load and LoadBytes accept.
// format is toml, yaml or json.
func Encode(w io.Writer, ic IconConfig, format string) error {
	doc := themeDoc{Icon: ic}

	var err error
	switch strings.ToLower(format) {
	case "toml":
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		err = enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(doc)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported theme format: %s", format).
			WithDetail("format", format)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s theme", format)
	}
	return nil
}
