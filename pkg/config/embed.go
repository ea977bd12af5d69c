package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/theme.toml
var defaultTheme []byte

// DefaultThemeContent returns the embedded preset theme
func DefaultThemeContent() string {
	return string(defaultTheme)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
