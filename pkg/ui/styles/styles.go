// Package styles defines the visual styling for terminal output.
//
// Styles have semantic names (Header, Path, Step, Muted...) and adaptive
// colours that follow the terminal background. They are declared in an
// embedded styles.yaml and bound to a lipgloss renderer, so the same theme
// can target stdout, a buffer or a forced colour profile.
package styles

import (
	_ "embed"
	"io"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Theme is a set of named styles bound to one lipgloss renderer
type Theme struct {
	r      *lipgloss.Renderer
	styles map[string]lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. A nil profile lets termenv
// detect one from w.
func NewRenderer(w io.Writer, profile *termenv.Profile) *lipgloss.Renderer {
	if profile == nil {
		return lipgloss.NewRenderer(w)
	}
	return lipgloss.NewRenderer(w, termenv.WithProfile(*profile))
}

// Default returns the embedded theme bound to r
func Default(r *lipgloss.Renderer) *Theme {
	t, err := Load(embeddedStyles, r)
	if err != nil {
		// the embedded file is part of the build
		panic(err)
	}
	return t
}

// Load parses a styles document and binds it to r
func Load(data []byte, r *lipgloss.Renderer) (*Theme, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	t := &Theme{r: r, styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		t.styles[name] = t.build(def, colors)
	}
	return t, nil
}

func (t *Theme) build(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := t.r.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		}
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	return style
}

// Has reports whether name is defined
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}

// Get returns the named style, or a plain one when name is not defined
func (t *Theme) Get(name string) lipgloss.Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return t.r.NewStyle()
}

// Render applies the named style to s
func (t *Theme) Render(name, s string) string {
	return t.Get(name).Render(s)
}

// Icon renders the icon text in its own foreground colour. Icons without a
// colour inherit the terminal's.
func (t *Theme) Icon(icon types.Icon) string {
	if !icon.HasFg() {
		return icon.Text
	}
	return t.r.NewStyle().Foreground(lipgloss.Color(icon.Fg)).Render(icon.Text)
}
