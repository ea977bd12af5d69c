package types

// Color is an opaque foreground colour attribute. The engine stores and
// returns it unmodified; an empty Color means "inherit".
type Color string

// Icon is the decoration attached to a rule.
type Icon struct {
	// Text is the short display token, usually a single glyph
	Text string `json:"text" yaml:"text" toml:"text"`

	// Fg is the optional foreground colour
	Fg Color `json:"fg,omitempty" yaml:"fg,omitempty" toml:"fg,omitempty"`
}

// HasFg reports whether the icon carries its own foreground colour
func (i Icon) HasFg() bool {
	return i.Fg != ""
}
