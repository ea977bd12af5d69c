// Package ui renders command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/ui/json"
	"github.com/arthur-debert/iconrules/pkg/ui/terminal"
	"github.com/arthur-debert/iconrules/pkg/ui/text"
	"github.com/muesli/termenv"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a result from pkg/ui/display
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto is resolved against
// output; profile controls colour for terminal output.
func NewRenderer(format Format, output io.Writer, profile termenv.Profile) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output, profile)
	case FormatTerminal:
		return terminal.New(output, profile), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
