package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks terminal or text output from the destination
	FormatAuto Format = iota
	// FormatTerminal renders styled output with coloured icons
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
			WithDetail("format", s)
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectFormat determines the output format from the environment and the
// destination's terminal capabilities
func DetectFormat(output io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isTerminal(output) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// ColorProfile maps a colour mode (auto, always, never) to a termenv profile
// for output
func ColorProfile(mode string, output io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(mode) {
	case "always", "true", "yes":
		if p := termenv.EnvColorProfile(); p != termenv.Ascii {
			return p, nil
		}
		return termenv.ANSI256, nil
	case "never", "false", "no":
		return termenv.Ascii, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" || !isTerminal(output) {
			return termenv.Ascii, nil
		}
		return termenv.EnvColorProfile(), nil
	default:
		return termenv.Ascii, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", mode).
			WithDetail("color", mode)
	}
}
