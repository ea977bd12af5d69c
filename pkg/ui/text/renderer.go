// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/iconrules/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ResolveResult:
		for _, e := range v.Entries {
			if err := r.resolution(e); err != nil {
				return err
			}
		}
		return nil
	case *display.RuleSet:
		return r.rules(v)
	case *display.CheckResult:
		return r.check(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// IconColumn is the text shown for an entry, or a blank when nothing matched
func IconColumn(e display.Resolution) string {
	if e.Icon == nil {
		return " "
	}
	return e.Icon.Text
}

func (r *Renderer) resolution(e display.Resolution) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", IconColumn(e), e.Path)
	return err
}

func (r *Renderer) rules(v *display.RuleSet) error {
	for _, rule := range v.Rules {
		line := fmt.Sprintf("%-5s %s %s", rule.Category, rule.Text, rule.Key)
		if rule.Fg != "" {
			line += " " + rule.Fg
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) check(v *display.CheckResult) error {
	if v.OK {
		_, err := fmt.Fprintf(r.output, "ok: %d rules\n", v.Stats.Total())
		return err
	}
	if _, err := fmt.Fprintf(r.output, "error: %s\n", v.Error); err != nil {
		return err
	}
	for _, k := range SortedKeys(v.Details) {
		if _, err := fmt.Fprintf(r.output, "  %s: %v\n", k, v.Details[k]); err != nil {
			return err
		}
	}
	return nil
}

// SortedKeys returns the keys of m in order
func SortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
