// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/arthur-debert/iconrules/pkg/ui/display"
	"github.com/arthur-debert/iconrules/pkg/ui/styles"
	"github.com/arthur-debert/iconrules/pkg/ui/text"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
	theme  *styles.Theme
}

// New creates a terminal renderer writing to w with the given colour profile
func New(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{
		output: w,
		theme:  styles.Default(styles.NewRenderer(w, &profile)),
	}
}

// RenderResult renders any result type with rich terminal formatting
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

func (r *Renderer) resolution(e display.Resolution) error {
	icon := " "
	if e.Icon != nil {
		icon = r.theme.Icon(*e.Icon)
	}
	name := e.Path
	if e.Dir {
		name = r.theme.Render("Path", name)
	}
	_, err := fmt.Fprintf(r.output, "%s %s\n", icon, name)
	return err
}

func (r *Renderer) rules(v *display.RuleSet) error {
	if v.Source != "" {
		if _, err := fmt.Fprintln(r.output, r.theme.Render("Muted", "theme: "+v.Source)); err != nil {
			return err
		}
	}

	data := [][]string{{"Category", "Icon", "Key", "Fg"}}
	for _, rule := range v.Rules {
		icon := r.theme.Icon(types.Icon{Text: rule.Text, Fg: types.Color(rule.Fg)})
		data = append(data, []string{rule.Category, icon, rule.Key, rule.Fg})
	}

	if err := pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(r.output).
		Render(); err != nil {
		return err
	}

	s := v.Stats
	summary := fmt.Sprintf("%d rules: %d globs, %d dirs, %d files, %d exts, %d conds",
		s.Total(), s.Globs, s.Dirs, s.Files, s.Exts, s.Conds)
	_, err := fmt.Fprintln(r.output, r.theme.Render("Muted", summary))
	return err
}

func (r *Renderer) check(v *display.CheckResult) error {
	if v.OK {
		_, err := fmt.Fprintf(r.output, "%s %d rules\n",
			r.theme.Render("Success", "ok"), v.Stats.Total())
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.theme.Render("Error", "error"), v.Error)
	for _, k := range text.SortedKeys(v.Details) {
		fmt.Fprintf(&b, "  %s %v\n", r.theme.Render("Key", k+":"), v.Details[k])
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.theme.Render("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
