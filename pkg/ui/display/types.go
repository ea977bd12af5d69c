// Package display holds the view models shared by every renderer.
package display

import (
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// Resolution is the outcome of resolving one entry
type Resolution struct {
	Path  string      `json:"path"`
	Name  string      `json:"name"`
	Dir   bool        `json:"dir"`
	Mode  string      `json:"mode,omitempty"`
	Icon  *types.Icon `json:"icon"`
	Step  icons.Step  `json:"step"`
	Key   string      `json:"key,omitempty"`
	Facts []string    `json:"facts,omitempty"`
}

// Matched reports whether a rule applied
func (r Resolution) Matched() bool {
	return r.Icon != nil
}

// ResolveResult is the output of the resolve command
type ResolveResult struct {
	Entries []Resolution `json:"entries"`
}

// RuleSet is the merged rule listing. Source is the theme file merged over
// the preset, if any.
type RuleSet struct {
	Rules  []icons.Rule `json:"rules"`
	Stats  icons.Stats  `json:"stats"`
	Source string       `json:"source,omitempty"`
}

// CheckResult reports whether a theme builds. Details carries the structured
// fields of a build failure.
type CheckResult struct {
	Source  string                 `json:"source,omitempty"`
	OK      bool                   `json:"ok"`
	Stats   icons.Stats            `json:"stats"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewResolution builds a Resolution from an entry and its explanation
func NewResolution(e types.Entry, x icons.Explanation, facts []string) Resolution {
	return Resolution{
		Path:  e.Path(),
		Name:  e.Name(),
		Dir:   e.IsDir(),
		Icon:  x.Icon,
		Step:  x.Step,
		Key:   x.Key,
		Facts: facts,
	}
}
