package icons

import (
	"strings"

	"github.com/arthur-debert/iconrules/pkg/condition"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// Step names the stage of the cascade that produced a match
type Step string

const (
	StepGlob Step = "glob"
	StepDir  Step = "dir"
	StepFile Step = "file"
	StepExt  Step = "ext"
	StepCond Step = "cond"
	StepNone Step = "none"
)

// Explanation describes how an entry was resolved
type Explanation struct {
	Step Step `json:"step" yaml:"step"`
	// Key is the glob pattern, map key, extension or condition that hit
	Key  string      `json:"key,omitempty" yaml:"key,omitempty"`
	Icon *types.Icon `json:"icon,omitempty" yaml:"icon,omitempty"`
	// Facts holds the facts consulted by conditional rules, if any ran
	Facts map[string]string `json:"facts,omitempty" yaml:"facts,omitempty"`
}

// Matched reports whether any rule applied
func (e Explanation) Matched() bool {
	return e.Icon != nil
}

type stepFunc func(i *Icons, e types.Entry, x *Explanation) bool

// cascade is fixed; a step returns true when it filled in x
var cascade = []stepFunc{
	(*Icons).matchGlob,
	(*Icons).matchName,
	(*Icons).matchExt,
	(*Icons).matchCond,
}

// Match returns the icon for e, or false when no rule applies
func (i *Icons) Match(e types.Entry) (types.Icon, bool) {
	x := i.Explain(e)
	if x.Icon == nil {
		return types.Icon{}, false
	}
	return *x.Icon, true
}

// Explain runs the cascade and reports which step matched
func (i *Icons) Explain(e types.Entry) Explanation {
	var x Explanation
	for _, step := range cascade {
		if step(i, e, &x) {
			i.logger.Trace().
				Str("name", e.Name()).
				Str("step", string(x.Step)).
				Str("key", x.Key).
				Msg("Matched icon")
			return x
		}
	}
	x.Step = StepNone
	i.logger.Trace().Str("name", e.Name()).Msg("No icon matched")
	return x
}

func (i *Icons) matchGlob(e types.Entry, x *Explanation) bool {
	if len(i.globs) == 0 {
		return false
	}
	path := e.Path()
	if path == "" {
		path = e.Name()
	}
	isDir := e.IsDir()
	for idx := range i.globs {
		r := &i.globs[idx]
		if r.pattern.Match(path, isDir) {
			icon := r.icon
			x.Step, x.Key, x.Icon = StepGlob, r.pattern.String(), &icon
			return true
		}
	}
	return false
}

func (i *Icons) matchName(e types.Entry, x *Explanation) bool {
	m, step := i.files, StepFile
	if e.IsDir() {
		m, step = i.dirs, StepDir
	}
	key, icon, ok := lookupFolded(m, e.Name())
	if !ok {
		return false
	}
	x.Step, x.Key, x.Icon = step, key, &icon
	return true
}

func (i *Icons) matchExt(e types.Entry, x *Explanation) bool {
	if e.IsDir() {
		return false
	}
	path := e.Path()
	if path == "" {
		path = e.Name()
	}
	ext, ok := Extension(path)
	if !ok {
		return false
	}
	key, icon, ok := lookupFolded(i.exts, ext)
	if !ok {
		return false
	}
	x.Step, x.Key, x.Icon = StepExt, key, &icon
	return true
}

func (i *Icons) matchCond(e types.Entry, x *Explanation) bool {
	if len(i.conds) == 0 {
		return false
	}
	seen := map[string]string{}
	facts := func(name string) (bool, bool) {
		v, known := entryFact(e, name)
		switch {
		case !known:
			seen[name] = condition.Unknown.String()
		default:
			seen[name] = condition.Of(v).String()
		}
		return v, known
	}
	for idx := range i.conds {
		r := &i.conds[idx]
		if r.cond.Eval(facts).IsTrue() {
			icon := r.icon
			x.Step, x.Key, x.Icon = StepCond, r.cond.String(), &icon
			x.Facts = seen
			return true
		}
	}
	x.Facts = seen
	return false
}

// entryFact answers "dir" from the entry kind and defers everything else to
// the entry itself
func entryFact(e types.Entry, name string) (bool, bool) {
	if name == types.FactDir {
		return e.IsDir(), true
	}
	return e.Has(name)
}

// lookupFolded tries key as given, then ASCII-lowercased
func lookupFolded(m map[string]types.Icon, key string) (string, types.Icon, bool) {
	if icon, ok := m[key]; ok {
		return key, icon, true
	}
	lower := asciiLower(key)
	if lower == key {
		return "", types.Icon{}, false
	}
	icon, ok := m[lower]
	return lower, icon, ok
}

// asciiLower maps 'A'..'Z' to lower case and leaves every other byte alone,
// so non-ASCII names are never folded
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// Extension returns the text after the last '.' of the final path element.
// Names without a dot, and dotfiles such as ".bashrc" whose only dot leads,
// have no extension. A trailing dot yields an empty extension. "." and ".."
// name no file and have none either.
func Extension(name string) (string, bool) {
	name = strings.TrimRight(name, "/")
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		name = name[slash+1:]
	}
	if name == ".." {
		return "", false
	}
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return "", false
	}
	return name[dot+1:], true
}
