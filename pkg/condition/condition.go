// Package condition parses and evaluates the boolean expressions used by
// conditional icon rules.
//
// # Syntax
//
// An expression is built from fact names joined by connectives:
//
//	exec                 a single fact
//	!dir                 negation, also spelled "not dir"
//	hidden & !dir        conjunction, also spelled "and"
//	link | orphan        disjunction, also spelled "or"
//	(link | sock) & exec grouping
//
// Negation binds tightest, then conjunction, then disjunction. Fact names
// are letters, digits, '_' and '-'; the keywords and/or/not are matched
// case-insensitively.
//
// # Evaluation
//
// Eval asks a FactFunc for each atom it needs. An atom the FactFunc cannot
// answer is Unknown, and Unknown flows through the connectives using
// three-valued logic: "false & unknown" is False and "true | unknown" is
// True, while "unknown & true" stays Unknown. Callers decide what Unknown
// means; the icon resolver treats anything but True as a miss.
package condition

import (
	"sort"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
)

// FactFunc answers a fact lookup. known is false when name is not a fact
// the caller can answer.
type FactFunc func(name string) (value bool, known bool)

// Condition is a parsed expression. It is immutable and safe for
// concurrent use.
type Condition struct {
	src  string
	root node
}

// Parse compiles s into a Condition
func Parse(s string) (*Condition, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return nil, errors.New(errors.ErrConditionInvalid, "empty condition")
	}

	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	rpn, err := toRPN(toks)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConditionInvalid, "invalid condition %q", src).
			WithDetail("condition", src)
	}

	root, err := build(rpn)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConditionInvalid, "invalid condition %q", src).
			WithDetail("condition", src)
	}

	return &Condition{src: src, root: root}, nil
}

// MustParse is Parse for expressions known to be valid, such as presets
func MustParse(s string) *Condition {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Eval evaluates the condition against f
func (c *Condition) Eval(f FactFunc) Truth {
	return c.root.eval(f)
}

// String returns the source text, trimmed
func (c *Condition) String() string {
	return c.src
}

// Atoms returns the distinct fact names the condition refers to, sorted
func (c *Condition) Atoms() []string {
	set := map[string]struct{}{}
	c.root.atoms(set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MarshalText returns the source text so conditions round-trip through
// TOML, YAML and JSON encoders
func (c *Condition) MarshalText() ([]byte, error) {
	return []byte(c.src), nil
}

// UnmarshalText parses text into c
func (c *Condition) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// FromMap adapts a plain map to a FactFunc; names absent from m are unknown
func FromMap(m map[string]bool) FactFunc {
	return func(name string) (bool, bool) {
		v, ok := m[name]
		return v, ok
	}
}

type node interface {
	eval(f FactFunc) Truth
	atoms(set map[string]struct{})
}

type atomNode struct{ name string }

func (n atomNode) eval(f FactFunc) Truth {
	v, known := f(n.name)
	if !known {
		return Unknown
	}
	return Of(v)
}

func (n atomNode) atoms(set map[string]struct{}) { set[n.name] = struct{}{} }

type notNode struct{ x node }

func (n notNode) eval(f FactFunc) Truth { return n.x.eval(f).Not() }

func (n notNode) atoms(set map[string]struct{}) { n.x.atoms(set) }

type andNode struct{ l, r node }

func (n andNode) eval(f FactFunc) Truth {
	l := n.l.eval(f)
	if l == False {
		return False
	}
	return l.And(n.r.eval(f))
}

func (n andNode) atoms(set map[string]struct{}) {
	n.l.atoms(set)
	n.r.atoms(set)
}

type orNode struct{ l, r node }

func (n orNode) eval(f FactFunc) Truth {
	l := n.l.eval(f)
	if l == True {
		return True
	}
	return l.Or(n.r.eval(f))
}

func (n orNode) atoms(set map[string]struct{}) {
	n.l.atoms(set)
	n.r.atoms(set)
}
