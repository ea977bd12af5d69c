// Package pattern implements the glob patterns used by icon glob rules.
//
// Patterns follow these conventions:
//
//   - `*.tmp` - matched against the entry's base name
//   - `src/**/*.go` - a pattern containing '/' is matched against the whole path
//   - `*/` or `node_modules/` - a trailing slash makes the pattern match
//     directories only; without it the pattern matches non-directories only
//   - `**` crosses path separators, `*` and `?` do not
//   - `[abc]`, `[!abc]`, `{a,b}` character classes and alternatives
//
// Paths are compared with '/' separators on every platform.
package pattern

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/gobwas/glob"
)

// Pattern is a compiled glob. It is immutable and safe for concurrent use.
type Pattern struct {
	raw      string
	g        glob.Glob
	dirOnly  bool
	fullPath bool
}

// Parse compiles raw into a Pattern
func Parse(raw string) (*Pattern, error) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty pattern")
	}

	dirOnly := strings.HasSuffix(expr, "/")
	if dirOnly {
		expr = strings.TrimRight(expr, "/")
		if expr == "" {
			return nil, errors.Newf(errors.ErrPatternInvalid, "pattern %q has no name part", raw).
				WithDetail("pattern", raw)
		}
	}

	fullPath := strings.Contains(expr, "/")

	g, err := glob.Compile(expr, '/')
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid glob %q", raw).
			WithDetail("pattern", raw)
	}

	return &Pattern{
		raw:      raw,
		g:        g,
		dirOnly:  dirOnly,
		fullPath: fullPath,
	}, nil
}

// MustParse is Parse for patterns known to be valid
func MustParse(raw string) *Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the entry at path, a directory when isDir is set,
// matches the pattern
func (p *Pattern) Match(path string, isDir bool) bool {
	if isDir != p.dirOnly {
		return false
	}

	subject := filepath.ToSlash(path)
	if len(subject) > 1 {
		subject = strings.TrimRight(subject, "/")
	}
	if !p.fullPath {
		if i := strings.LastIndexByte(subject, '/'); i >= 0 && i < len(subject)-1 {
			subject = subject[i+1:]
		}
	}
	return p.g.Match(subject)
}

// DirOnly reports whether the pattern only matches directories
func (p *Pattern) DirOnly() bool {
	return p.dirOnly
}

// String returns the pattern as configured
func (p *Pattern) String() string {
	return p.raw
}

// MarshalText returns the pattern as configured
func (p *Pattern) MarshalText() ([]byte, error) {
	return []byte(p.raw), nil
}

// UnmarshalText compiles text into p
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
