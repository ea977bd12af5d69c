// Test Type: Unit Test
// Description: Tests for rule store construction and the resolver cascade

package icons_test

import (
	"sync"
	"testing"

	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name  string
	path  string
	dir   bool
	facts map[string]bool
}

func (e entry) Name() string { return e.name }
func (e entry) IsDir() bool  { return e.dir }
func (e entry) Path() string { return e.path }

func (e entry) Has(name string) (bool, bool) {
	v, ok := e.facts[name]
	return v, ok
}

func file(path string) entry {
	return entry{name: baseName(path), path: path, facts: map[string]bool{}}
}

func dir(path string) entry {
	return entry{name: baseName(path), path: path, dir: true, facts: map[string]bool{}}
}

func (e entry) with(facts map[string]bool) entry {
	e.facts = facts
	return e
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

func ie(name, text string) config.IconEntry {
	return config.IconEntry{Name: name, Text: text}
}

func cond(expr, text string) config.IconEntry {
	return config.IconEntry{If: expr, Text: text}
}

func build(t *testing.T, cfg config.IconConfig) *icons.Icons {
	t.Helper()
	store, err := icons.Build(cfg)
	require.NoError(t, err)
	return store
}

func text(t *testing.T, store *icons.Icons, e types.Entry) string {
	t.Helper()
	icon, ok := store.Match(e)
	if !ok {
		return ""
	}
	return icon.Text
}

func TestBuild_FirstWinsAcrossTiers(t *testing.T) {
	store := build(t, config.IconConfig{
		PrependDirs: []config.IconEntry{ie("lib", "P")},
		Dirs:        []config.IconEntry{ie("src", "📁"), ie("lib", "B"), ie("src", "dup")},
		AppendDirs:  []config.IconEntry{ie("src", "📦"), ie("bin", "A")},
	})

	assert.Equal(t, "📁", text(t, store, dir("src")), "append never shadows base")
	assert.Equal(t, "P", text(t, store, dir("lib")), "prepend shadows base")
	assert.Equal(t, "A", text(t, store, dir("bin")))
	assert.Equal(t, 3, store.Stats().Dirs)
}

func TestBuild_OrderedCategoriesKeepTierOrder(t *testing.T) {
	store := build(t, config.IconConfig{
		PrependGlobs: []config.IconEntry{ie("*.log", "P")},
		Globs:        []config.IconEntry{ie("*.log", "B"), ie("*.tmp", "T")},
		AppendGlobs:  []config.IconEntry{ie("*", "A")},
		PrependConds: []config.IconEntry{cond("hidden", "H")},
		Conds:        []config.IconEntry{cond("exec", "X")},
	})

	assert.Equal(t, "P", text(t, store, file("x.log")))
	assert.Equal(t, "T", text(t, store, file("x.tmp")))
	assert.Equal(t, "A", text(t, store, file("other")))

	var keys []string
	for _, r := range store.Rules() {
		keys = append(keys, r.Category+":"+r.Key)
	}
	assert.Equal(t, []string{
		"globs:*.log", "globs:*.log", "globs:*.tmp", "globs:*",
		"conds:hidden", "conds:exec",
	}, keys)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.IconConfig
		category string
		index    int
	}{
		{
			name:     "bad glob",
			cfg:      config.IconConfig{Globs: []config.IconEntry{ie("ok*", "a"), ie("[a-", "b")}},
			category: "globs",
			index:    1,
		},
		{
			name:     "bad append condition",
			cfg:      config.IconConfig{AppendConds: []config.IconEntry{cond("exec &", "x")}},
			category: "append_conds",
			index:    0,
		},
		{
			name:     "missing name",
			cfg:      config.IconConfig{Files: []config.IconEntry{ie("a", "A"), ie("", "B")}},
			category: "files",
			index:    1,
		},
		{
			name:     "condition given as name",
			cfg:      config.IconConfig{Conds: []config.IconEntry{ie("exec", "X")}},
			category: "conds",
			index:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := icons.Build(tt.cfg)
			assert.Nil(t, store, "no partial store on failure")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)

			details := errors.GetErrorDetails(err)
			assert.Equal(t, tt.category, details["category"])
			assert.Equal(t, tt.index, details["index"])
		})
	}
}

func TestBuild_EmptyTextIsValid(t *testing.T) {
	store := build(t, config.IconConfig{
		Exts:  []config.IconEntry{ie("txt", "")},
		Conds: []config.IconEntry{cond("exec", "")},
	})

	icon, ok := store.Match(file("notes.txt"))
	assert.True(t, ok)
	assert.Equal(t, "", icon.Text)
	assert.Equal(t, icons.StepExt, store.Explain(file("notes.txt")).Step)

	_, ok = store.Match(file("run").with(map[string]bool{"exec": true}))
	assert.True(t, ok)
}

func TestMatch_CascadePriority(t *testing.T) {
	store := build(t, config.IconConfig{
		Globs: []config.IconEntry{ie("*.tmp", "🗑")},
		Files: []config.IconEntry{ie("Makefile.go", "name")},
		Exts:  []config.IconEntry{ie("tmp", "📄"), ie("go", "ext")},
		Conds: []config.IconEntry{cond("!dir", "cond")},
	})

	tests := []struct {
		entry entry
		want  string
		step  icons.Step
	}{
		{file("a/b.tmp"), "🗑", icons.StepGlob},
		{file("Makefile.go"), "name", icons.StepFile},
		{file("main.go"), "ext", icons.StepExt},
		{file("README"), "cond", icons.StepCond},
		{dir("pkg.go"), "", icons.StepNone},
	}

	for _, tt := range tests {
		t.Run(tt.entry.path, func(t *testing.T) {
			x := store.Explain(tt.entry)
			assert.Equal(t, tt.step, x.Step)
			assert.Equal(t, tt.want, text(t, store, tt.entry))
		})
	}
}

func TestMatch_CaseFoldFallback(t *testing.T) {
	store := build(t, config.IconConfig{
		Files: []config.IconEntry{ie("README", "upper"), ie("readme", "lower"), ie("license", "lic")},
		Dirs:  []config.IconEntry{ie("docs", "D")},
		Exts:  []config.IconEntry{ie("jpg", "img"), ie("MD", "MD")},
	})

	assert.Equal(t, "upper", text(t, store, file("README")), "exact key wins over folded")
	assert.Equal(t, "lower", text(t, store, file("readme")))
	assert.Equal(t, "lower", text(t, store, file("ReadMe")))
	assert.Equal(t, "lic", text(t, store, file("LICENSE")))
	assert.Equal(t, "D", text(t, store, dir("DOCS")))
	assert.Equal(t, "img", text(t, store, file("photo.JPG")))
	assert.Equal(t, "MD", text(t, store, file("notes.MD")))
	assert.Equal(t, "", text(t, store, file("notes.md")), "folding only lowers the query")

	x := store.Explain(file("LICENSE"))
	assert.Equal(t, "license", x.Key)
}

func TestMatch_CaseFoldIsASCIIOnly(t *testing.T) {
	store := build(t, config.IconConfig{
		Files: []config.IconEntry{ie("Ärger", "A"), ie("key", "K")},
	})

	assert.Equal(t, "A", text(t, store, file("ÄRGER")), "ASCII letters fold around a non-ASCII one")
	assert.Equal(t, "", text(t, store, file("ärger")), "non-ASCII letters are never folded")
	assert.Equal(t, "K", text(t, store, file("KEY")))
	assert.Equal(t, "", text(t, store, file("\u212Aey")), "Kelvin sign is not K")
}

func TestMatch_DirsAndFilesAreSeparate(t *testing.T) {
	store := build(t, config.IconConfig{
		Dirs:  []config.IconEntry{ie("build", "dir")},
		Files: []config.IconEntry{ie("build", "file")},
		Exts:  []config.IconEntry{ie("d", "ext")},
	})

	assert.Equal(t, "dir", text(t, store, dir("build")))
	assert.Equal(t, "file", text(t, store, file("build")))
	assert.Equal(t, "", text(t, store, dir("conf.d")), "extensions never apply to directories")
	assert.Equal(t, "ext", text(t, store, file("conf.d")))
}

func TestMatch_GlobDirectoryFlag(t *testing.T) {
	store := build(t, config.IconConfig{
		Globs: []config.IconEntry{ie("node_modules/", "nm"), ie("**/testdata/*.golden", "gold"), ie("*.lock", "lock")},
	})

	assert.Equal(t, "nm", text(t, store, dir("web/node_modules")))
	assert.Equal(t, "", text(t, store, file("web/node_modules")))
	assert.Equal(t, "gold", text(t, store, file("pkg/ui/testdata/out.golden")))
	assert.Equal(t, "lock", text(t, store, file("deep/go.lock")))
	assert.Equal(t, "", text(t, store, dir("go.lock")))
}

func TestMatch_Conditions(t *testing.T) {
	store := build(t, config.IconConfig{
		Conds: []config.IconEntry{
			cond("exec", "⚙"),
			cond("hidden", "👻"),
			cond("bogus & hidden", "never"),
			cond("bogus | link", "link"),
			cond("dir", "dir"),
		},
	})

	both := file("run.sh").with(map[string]bool{"exec": true, "hidden": true})
	assert.Equal(t, "⚙", text(t, store, both), "first matching condition wins")

	hidden := file(".env").with(map[string]bool{"exec": false, "hidden": true})
	assert.Equal(t, "👻", text(t, store, hidden))

	link := file("l").with(map[string]bool{"exec": false, "hidden": false, "link": true})
	assert.Equal(t, "link", text(t, store, link), "known true decides an or with an unknown")

	assert.Equal(t, "dir", text(t, store, dir("x")), "dir comes from the entry kind")

	plain := file("x").with(map[string]bool{"exec": false, "hidden": false, "link": false})
	_, ok := store.Match(plain)
	assert.False(t, ok)

	x := store.Explain(plain)
	assert.Equal(t, icons.StepNone, x.Step)
	assert.Equal(t, "unknown", x.Facts["bogus"])
	assert.Equal(t, "false", x.Facts["exec"])
}

func TestMatch_UnknownFactsNeverMatch(t *testing.T) {
	store := build(t, config.IconConfig{
		Conds: []config.IconEntry{cond("!sticky", "not-sticky"), cond("sticky & bogus", "never")},
	})

	// entry that cannot answer "sticky"
	e := file("x").with(map[string]bool{})
	_, ok := store.Match(e)
	assert.False(t, ok)
}

func TestMatch_NoRules(t *testing.T) {
	store := build(t, config.IconConfig{})

	icon, ok := store.Match(file("anything.go"))
	assert.False(t, ok)
	assert.Equal(t, types.Icon{}, icon)
	assert.False(t, store.Explain(dir("d")).Matched())
	assert.Equal(t, 0, store.Stats().Total())
}

func TestMatch_ColorIsPassedThrough(t *testing.T) {
	store := build(t, config.IconConfig{
		Exts: []config.IconEntry{{Name: "rs", Text: "R", Fg: "#dea584"}, ie("go", "G")},
	})

	icon, ok := store.Match(file("main.rs"))
	require.True(t, ok)
	assert.Equal(t, types.Icon{Text: "R", Fg: "#dea584"}, icon)
	assert.True(t, icon.HasFg())

	icon, ok = store.Match(file("main.go"))
	require.True(t, ok)
	assert.False(t, icon.HasFg())
}

func TestMatch_Idempotent(t *testing.T) {
	store := build(t, config.IconConfig{
		Globs: []config.IconEntry{ie("*.tmp", "🗑")},
		Exts:  []config.IconEntry{ie("tmp", "📄")},
	})

	e := file("a/b.tmp")
	first, ok1 := store.Match(e)
	second, ok2 := store.Match(e)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, "🗑", first.Text)
}

func TestMatch_Concurrent(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	store := icons.MustBuild(cfg.Icon)

	entries := []entry{file("main.go"), dir(".git"), file("Makefile"), file("x").with(map[string]bool{"exec": true})}
	want := make([]string, len(entries))
	for i, e := range entries {
		want[i] = text(t, store, e)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				e := entries[j%len(entries)]
				icon, _ := store.Match(e)
				assert.Equal(t, want[j%len(entries)], icon.Text)
			}
		}()
	}
	wg.Wait()
}

func TestPreset(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	store := build(t, cfg.Icon)

	assert.Equal(t, icons.StepDir, store.Explain(dir(".git")).Step)
	assert.Equal(t, icons.StepExt, store.Explain(file("main.go")).Step)
	assert.Equal(t, icons.StepCond, store.Explain(file("unknown-thing")).Step, "!dir catches plain files")
	assert.Equal(t, icons.StepCond, store.Explain(dir("unknown-dir")).Step)
}

func TestExport_RoundTrip(t *testing.T) {
	cfg := config.IconConfig{
		PrependGlobs: []config.IconEntry{ie("*.tmp", "T")},
		Dirs:         []config.IconEntry{ie("src", "S")},
		AppendDirs:   []config.IconEntry{ie("src", "shadowed"), ie("bin", "B")},
		Files:        []config.IconEntry{ie("README", "R")},
		Exts:         []config.IconEntry{{Name: "go", Text: "G", Fg: "#00add8"}},
		Conds:        []config.IconEntry{cond("exec", "X")},
	}
	store := build(t, cfg)

	exported := store.Export()
	assert.Equal(t, []config.IconEntry{ie("src", "S"), ie("bin", "B")}, exported.Dirs)
	assert.Equal(t, []config.IconEntry{cond("exec", "X")}, exported.Conds)
	assert.Empty(t, exported.PrependGlobs)

	again := build(t, exported)
	assert.Equal(t, store.Rules(), again.Rules())

	for _, e := range []entry{file("a.tmp"), dir("src"), file("README"), file("x.go"), file("x").with(map[string]bool{"exec": true})} {
		a, _ := store.Match(e)
		b, _ := again.Match(e)
		assert.Equal(t, a, b, e.path)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"main.go", "go", true},
		{"archive.tar.gz", "gz", true},
		{"a/b.tmp", "tmp", true},
		{"Makefile", "", false},
		{".bashrc", "", false},
		{".config.yml", "yml", true},
		{"dir.d/file", "", false},
		{"trailing.", "", true},
		{"a/..", "", false},
		{"..", "", false},
		{"a/.", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := icons.Extension(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
