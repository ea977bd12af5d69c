package iconrules

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/testutil"
	"github.com/arthur-debert/iconrules/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTheme = `
[icon]
dirs = [ { name = "src", text = "D" } ]
exts = [ { name = "go", text = "G", fg = "#00add8" } ]
`

// setup isolates the command from the user's config and state directories
// and writes a theme plus a small tree to a temp dir
func setup(t *testing.T, theme string) (root, themePath string) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{
		"src":       testutil.FileTree{},
		"main.go":   "package main\n",
		"notes.txt": "",
	})

	themePath = filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(themePath, []byte(theme), 0644))
	return env.Root, themePath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// a nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestResolve_Text(t *testing.T) {
	root, theme := setup(t, testTheme)

	out, err := run(t, "resolve", "--no-preset", "-c", theme, "-f", "text",
		filepath.Join(root, "main.go"),
		filepath.Join(root, "src"),
		filepath.Join(root, "notes.txt"),
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"G " + filepath.Join(root, "main.go"),
		"D " + filepath.Join(root, "src"),
		"  " + filepath.Join(root, "notes.txt"),
	}, lines)
}

func TestResolve_ListJSON(t *testing.T) {
	root, theme := setup(t, testTheme)

	out, err := run(t, "resolve", "--no-preset", "-c", theme, "-f", "json", "--list", root)
	require.NoError(t, err)

	var result display.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Entries, 3)

	byName := map[string]display.Resolution{}
	for _, e := range result.Entries {
		byName[e.Name] = e
	}
	assert.Equal(t, icons.StepExt, byName["main.go"].Step)
	assert.Equal(t, "G", byName["main.go"].Icon.Text)
	assert.Equal(t, icons.StepDir, byName["src"].Step)
	assert.True(t, byName["src"].Dir)
	assert.True(t, strings.HasPrefix(byName["src"].Mode, "d"), byName["src"].Mode)
	assert.True(t, strings.HasPrefix(byName["main.go"].Mode, "-rw"), byName["main.go"].Mode)
	assert.Nil(t, byName["notes.txt"].Icon)
	assert.Equal(t, icons.StepNone, byName["notes.txt"].Step)
}

func TestResolve_MissingPath(t *testing.T) {
	root, theme := setup(t, testTheme)

	_, err := run(t, "resolve", "--no-preset", "-c", theme, "-f", "text", filepath.Join(root, "nope"))
	assert.Error(t, err)
}

func TestRules_ExportRoundTrip(t *testing.T) {
	_, theme := setup(t, testTheme)

	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "rules", "--no-preset", "-c", theme, "--export", format)
			require.NoError(t, err)

			cfg, err := config.LoadBytes([]byte(out), format)
			require.NoError(t, err)
			assert.Equal(t, []config.IconEntry{{Name: "src", Text: "D"}}, cfg.Icon.Dirs)
			assert.Equal(t, []config.IconEntry{{Name: "go", Text: "G", Fg: "#00add8"}}, cfg.Icon.Exts)
		})
	}
}

func TestRules_Text(t *testing.T) {
	_, theme := setup(t, testTheme)

	out, err := run(t, "rules", "--no-preset", "-c", theme, "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "dirs  D src\nexts  G go #00add8\n", out)
}

func TestRules_PresetWithUserTheme(t *testing.T) {
	_, theme := setup(t, `
[icon]
prepend_exts = [ { name = "go", text = "X" } ]
`)

	out, err := run(t, "rules", "-c", theme, "-f", "json")
	require.NoError(t, err)

	var set display.RuleSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, theme, set.Source)

	var goRules []icons.Rule
	for _, r := range set.Rules {
		if r.Category == config.CategoryExts && r.Key == "go" {
			goRules = append(goRules, r)
		}
	}
	require.Len(t, goRules, 1)
	assert.Equal(t, "X", goRules[0].Text)
}

func TestCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		_, theme := setup(t, testTheme)

		out, err := run(t, "check", "--no-preset", "-f", "text", theme)
		require.NoError(t, err)
		assert.Equal(t, "ok: 2 rules\n", out)
	})

	t.Run("invalid glob", func(t *testing.T) {
		_, theme := setup(t, `
[icon]
globs = [ { name = "[a-", text = "x" } ]
`)

		out, err := run(t, "check", "--no-preset", "-f", "text", theme)
		require.Error(t, err)
		assert.Contains(t, out, "error: ")
		assert.Contains(t, out, "category: globs")
		assert.Contains(t, out, "index: 0")
	})

	t.Run("unreadable theme", func(t *testing.T) {
		setup(t, testTheme)

		out, err := run(t, "check", "-f", "json", filepath.Join(t.TempDir(), "missing.toml"))
		require.Error(t, err)

		var result display.CheckResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.False(t, result.OK)
		assert.NotEmpty(t, result.Error)
	})
}

func TestExplain(t *testing.T) {
	root, theme := setup(t, testTheme)

	t.Run("markdown", func(t *testing.T) {
		out, err := run(t, "explain", "--no-preset", "-c", theme, "-f", "text", filepath.Join(root, "main.go"))
		require.NoError(t, err)
		assert.Contains(t, out, "Matched by **extension** `go`")
		assert.Contains(t, out, "- **fg**: `#00add8`")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "explain", "--no-preset", "-c", theme, "-f", "json", filepath.Join(root, "src"))
		require.NoError(t, err)

		var got explainOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, icons.StepDir, got.Step)
		assert.Equal(t, "src", got.Key)
	})
}

func TestFormatFlagOverridesTheme(t *testing.T) {
	root, theme := setup(t, testTheme+`
[output]
format = "json"
`)

	out, err := run(t, "resolve", "--no-preset", "-c", theme, filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)

	out, err = run(t, "resolve", "--no-preset", "-c", theme, "-f", "text", filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "G "+filepath.Join(root, "main.go")+"\n", out)
}

func TestInvalidFormat(t *testing.T) {
	root, theme := setup(t, testTheme)

	_, err := run(t, "resolve", "--no-preset", "-c", theme, "-f", "xml", root)
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	setup(t, testTheme)

	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	for _, name := range []string{"conditions", "globs", "themes"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, "help", "conditions")
	require.NoError(t, err)
	assert.Contains(t, out, "Connectives")
}

func TestVersion(t *testing.T) {
	setup(t, testTheme)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "iconrules dev"), out)
}

func TestNoCommand(t *testing.T) {
	setup(t, testTheme)

	_, err := run(t)
	assert.Error(t, err)
}

func TestRules_DiscoversThemeInConfigDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	theme := env.WriteTheme(testTheme)

	out, err := run(t, "rules", "--no-preset", "-f", "json")
	require.NoError(t, err)

	var set display.RuleSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, theme, set.Source)
	assert.Equal(t, 2, set.Stats.Total())
}

func TestResolve_RelativePathMatchesFullPathGlob(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{
		"Downloads": testutil.FileTree{},
	})
	env.Chdir()
	theme := env.WriteTheme(`
[icon]
globs = [ { name = "/**/Downloads/", text = "V" } ]
`)

	out, err := run(t, "resolve", "--no-preset", "-c", theme, "-f", "json", "Downloads")
	require.NoError(t, err)

	var result display.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Entries, 1)

	want, err := filepath.Abs("Downloads")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(want), result.Entries[0].Path)
	assert.Equal(t, icons.StepGlob, result.Entries[0].Step)
	require.NotNil(t, result.Entries[0].Icon)
	assert.Equal(t, "V", result.Entries[0].Icon.Text)
}

func TestRules_Preset(t *testing.T) {
	setup(t, testTheme)

	out, err := run(t, "rules", "--preset")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultThemeContent(), out)

	_, err = run(t, "rules", "--preset", "--export", "toml")
	assert.Error(t, err, "--preset and --export are exclusive")
}
