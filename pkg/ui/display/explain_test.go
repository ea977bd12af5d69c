package display_test

import (
	"testing"

	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/arthur-debert/iconrules/pkg/ui/display"
	"github.com/stretchr/testify/assert"
)

func TestExplainMarkdown(t *testing.T) {
	t.Run("matched by extension", func(t *testing.T) {
		md := display.ExplainMarkdown(display.Resolution{
			Path: "cmd/main.go",
			Mode: "-rw-r--r--",
			Icon: &types.Icon{Text: "G", Fg: "#00add8"},
			Step: icons.StepExt,
			Key:  "go",
		}, nil)

		assert.Contains(t, md, "# cmd/main.go")
		assert.Contains(t, md, "- **kind**: file")
		assert.Contains(t, md, "- **mode**: `-rw-r--r--`")
		assert.Contains(t, md, "Matched by **extension** `go`")
		assert.Contains(t, md, "- **fg**: `#00add8`")
		assert.NotContains(t, md, "Condition facts")
	})

	t.Run("unmatched with facts", func(t *testing.T) {
		md := display.ExplainMarkdown(display.Resolution{
			Path:  "bin",
			Dir:   true,
			Step:  icons.StepNone,
			Facts: []string{"sticky"},
		}, map[string]string{"exec": "false", "bogus": "unknown"})

		assert.Contains(t, md, "- **kind**: directory")
		assert.NotContains(t, md, "**mode**")
		assert.Contains(t, md, "- **facts**: sticky")
		assert.Contains(t, md, "No rule matched")
		assert.Contains(t, md, "| bogus | unknown |\n| exec | false |")
	})
}

func TestNewResolution(t *testing.T) {
	icon := types.Icon{Text: "D"}
	r := display.NewResolution(fakeEntry{}, icons.Explanation{Step: icons.StepDir, Key: "src", Icon: &icon}, []string{"hidden"})

	assert.Equal(t, "a/src", r.Path)
	assert.Equal(t, "src", r.Name)
	assert.True(t, r.Dir)
	assert.True(t, r.Matched())
	assert.Equal(t, "src", r.Key)
	assert.Equal(t, []string{"hidden"}, r.Facts)
}

type fakeEntry struct{}

func (fakeEntry) Name() string            { return "src" }
func (fakeEntry) IsDir() bool             { return true }
func (fakeEntry) Path() string            { return "a/src" }
func (fakeEntry) Has(string) (bool, bool) { return false, false }
