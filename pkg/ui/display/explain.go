package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/icons"
)

var stepTitles = map[icons.Step]string{
	icons.StepGlob: "glob rule",
	icons.StepDir:  "directory name",
	icons.StepFile: "file name",
	icons.StepExt:  "extension",
	icons.StepCond: "condition",
	icons.StepNone: "no rule",
}

// ExplainMarkdown describes how r was resolved as a markdown document.
// consulted holds the condition facts looked at, as reported by
// icons.Explanation.
func ExplainMarkdown(r Resolution, consulted map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Path)

	kind := "file"
	if r.Dir {
		kind = "directory"
	}
	fmt.Fprintf(&b, "- **kind**: %s\n", kind)
	if r.Mode != "" {
		fmt.Fprintf(&b, "- **mode**: `%s`\n", r.Mode)
	}
	if len(r.Facts) > 0 {
		fmt.Fprintf(&b, "- **facts**: %s\n", strings.Join(r.Facts, ", "))
	}
	b.WriteString("\n## Match\n\n")

	if !r.Matched() {
		b.WriteString("No rule matched: globs, names, extensions and conditions all missed.\n")
	} else {
		fmt.Fprintf(&b, "Matched by **%s** `%s`.\n\n", stepTitles[r.Step], r.Key)
		fmt.Fprintf(&b, "- **icon**: %s\n", r.Icon.Text)
		if r.Icon.HasFg() {
			fmt.Fprintf(&b, "- **fg**: `%s`\n", r.Icon.Fg)
		}
	}

	if len(consulted) > 0 {
		names := make([]string, 0, len(consulted))
		for n := range consulted {
			names = append(names, n)
		}
		sort.Strings(names)

		b.WriteString("\n## Condition facts\n\n| fact | value |\n|---|---|\n")
		for _, n := range names {
			fmt.Fprintf(&b, "| %s | %s |\n", n, consulted[n])
		}
	}
	return b.String()
}
