package config

import "fmt"

// Icon rule categories
const (
	CategoryGlobs = "globs"
	CategoryDirs  = "dirs"
	CategoryFiles = "files"
	CategoryExts  = "exts"
	CategoryConds = "conds"
)

// Tiers of a category, in priority order
const (
	TierPrepend = "prepend"
	TierBase    = ""
	TierAppend  = "append"
)

// Categories lists every icon category in cascade order
var Categories = []string{CategoryGlobs, CategoryDirs, CategoryFiles, CategoryExts, CategoryConds}

// Tiers lists the tiers of a category in merge order
var Tiers = []string{TierPrepend, TierBase, TierAppend}

// TierKey returns the configuration key of a category tier, e.g. "prepend_globs"
func TierKey(tier, category string) string {
	if tier == TierBase {
		return category
	}
	return fmt.Sprintf("%s_%s", tier, category)
}

// IconEntry is one raw icon rule as written in the theme.
// Name holds the glob, directory name, file name or extension depending on
// the category; conditional rules use If instead.
type IconEntry struct {
	Name string `koanf:"name" toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	If   string `koanf:"if" toml:"if,omitempty" yaml:"if,omitempty" json:"if,omitempty"`
	Text string `koanf:"text" toml:"text" yaml:"text" json:"text"`
	Fg   string `koanf:"fg" toml:"fg,omitempty" yaml:"fg,omitempty" json:"fg,omitempty"`
}

// IconConfig holds the three tiers of every icon category. Every list
// defaults to empty when absent.
type IconConfig struct {
	Globs        []IconEntry `koanf:"globs" toml:"globs" yaml:"globs" json:"globs"`
	PrependGlobs []IconEntry `koanf:"prepend_globs" toml:"prepend_globs,omitempty" yaml:"prepend_globs,omitempty" json:"prepend_globs,omitempty"`
	AppendGlobs  []IconEntry `koanf:"append_globs" toml:"append_globs,omitempty" yaml:"append_globs,omitempty" json:"append_globs,omitempty"`

	Dirs        []IconEntry `koanf:"dirs" toml:"dirs" yaml:"dirs" json:"dirs"`
	PrependDirs []IconEntry `koanf:"prepend_dirs" toml:"prepend_dirs,omitempty" yaml:"prepend_dirs,omitempty" json:"prepend_dirs,omitempty"`
	AppendDirs  []IconEntry `koanf:"append_dirs" toml:"append_dirs,omitempty" yaml:"append_dirs,omitempty" json:"append_dirs,omitempty"`

	Files        []IconEntry `koanf:"files" toml:"files" yaml:"files" json:"files"`
	PrependFiles []IconEntry `koanf:"prepend_files" toml:"prepend_files,omitempty" yaml:"prepend_files,omitempty" json:"prepend_files,omitempty"`
	AppendFiles  []IconEntry `koanf:"append_files" toml:"append_files,omitempty" yaml:"append_files,omitempty" json:"append_files,omitempty"`

	Exts        []IconEntry `koanf:"exts" toml:"exts" yaml:"exts" json:"exts"`
	PrependExts []IconEntry `koanf:"prepend_exts" toml:"prepend_exts,omitempty" yaml:"prepend_exts,omitempty" json:"prepend_exts,omitempty"`
	AppendExts  []IconEntry `koanf:"append_exts" toml:"append_exts,omitempty" yaml:"append_exts,omitempty" json:"append_exts,omitempty"`

	Conds        []IconEntry `koanf:"conds" toml:"conds" yaml:"conds" json:"conds"`
	PrependConds []IconEntry `koanf:"prepend_conds" toml:"prepend_conds,omitempty" yaml:"prepend_conds,omitempty" json:"prepend_conds,omitempty"`
	AppendConds  []IconEntry `koanf:"append_conds" toml:"append_conds,omitempty" yaml:"append_conds,omitempty" json:"append_conds,omitempty"`
}

// Tier returns the list configured for one tier of a category
func (c *IconConfig) Tier(tier, category string) []IconEntry {
	switch TierKey(tier, category) {
	case "globs":
		return c.Globs
	case "prepend_globs":
		return c.PrependGlobs
	case "append_globs":
		return c.AppendGlobs
	case "dirs":
		return c.Dirs
	case "prepend_dirs":
		return c.PrependDirs
	case "append_dirs":
		return c.AppendDirs
	case "files":
		return c.Files
	case "prepend_files":
		return c.PrependFiles
	case "append_files":
		return c.AppendFiles
	case "exts":
		return c.Exts
	case "prepend_exts":
		return c.PrependExts
	case "append_exts":
		return c.AppendExts
	case "conds":
		return c.Conds
	case "prepend_conds":
		return c.PrependConds
	case "append_conds":
		return c.AppendConds
	}
	return nil
}

// OutputConfig controls how the CLI prints results
type OutputConfig struct {
	// Format is one of auto, term, text or json
	Format string `koanf:"format" toml:"format" yaml:"format" json:"format"`

	// Color is one of auto, always or never
	Color string `koanf:"color" toml:"color" yaml:"color" json:"color"`
}

// Config is the main configuration structure
type Config struct {
	Icon   IconConfig   `koanf:"icon" toml:"icon" yaml:"icon" json:"icon"`
	Output OutputConfig `koanf:"output" toml:"output" yaml:"output" json:"output"`
}
