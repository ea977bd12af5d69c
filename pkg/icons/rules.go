package icons

import (
	"github.com/arthur-debert/iconrules/pkg/config"
)

// Rule is one merged rule as it takes part in matching
type Rule struct {
	Category string `json:"category" yaml:"category" toml:"category"`
	Key      string `json:"key" yaml:"key" toml:"key"`
	Text     string `json:"text" yaml:"text" toml:"text"`
	Fg       string `json:"fg,omitempty" yaml:"fg,omitempty" toml:"fg,omitempty"`
}

// Rules lists every merged rule, categories in cascade order and rules in
// priority order within each category. Shadowed keyed entries are absent.
func (i *Icons) Rules() []Rule {
	out := make([]Rule, 0, i.Stats().Total())
	for _, r := range i.globs {
		out = append(out, Rule{config.CategoryGlobs, r.pattern.String(), r.icon.Text, string(r.icon.Fg)})
	}
	for _, k := range i.dirKeys {
		icon := i.dirs[k]
		out = append(out, Rule{config.CategoryDirs, k, icon.Text, string(icon.Fg)})
	}
	for _, k := range i.fileKeys {
		icon := i.files[k]
		out = append(out, Rule{config.CategoryFiles, k, icon.Text, string(icon.Fg)})
	}
	for _, k := range i.extKeys {
		icon := i.exts[k]
		out = append(out, Rule{config.CategoryExts, k, icon.Text, string(icon.Fg)})
	}
	for _, r := range i.conds {
		out = append(out, Rule{config.CategoryConds, r.cond.String(), r.icon.Text, string(r.icon.Fg)})
	}
	return out
}

// Export flattens the store back into a configuration with only base lists.
// Building the result yields a store that matches exactly like i.
func (i *Icons) Export() config.IconConfig {
	cfg := config.IconConfig{
		Globs: make([]config.IconEntry, 0, len(i.globs)),
		Dirs:  make([]config.IconEntry, 0, len(i.dirKeys)),
		Files: make([]config.IconEntry, 0, len(i.fileKeys)),
		Exts:  make([]config.IconEntry, 0, len(i.extKeys)),
		Conds: make([]config.IconEntry, 0, len(i.conds)),
	}
	for _, r := range i.Rules() {
		e := config.IconEntry{Name: r.Key, Text: r.Text, Fg: r.Fg}
		switch r.Category {
		case config.CategoryGlobs:
			cfg.Globs = append(cfg.Globs, e)
		case config.CategoryDirs:
			cfg.Dirs = append(cfg.Dirs, e)
		case config.CategoryFiles:
			cfg.Files = append(cfg.Files, e)
		case config.CategoryExts:
			cfg.Exts = append(cfg.Exts, e)
		case config.CategoryConds:
			e.Name, e.If = "", r.Key
			cfg.Conds = append(cfg.Conds, e)
		}
	}
	return cfg
}
