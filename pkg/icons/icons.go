// Package icons builds the icon rule store and resolves filesystem entries
// to icons.
//
// # Building
//
// Build takes the three tiers of each category from config.IconConfig and
// produces an immutable *Icons:
//
//   - globs and conds keep prepend ++ base ++ append order, which is their
//     match priority
//   - dirs, files and exts are folded into maps where the first occurrence
//     of a key wins, so an append entry never shadows a base or prepend one
//
// Construction is all-or-nothing: the first entry that fails to parse stops
// the build and is reported with its category, index and name.
//
// # Matching
//
// Match runs a fixed cascade and stops at the first hit:
//
//  1. glob rules, in order, against the entry path
//  2. exact name in the dirs or files map, then its lowercase form
//  3. extension in the exts map, then its lowercase form (files only)
//  4. conditional rules, in order; only a condition that is exactly true
//     matches, unknown facts never do
//
// An *Icons value is never modified after Build and may be shared by any
// number of goroutines.
package icons

import (
	"github.com/arthur-debert/iconrules/pkg/condition"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/merge"
	"github.com/arthur-debert/iconrules/pkg/pattern"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/rs/zerolog"
)

type globRule struct {
	pattern *pattern.Pattern
	icon    types.Icon
}

type condRule struct {
	cond *condition.Condition
	icon types.Icon
}

// Icons is the built rule store
type Icons struct {
	globs []globRule
	dirs  map[string]types.Icon
	files map[string]types.Icon
	exts  map[string]types.Icon
	conds []condRule

	// winning keys in merge order, for listing
	dirKeys  []string
	fileKeys []string
	extKeys  []string

	logger zerolog.Logger
}

// Stats counts the rules of each category after merging
type Stats struct {
	Globs int `json:"globs"`
	Dirs  int `json:"dirs"`
	Files int `json:"files"`
	Exts  int `json:"exts"`
	Conds int `json:"conds"`
}

// Total is the number of rules across categories
func (s Stats) Total() int {
	return s.Globs + s.Dirs + s.Files + s.Exts + s.Conds
}

// Build parses and merges cfg into a rule store
func Build(cfg config.IconConfig) (*Icons, error) {
	logger := logging.GetLogger("icons")

	globs, err := buildGlobs(&cfg)
	if err != nil {
		return nil, err
	}
	conds, err := buildConds(&cfg)
	if err != nil {
		return nil, err
	}

	store := &Icons{
		globs:  globs,
		conds:  conds,
		logger: logger,
	}
	if store.dirs, store.dirKeys, err = buildKeyed(&cfg, config.CategoryDirs, logger); err != nil {
		return nil, err
	}
	if store.files, store.fileKeys, err = buildKeyed(&cfg, config.CategoryFiles, logger); err != nil {
		return nil, err
	}
	if store.exts, store.extKeys, err = buildKeyed(&cfg, config.CategoryExts, logger); err != nil {
		return nil, err
	}

	stats := store.Stats()
	logger.Debug().
		Int("globs", stats.Globs).
		Int("dirs", stats.Dirs).
		Int("files", stats.Files).
		Int("exts", stats.Exts).
		Int("conds", stats.Conds).
		Msg("Built icon rules")

	return store, nil
}

// MustBuild is Build for configurations known to be valid, such as presets
func MustBuild(cfg config.IconConfig) *Icons {
	icons, err := Build(cfg)
	if err != nil {
		panic(err)
	}
	return icons
}

// Stats returns per-category rule counts
func (i *Icons) Stats() Stats {
	return Stats{
		Globs: len(i.globs),
		Dirs:  len(i.dirs),
		Files: len(i.files),
		Exts:  len(i.exts),
		Conds: len(i.conds),
	}
}

func iconOf(e config.IconEntry) types.Icon {
	return types.Icon{Text: e.Text, Fg: types.Color(e.Fg)}
}

func entryError(err error, tier, category string, index int, e config.IconEntry) error {
	key := config.TierKey(tier, category)
	name := e.Name
	if category == config.CategoryConds {
		name = e.If
	}
	msg := "invalid entry %d in %s"
	if err == nil {
		return errors.Newf(errors.ErrConfigParse, msg, index, key).
			WithDetail("category", key).
			WithDetail("index", index).
			WithDetail("entry", name)
	}
	return errors.Wrapf(err, errors.ErrConfigParse, msg, index, key).
		WithDetail("category", key).
		WithDetail("index", index).
		WithDetail("entry", name)
}

func requireFields(tier, category string, index int, e config.IconEntry) error {
	field, value := "name", e.Name
	if category == config.CategoryConds {
		field, value = "if", e.If
	}
	if value == "" {
		return entryError(errors.Newf(errors.ErrInvalidInput, "missing required field %q", field),
			tier, category, index, e)
	}
	return nil
}

// tiers returns the three lists of a category in merge order
func tiers(cfg *config.IconConfig, category string) [3][]config.IconEntry {
	return [3][]config.IconEntry{
		cfg.Tier(config.TierPrepend, category),
		cfg.Tier(config.TierBase, category),
		cfg.Tier(config.TierAppend, category),
	}
}

func buildGlobs(cfg *config.IconConfig) ([]globRule, error) {
	var parsed [3][]globRule
	for t, list := range tiers(cfg, config.CategoryGlobs) {
		tier := config.Tiers[t]
		parsed[t] = make([]globRule, 0, len(list))
		for idx, e := range list {
			if err := requireFields(tier, config.CategoryGlobs, idx, e); err != nil {
				return nil, err
			}
			p, err := pattern.Parse(e.Name)
			if err != nil {
				return nil, entryError(err, tier, config.CategoryGlobs, idx, e)
			}
			parsed[t] = append(parsed[t], globRule{pattern: p, icon: iconOf(e)})
		}
	}
	return merge.Mix(parsed[0], parsed[1], parsed[2]), nil
}

func buildConds(cfg *config.IconConfig) ([]condRule, error) {
	var parsed [3][]condRule
	for t, list := range tiers(cfg, config.CategoryConds) {
		tier := config.Tiers[t]
		parsed[t] = make([]condRule, 0, len(list))
		for idx, e := range list {
			if err := requireFields(tier, config.CategoryConds, idx, e); err != nil {
				return nil, err
			}
			c, err := condition.Parse(e.If)
			if err != nil {
				return nil, entryError(err, tier, config.CategoryConds, idx, e)
			}
			parsed[t] = append(parsed[t], condRule{cond: c, icon: iconOf(e)})
		}
	}
	return merge.Mix(parsed[0], parsed[1], parsed[2]), nil
}

func buildKeyed(cfg *config.IconConfig, category string, logger zerolog.Logger) (map[string]types.Icon, []string, error) {
	t := tiers(cfg, category)
	for i, list := range t {
		for idx, e := range list {
			if err := requireFields(config.Tiers[i], category, idx, e); err != nil {
				return nil, nil, err
			}
		}
	}

	mixed := merge.Mix(t[0], t[1], t[2])
	key := func(e config.IconEntry) string { return e.Name }

	if dups := merge.Duplicates(mixed, key); len(dups) > 0 {
		logger.Trace().
			Str("category", category).
			Strs("keys", dups).
			Msg("Dropped shadowed icon rules")
	}

	m := merge.FirstWins(mixed, key, iconOf)

	keys := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, e := range mixed {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		keys = append(keys, e.Name)
	}
	return m, keys, nil
}
