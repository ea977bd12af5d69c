package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides, e.g. ICONRULES_OUTPUT_FORMAT
const EnvPrefix = "ICONRULES_"

// LoadOptions selects the layers Load reads
type LoadOptions struct {
	// ConfigFile is an explicit theme file. When empty the theme is looked
	// up in the config search directories.
	ConfigFile string

	// SkipPreset leaves the embedded preset out, so only the user file
	// defines rules
	SkipPreset bool

	// SkipEnv ignores ICONRULES_* environment variables
	SkipEnv bool

	// Overrides are dotted keys applied last, e.g. "output.format" from a
	// command line flag
	Overrides map[string]interface{}
}

// defaults seeds every load before any theme is read
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"output.format": "auto",
		"output.color":  "auto",
	}
}

// Load reads the preset, the user theme file and the environment, and
// decodes the merged result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 1. Embedded preset
	if !opts.SkipPreset {
		if err := k.Load(&rawBytesProvider{bytes: defaultTheme}, toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load preset theme")
		}
	}

	// 2. User theme
	themePath := opts.ConfigFile
	if themePath == "" {
		themePath = paths.FindThemeFile()
	} else {
		themePath = paths.ExpandHome(themePath)
		if _, err := os.Stat(themePath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read theme file %s", themePath).
				WithDetail("path", themePath)
		}
	}
	if themePath != "" {
		if err := k.Load(file.Provider(themePath), parserFor(themePath)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load theme from %s", themePath).
				WithDetail("path", themePath)
		}
		logger.Debug().Str("path", themePath).Msg("Loaded user theme")
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return decode(k)
}

// LoadBytes decodes a single theme document without the preset or the
// environment. format is "toml" or "yaml".
func LoadBytes(data []byte, format string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	var parser koanf.Parser = toml.Parser()
	if format == "yaml" || format == "yml" {
		parser = yaml.Parser()
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse %s theme", format)
	}
	return decode(k)
}

// Default returns the decoded preset theme alone
func Default() (*Config, error) {
	return LoadBytes(defaultTheme, "toml")
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	normalize(&cfg)
	return &cfg, nil
}

// normalize turns absent lists into empty ones
func normalize(cfg *Config) {
	ic := &cfg.Icon
	for _, l := range []*[]IconEntry{
		&ic.Globs, &ic.PrependGlobs, &ic.AppendGlobs,
		&ic.Dirs, &ic.PrependDirs, &ic.AppendDirs,
		&ic.Files, &ic.PrependFiles, &ic.AppendFiles,
		&ic.Exts, &ic.PrependExts, &ic.AppendExts,
		&ic.Conds, &ic.PrependConds, &ic.AppendConds,
	} {
		if *l == nil {
			*l = []IconEntry{}
		}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "auto"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps ICONRULES_OUTPUT_FORMAT to output.format. Only the first
// underscore separates the section so keys like prepend_dirs survive.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
