package iconrules

import (
	"io"

	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/arthur-debert/iconrules/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags of the root command
type globalOptions struct {
	verbosity  int
	configFile string
	format     string
	color      string
	noPreset   bool
}

// loadOptions maps the flags to config layers. Flags left empty do not
// override the theme or the environment.
func (o *globalOptions) loadOptions(configFile string) config.LoadOptions {
	overrides := map[string]interface{}{}
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	if o.color != "" {
		overrides["output.color"] = o.color
	}
	return config.LoadOptions{
		ConfigFile: configFile,
		SkipPreset: o.noPreset,
		Overrides:  overrides,
	}
}

// source is the theme file merged over the preset, or "" for none
func (o *globalOptions) source() string {
	if o.configFile != "" {
		return paths.ExpandHome(o.configFile)
	}
	return paths.FindThemeFile()
}

// session is what every command needs once configuration is loaded
type session struct {
	cfg      *config.Config
	store    *icons.Icons
	source   string
	out      io.Writer
	format   ui.Format
	profile  termenv.Profile
	renderer ui.Renderer
}

// openOutput resolves the output format and colour profile for cmd
func openOutput(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	out := cmd.OutOrStdout()

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	if format == ui.FormatAuto {
		format = ui.DetectFormat(out)
	}
	profile, err := ui.ColorProfile(cfg.Output.Color, out)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, out, profile)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, out: out, format: format, profile: profile, renderer: renderer}, nil
}

// open loads the configuration, builds the rule store and prepares output
func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	logger := logging.WithFields(map[string]interface{}{
		"component": "cli",
		"command":   cmd.Name(),
	})

	cfg, err := config.Load(o.loadOptions(o.configFile))
	if err != nil {
		return nil, err
	}
	s, err := openOutput(cmd, cfg)
	if err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(logger, "build rules")
	store, err := icons.Build(cfg.Icon)
	done()
	if err != nil {
		return nil, err
	}
	s.store = store
	s.source = o.source()

	logger.Debug().
		Str("source", s.source).
		Str("format", s.format.String()).
		Int("rules", store.Stats().Total()).
		Msg("Session ready")
	return s, nil
}
