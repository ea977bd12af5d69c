package iconrules

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/arthur-debert/iconrules/internal/version"
	"github.com/arthur-debert/iconrules/pkg/cobrax/topics"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/filesystem"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/ui"
	"github.com/arthur-debert/iconrules/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "iconrules",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)
	flags.StringVar(&opts.color, "color", "", MsgFlagColor)
	flags.BoolVar(&opts.noPreset, "no-preset", false, MsgFlagNoPreset)

	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletion("auto", "term", "text", "json"))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletion("auto", "always", "never"))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newExplainCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		if _, err := topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// resolution explains e and records its permission bits
func resolution(store *icons.Icons, e *filesystem.Entry) (display.Resolution, icons.Explanation) {
	x := store.Explain(e)
	r := display.NewResolution(e, x, e.Facts())
	r.Mode = e.Mode().String()
	return r, x
}

// resolveEntries stats each path, expanding directories when list is set
func resolveEntries(fsys afero.Fs, store *icons.Icons, args []string, list bool) (*display.ResolveResult, error) {
	result := &display.ResolveResult{Entries: []display.Resolution{}}
	add := func(e *filesystem.Entry) {
		r, _ := resolution(store, e)
		result.Entries = append(result.Entries, r)
	}

	for _, arg := range args {
		e, err := filesystem.Stat(fsys, arg)
		if err != nil {
			return nil, err
		}
		if !list || !e.IsDir() {
			add(e)
			continue
		}
		children, err := filesystem.ReadDir(fsys, arg)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			add(c)
		}
	}
	return result, nil
}

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "resolve [paths...]",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
				list = true
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}

			result, err := resolveEntries(filesystem.NewOS(), s.store, args, list)
			if err != nil {
				return err
			}
			log.Info().Int("entries", len(result.Entries)).Msg("Resolved paths")
			return s.renderer.RenderResult(result)
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	return cmd
}

func newRulesCmd(opts *globalOptions) *cobra.Command {
	var (
		export string
		preset bool
	)

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset {
				_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultThemeContent())
				return err
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}

			switch export {
			case "", "table":
				return s.renderer.RenderResult(&display.RuleSet{
					Rules:  s.store.Rules(),
					Stats:  s.store.Stats(),
					Source: s.source,
				})
			default:
				return config.Encode(s.out, s.store.Export(), export)
			}
		},
	}
	cmd.Flags().StringVarP(&export, "export", "e", "", MsgFlagRulesFormat)
	cmd.Flags().BoolVar(&preset, "preset", false, MsgFlagPreset)
	cmd.MarkFlagsMutuallyExclusive("export", "preset")
	_ = cmd.RegisterFlagCompletionFunc("export", fixedCompletion("table", "toml", "yaml", "json"))
	return cmd
}

// checkTheme loads and builds the theme, folding any failure into the result
func checkTheme(opts *globalOptions, file string) (*config.Config, *display.CheckResult) {
	result := &display.CheckResult{Source: file}
	if result.Source == "" {
		result.Source = opts.source()
	}

	fail := func(err error) {
		result.Error = err.Error()
		result.Details = errors.GetErrorDetails(err)
	}

	cfg, err := config.Load(opts.loadOptions(file))
	if err != nil {
		fail(err)
		return nil, result
	}
	store, err := icons.Build(cfg.Icon)
	if err != nil {
		fail(err)
		return cfg, result
	}
	result.OK = true
	result.Stats = store.Stats()
	return cfg, result
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check [file]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := opts.configFile
			if len(args) == 1 {
				file = args[0]
			}

			cfg, result := checkTheme(opts, file)
			if cfg == nil {
				// Output settings come from the flags alone when the theme
				// itself cannot be read
				cfg = &config.Config{Output: config.OutputConfig{Format: opts.format, Color: opts.color}}
			}
			s, err := openOutput(cmd, cfg)
			if err != nil {
				return err
			}
			if err := s.renderer.RenderResult(result); err != nil {
				return err
			}
			if !result.OK {
				return errors.New(errors.ErrConfigParse, MsgErrCheck).WithDetail("source", result.Source)
			}
			return nil
		},
	}
}

// explainOutput is the JSON form of the explain command
type explainOutput struct {
	display.Resolution
	Consulted map[string]string `json:"consulted,omitempty"`
}

func newExplainCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "explain <path>",
		Short:   MsgExplainShort,
		Long:    MsgExplainLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}

			e, err := filesystem.Stat(filesystem.NewOS(), args[0])
			if err != nil {
				return err
			}
			r, x := resolution(s.store, e)

			switch s.format {
			case ui.FormatJSON:
				return s.renderer.RenderResult(explainOutput{Resolution: r, Consulted: x.Facts})
			case ui.FormatTerminal:
				md := display.ExplainMarkdown(r, x.Facts)
				_, err = fmt.Fprint(s.out, topics.NewGlamourRenderer().Render(md, ".md"))
				return err
			default:
				_, err = fmt.Fprint(s.out, display.ExplainMarkdown(r, x.Facts))
				return err
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
