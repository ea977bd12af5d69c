package iconrules

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Resolve filesystem entries to icons with layered rules"
	MsgResolveShort    = "Print the icon of each path"
	MsgRulesShort      = "Print the merged rule set"
	MsgCheckShort      = "Validate a theme file"
	MsgExplainShort    = "Explain how a path was matched"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "iconrules %s (commit %s, built %s)\n"

	// Error messages
	MsgErrCheck = "theme check failed"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Theme file to merge over the preset (default: search the config directories)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagColor       = "Colour mode: auto, always or never"
	MsgFlagNoPreset    = "Leave out the embedded preset theme"
	MsgFlagList        = "List the contents of directory arguments"
	MsgFlagRulesFormat = "Rule listing format: table, toml, yaml or json"
	MsgFlagPreset      = "Print the embedded preset theme as shipped, comments included"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/explain-long.txt
	msgExplainLongRaw string
	MsgExplainLong    = strings.TrimSpace(msgExplainLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
