// Package config loads the icon theme and CLI settings for iconrules.
//
// Configuration is layered with koanf, later layers replacing earlier keys:
//
//  1. built-in defaults for the output settings
//  2. the embedded preset theme (embedded/theme.toml)
//  3. the user theme file, theme.toml or theme.yaml in the config directory,
//     or an explicit file passed with --config
//  4. ICONRULES_* environment variables for scalar settings
//  5. LoadOptions.Overrides, set from command line flags
//
// Lists are replaced, never concatenated, by a later layer. A user who wants
// to extend the preset therefore writes prepend_<category> or
// append_<category>; writing the base key replaces the preset list.
//
//	[icon]
//	prepend_dirs = [
//	  { name = "src", text = "", fg = "#7ebae4" },
//	]
//	append_conds = [
//	  { if = "exec & !dir", text = "", fg = "#a6e3a1" },
//	]
package config
