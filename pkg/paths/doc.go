// Package paths resolves where iconrules reads its theme and writes its log.
//
// It follows the XDG Base Directory specification through adrg/xdg:
//
//   - ICONRULES_CONFIG_DIR overrides the config directory
//     (default: $XDG_CONFIG_HOME/iconrules)
//   - ICONRULES_STATE_DIR overrides the state directory holding the log file
//     (default: $XDG_STATE_HOME/iconrules)
//
// System-wide themes are searched in $XDG_CONFIG_DIRS/iconrules after the
// user directory.
package paths
