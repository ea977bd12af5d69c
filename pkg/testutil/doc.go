// Package testutil provides isolated environments for iconrules tests.
//
// A TestEnvironment points ICONRULES_CONFIG_DIR and ICONRULES_STATE_DIR at
// temp directories so no test reads the developer's own theme or writes to
// their log file, and builds file trees either in memory or on disk.
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when code under test opens the
//     OS filesystem itself (the CLI) or needs symlinks
//   - Define trees and themes inline in the test
package testutil
