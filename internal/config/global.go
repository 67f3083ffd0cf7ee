// SPDX-License-Identifier: MPL-2.0

package config

var (
	// configDirOverride allows tests and the --config flag to bypass the
	// platform config directory. os.UserHomeDir does not reliably respect
	// HOME on all platforms, so tests need an explicit hook.
	configDirOverride string

	// configFileOverride is an explicit config file path (--config flag).
	configFileOverride string
)

// Reset clears overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
	configFileOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFileOverride sets an explicit config file path.
func SetConfigFileOverride(path string) {
	configFileOverride = path
}
