// SPDX-License-Identifier: MPL-2.0

// Package config loads the hostprep tool configuration.
//
// Configuration lives in a CUE file under the platform config directory
// (or the working directory), is validated against an embedded #Config
// schema, and is merged into viper over built-in defaults.
package config
