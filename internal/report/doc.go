// SPDX-License-Identifier: MPL-2.0

// Package report records the outcome of a plan run as a TOML document
// under the state directory, one file per run.
package report
