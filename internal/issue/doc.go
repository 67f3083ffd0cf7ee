// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions for fixing the problem; the CLI renders these instead of raw
// error chains. Known recurring failure modes additionally have markdown
// help texts rendered with glamour.
package issue
