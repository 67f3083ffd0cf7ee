// SPDX-License-Identifier: MPL-2.0

// Package pkgmgr drives the host package manager for packages steps.
//
// Only the Debian family is supported. Invocations are non-interactive
// and the index is always refreshed before installing; if the refresh
// fails the install never runs.
package pkgmgr
