// SPDX-License-Identifier: MPL-2.0

// Package runtime provides the step execution runtimes.
//
// The native runtime shells out through os/exec and supports privilege
// drop to a named account; the virtual runtime interprets scripts
// in-process with mvdan.cc/sh and is therefore immune to host shell
// quirks, but cannot change credentials.
package runtime
