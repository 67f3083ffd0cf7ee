// SPDX-License-Identifier: MPL-2.0

// Package planfile defines the provisioning plan format.
//
// A plan is a CUE document listing ordered provisioning steps. Each step is
// one external unit of work against the host: a package-manager invocation,
// a remote installer fetched and piped into a shell, or an inline script.
// Parsing validates the document against an embedded schema; constraints the
// schema cannot express (per-kind required fields, step name uniqueness,
// privilege drop on the in-process runtime) are enforced in Go.
package planfile
