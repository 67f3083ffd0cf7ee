// SPDX-License-Identifier: MPL-2.0

// Package runner executes provisioning plans step by step.
//
// Steps run strictly in order. When a must-succeed step fails the run
// stops immediately, the remaining steps are marked skipped, and the
// failing step's exit code becomes the run's exit code.
package runner
