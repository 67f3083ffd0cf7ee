// SPDX-License-Identifier: MPL-2.0

// Package fetch downloads installer scripts for installer steps.
//
// Transfers are HTTPS-only over TLS 1.2 or newer, non-2xx responses are
// errors rather than payloads, and response bodies are size-capped. A
// step may pin the payload with a SHA-256 checksum.
package fetch
