// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrChecksumMismatch indicates the payload does not match its pin.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ChecksumError carries the expected and actual digests of a failed
// verification.
type ChecksumError struct {
	URL      string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: want sha256:%s, got sha256:%s", e.URL, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

// VerifySHA256 checks payload against the hex-encoded pin. The comparison
// is case-insensitive.
func VerifySHA256(url string, payload []byte, pin string) error {
	sum := sha256.Sum256(payload)
	actual := hex.EncodeToString(sum[:])
	if actual != strings.ToLower(pin) {
		return &ChecksumError{URL: url, Expected: strings.ToLower(pin), Actual: actual}
	}
	return nil
}
