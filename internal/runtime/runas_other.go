// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrRunAsUnsupported is returned when a plan asks for privilege drop on a
// platform without credential switching support.
var ErrRunAsUnsupported = errors.New("run_as is not supported on this platform")

type credential struct {
	Username string
	HomeDir  string
}

func lookupCredential(username string) (*credential, error) {
	return nil, fmt.Errorf("%w: %s", ErrRunAsUnsupported, runtime.GOOS)
}

func applyCredential(cmd *exec.Cmd, cred *credential) {}
