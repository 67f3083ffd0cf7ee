// SPDX-License-Identifier: MPL-2.0

//go:build linux

package runtime

import (
	"fmt"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"

	"hostprep/internal/issue"
)

type (
	// credential is a resolved account ready to be applied to a child
	// process.
	credential struct {
		Username string
		HomeDir  string
		UID      uint32
		GID      uint32
		Groups   []uint32
	}
)

// lookupCredential resolves an account name to kernel credentials,
// including supplementary groups.
func lookupCredential(username string) (*credential, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve run_as account").
			WithResource(username).
			WithSuggestion("Create the account first (useradd --create-home " + username + ")").
			WithSuggestion("Fix the run_as field in the plan").
			Wrap(err).
			BuildError()
	}

	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("account %s has non-numeric uid %q: %w", username, u.Uid, err)
	}
	gid, err := strconv.ParseUint(u.Gid, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("account %s has non-numeric gid %q: %w", username, u.Gid, err)
	}

	var groups []uint32
	if ids, err := u.GroupIds(); err == nil {
		for _, id := range ids {
			g, err := strconv.ParseUint(id, 10, 32)
			if err != nil {
				continue
			}
			groups = append(groups, uint32(g))
		}
	}

	return &credential{
		Username: u.Username,
		HomeDir:  u.HomeDir,
		UID:      uint32(uid),
		GID:      uint32(gid),
		Groups:   groups,
	}, nil
}

// applyCredential makes the child process start under the resolved
// account. Switching credentials requires the invoking process to run as
// root; the kernel rejects the exec otherwise and the error surfaces
// through cmd.Run.
func applyCredential(cmd *exec.Cmd, cred *credential) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Credential = &syscall.Credential{
		Uid:    cred.UID,
		Gid:    cred.GID,
		Groups: cred.Groups,
	}
}
