// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"
	"fmt"

	"hostprep/internal/issue"
	"hostprep/internal/runtime"
)

// Installer is the package manager surface consumed by the runner.
type Installer interface {
	Name() string
	Available() bool
	InstallPackages(ctx context.Context, pkgs []string) *runtime.Result
}

// Detect returns the package manager for this host, or an actionable
// error when none is usable.
func Detect(opts ...Option) (Installer, error) {
	apt := NewAptGet(opts...)
	if apt.Available() {
		return apt, nil
	}

	return nil, issue.NewErrorContext().
		WithOperation("detect a supported package manager").
		WithResource(aptGetBin).
		WithSuggestion("hostprep currently supports Debian-family hosts only").
		WithSuggestion("install apt-get or run hostprep on a Debian or Ubuntu host").
		WithSuggestion(fmt.Sprintf("see 'hostprep issue %d' for details", issue.AptGetUnavailableID)).
		BuildError()
}
