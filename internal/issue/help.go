// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Identifiers for known recurring failure modes.
const (
	PlanNotFoundID Id = iota + 1
	AptGetUnavailableID
	RunAsUserUnknownID
	ChecksumRequiredID
)

type (
	// Id identifies a known issue.
	Id int

	// KnownIssue pairs an identifier with a markdown help text shown when
	// the corresponding failure mode is hit.
	KnownIssue struct {
		id    Id
		title string
		mdMsg string
	}
)

var render = glamour.Render

var knownIssues = map[Id]*KnownIssue{
	PlanNotFoundID: {
		id:    PlanNotFoundID,
		title: "plan file not found",
		mdMsg: `
# No plan file found
hostprep looks for ` + "`hostprep.cue`" + ` in the working directory.

## Things you can try
- Run
~~~
$ hostprep init
~~~
  to create a starter plan.
- Point at an explicit plan with ` + "`--plan <path>`" + `.`,
	},
	AptGetUnavailableID: {
		id:    AptGetUnavailableID,
		title: "apt-get not available",
		mdMsg: `
# apt-get is not available on this host
Package steps require a Debian-family package manager.

## Things you can try
- Run hostprep on a Debian or Ubuntu host.
- Remove or mark the packages step ` + "`must_succeed: false`" + ` if the
  packages are already installed by other means.`,
	},
	RunAsUserUnknownID: {
		id:    RunAsUserUnknownID,
		title: "run_as account does not exist",
		mdMsg: `
# The run_as account does not exist
Privilege drop requires a pre-existing unprivileged account.

## Things you can try
- Create the account first:
~~~
$ useradd --create-home <name>
~~~
- Fix the ` + "`run_as`" + ` field in the plan.`,
	},
	ChecksumRequiredID: {
		id:    ChecksumRequiredID,
		title: "installer checksum required",
		mdMsg: `
# Unpinned installer refused
` + "`fetch.require_checksum`" + ` is enabled and the installer step has no
` + "`sha256`" + ` pin.

## Things you can try
- Add a ` + "`sha256`" + ` pin to the step.
- Disable ` + "`fetch.require_checksum`" + ` in the configuration if you
  accept running unpinned remote content.`,
	},
}

// Lookup returns the known issue for id, or nil.
func Lookup(id Id) *KnownIssue {
	return knownIssues[id]
}

// All returns every known issue ordered by identifier.
func All() []*KnownIssue {
	ids := maps.Keys(knownIssues)
	slices.Sort(ids)

	out := make([]*KnownIssue, 0, len(ids))
	for _, id := range ids {
		out = append(out, knownIssues[id])
	}
	return out
}

// ID returns the issue identifier.
func (k *KnownIssue) ID() Id { return k.id }

// Title returns the short description of the issue.
func (k *KnownIssue) Title() string { return k.title }

// Render returns the help text rendered for the terminal. Falls back to
// the raw markdown if rendering fails.
func (k *KnownIssue) Render() string {
	out, err := render(k.mdMsg, "auto")
	if err != nil {
		return k.mdMsg
	}
	return out
}
