// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Message(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("fetch installer").
		WithResource("https://sh.rustup.rs").
		WithSuggestion("Check outbound network access").
		Wrap(cause).
		Build()

	got := err.Error()
	for _, want := range []string{"failed to fetch installer", "https://sh.rustup.rs", "connection refused"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestActionableError_FormatSuggestions(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load plan").
		WithSuggestion("Run 'hostprep init'").
		WithSuggestion("Pass --plan").
		Build()

	got := err.Format(false)
	if strings.Count(got, "•") != 2 {
		t.Errorf("Format() = %q, want two suggestion bullets", got)
	}
}

func TestActionableError_FormatVerboseChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	outer := WrapWithOperation(inner, "outer operation")
	err := NewErrorContext().WithOperation("top").Wrap(outer).Build()

	got := err.Format(true)
	if !strings.Contains(got, "Error chain:") {
		t.Errorf("verbose Format() = %q, missing error chain", got)
	}
	if !strings.Contains(got, "inner") {
		t.Errorf("verbose Format() = %q, missing innermost cause", got)
	}
}

func TestBuild_RequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestKnownIssues_Ordered(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) != len(knownIssues) {
		t.Fatalf("All() returned %d issues, want %d", len(all), len(knownIssues))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].id >= all[i].id {
			t.Errorf("All() not ordered at index %d", i)
		}
	}

	if Lookup(PlanNotFoundID) == nil {
		t.Error("Lookup(PlanNotFoundID) = nil")
	}
	if Lookup(Id(999)) != nil {
		t.Error("Lookup of unknown id should be nil")
	}
}
