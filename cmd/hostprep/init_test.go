// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"hostprep/pkg/planfile"
)

func TestRunInit_WritesParseablePlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostprep.cue")

	if err := runInit(initCmd, []string{path}); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	plan, err := planfile.Parse(path)
	if err != nil {
		t.Fatalf("starter plan does not parse: %v", err)
	}
	if plan.Name != "rust-fuse-dev" {
		t.Errorf("plan name = %q", plan.Name)
	}
	if len(plan.Steps) != 2 {
		t.Errorf("steps = %d, want 2", len(plan.Steps))
	}
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostprep.cue")
	if err := os.WriteFile(path, []byte("name: \"existing\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	initForce = false
	if err := runInit(initCmd, []string{path}); err == nil {
		t.Error("expected refusal without --force")
	}

	initForce = true
	t.Cleanup(func() { initForce = false })
	if err := runInit(initCmd, []string{path}); err != nil {
		t.Errorf("overwrite with --force failed: %v", err)
	}
}
