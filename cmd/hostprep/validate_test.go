// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostprep/pkg/planfile"

	"github.com/spf13/cobra"
)

func newCaptureCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	c.SetErr(&buf)
	return c, &buf
}

func TestRunValidate_ValidPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.cue")
	if err := os.WriteFile(path, []byte(planfile.StarterPlan), 0o644); err != nil {
		t.Fatal(err)
	}

	c, buf := newCaptureCmd()
	if err := runValidate(c, []string{path}); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
	if !strings.Contains(buf.String(), "is valid") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunValidate_InvalidPlanExitsNonZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.cue")
	bad := `
name: "broken"
steps: [{
	name: "no-packages"
	kind: "packages"
	packages: []
}]
`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	c, _ := newCaptureCmd()
	err := runValidate(c, []string{path})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("err = %v, want ExitError with code 1", err)
	}
}
