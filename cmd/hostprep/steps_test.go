// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
	"time"

	"hostprep/internal/report"
)

func TestLastOutcomes_MatchesPlanName(t *testing.T) {
	dir := t.TempDir()

	rep := report.New("rust-fuse-dev", "hostprep.cue")
	rep.Steps = []report.StepResult{
		{Name: "base-packages", Kind: "packages", Status: "done"},
	}
	rep.Finish(0)
	if _, err := rep.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	prev := cfg.ReportDir
	cfg.ReportDir = dir
	t.Cleanup(func() { cfg.ReportDir = prev })

	got := lastOutcomes("rust-fuse-dev")
	if _, ok := got["base-packages"]; !ok {
		t.Errorf("lastOutcomes = %v, want base-packages entry", got)
	}

	if other := lastOutcomes("different-plan"); other != nil {
		t.Errorf("outcomes leaked across plans: %v", other)
	}
}

func TestRunStepsHistory_ListsRecordedRuns(t *testing.T) {
	dir := t.TempDir()

	ok := report.New("rust-fuse-dev", "hostprep.cue")
	ok.Finish(0)
	if _, err := ok.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	failed := report.New("rust-fuse-dev", "hostprep.cue")
	failed.StartedAt = failed.StartedAt.Add(time.Second)
	failed.Steps = []report.StepResult{
		{Name: "rust-toolchain", Kind: "installer", Status: "failed", ExitCode: 1},
	}
	failed.Finish(1)
	if _, err := failed.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	prev := cfg.ReportDir
	cfg.ReportDir = dir
	t.Cleanup(func() { cfg.ReportDir = prev })

	c, buf := newCaptureCmd()
	if err := runStepsHistory(c); err != nil {
		t.Fatalf("runStepsHistory: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "rust-fuse-dev") {
		t.Errorf("history output %q missing the plan name", out)
	}
	if strings.Count(out, "exit ") != 2 {
		t.Errorf("history output %q, want both recorded runs", out)
	}
	if !strings.Contains(out, "exit 1") {
		t.Errorf("history output %q missing the failing run's exit code", out)
	}
}

func TestRunStepsHistory_EmptyDir(t *testing.T) {
	prev := cfg.ReportDir
	cfg.ReportDir = t.TempDir()
	t.Cleanup(func() { cfg.ReportDir = prev })

	c, buf := newCaptureCmd()
	if err := runStepsHistory(c); err != nil {
		t.Fatalf("runStepsHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs recorded") {
		t.Errorf("output = %q", buf.String())
	}
}
