// SPDX-License-Identifier: MPL-2.0

package report

import (
	"testing"
	"time"
)

func sample() *Report {
	r := New("rust-fuse-dev", "/tmp/hostprep.cue")
	r.Steps = []StepResult{
		{Name: "base-packages", Kind: "packages", Status: "done", Duration: 3 * time.Second},
		{Name: "rust-toolchain", Kind: "installer", Status: "failed", ExitCode: 1, Err: "server returned 404"},
	}
	r.Finish(1)
	return r
}

func TestReport_WriteAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := sample().Write(dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.PlanName != "rust-fuse-dev" {
		t.Errorf("PlanName = %q", got.PlanName)
	}
	if got.ExitCode != 1 || !got.Failed() {
		t.Errorf("ExitCode = %d, want failing run", got.ExitCode)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("Steps = %d, want 2", len(got.Steps))
	}
	if got.Steps[1].Status != "failed" || got.Steps[1].Err == "" {
		t.Errorf("failed step not preserved: %+v", got.Steps[1])
	}
}

func TestReport_LoadLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := LoadLatest(dir)
	if err != nil {
		t.Fatalf("LoadLatest on empty dir: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil report before any run")
	}

	if _, err := sample().Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err = LoadLatest(dir)
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if got == nil || got.PlanName != "rust-fuse-dev" {
		t.Errorf("LoadLatest = %+v", got)
	}
}

func TestReport_ListSkipsLatestAlias(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := sample().Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("List = %v, want exactly the timestamped file", paths)
	}
}
