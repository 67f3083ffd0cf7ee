// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// LatestFileName is the symlink-free alias of the most recent report.
const LatestFileName = "latest.toml"

type (
	// Report is the persisted outcome of one plan run.
	Report struct {
		PlanName  string        `toml:"plan_name"`
		PlanFile  string        `toml:"plan_file"`
		StartedAt time.Time     `toml:"started_at"`
		Duration  time.Duration `toml:"duration_ns"`
		ExitCode  int           `toml:"exit_code"`
		DryRun    bool          `toml:"dry_run,omitempty"`
		Steps     []StepResult  `toml:"steps"`
	}

	// StepResult is the outcome of one step.
	StepResult struct {
		Name     string        `toml:"name"`
		Kind     string        `toml:"kind"`
		Status   string        `toml:"status"`
		ExitCode int           `toml:"exit_code"`
		Duration time.Duration `toml:"duration_ns"`
		Err      string        `toml:"error,omitempty"`
	}
)

// New starts a report for the named plan.
func New(planName, planFile string) *Report {
	return &Report{
		PlanName:  planName,
		PlanFile:  planFile,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the total duration and final exit code.
func (r *Report) Finish(exitCode int) {
	r.Duration = time.Since(r.StartedAt)
	r.ExitCode = exitCode
}

// Failed reports whether the run ended with a non-zero exit code.
func (r *Report) Failed() bool {
	return r.ExitCode != 0
}

// Write persists the report under dir as both a timestamped file and
// LatestFileName. The directory is created if needed.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := fmt.Sprintf("%s-%s.toml", r.PlanName, r.StartedAt.Format("20060102T150405Z"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	// Best-effort copy for `hostprep steps` to find without globbing.
	_ = os.WriteFile(filepath.Join(dir, LatestFileName), data, 0o644)

	return path, nil
}

// Load reads a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var r Report
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &r, nil
}

// LoadLatest reads the most recent report under dir, or nil if no run
// has been recorded yet.
func LoadLatest(dir string) (*Report, error) {
	path := filepath.Join(dir, LatestFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// List returns the timestamped report files under dir, newest last.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list reports in %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == LatestFileName || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
