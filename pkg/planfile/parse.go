// SPDX-License-Identifier: MPL-2.0

package planfile

import (
	_ "embed"
	"fmt"
	"os"

	"hostprep/pkg/cueutil"
)

//go:embed plan_schema.cue
var planSchema string

// Parse reads and parses a plan file from the given path.
func Parse(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses plan content from bytes. The document is unified with
// the embedded #Plan schema, decoded, and then validated for constraints
// the schema cannot express.
func ParseBytes(data []byte, path string) (*Plan, error) {
	plan, err := cueutil.Decode[Plan](planSchema, data, "#Plan", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	plan.FilePath = path

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}
