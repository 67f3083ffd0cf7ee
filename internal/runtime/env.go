// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"sort"
)

// buildEnv layers the extra variables over the host environment and
// returns the merged KEY=VALUE slice, extras sorted for deterministic
// process environments.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	return append(env, envToSlice(extra)...)
}

// envToSlice converts an environment map to sorted KEY=VALUE form.
func envToSlice(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(env))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return out
}
