// SPDX-License-Identifier: MPL-2.0

package planfile

// StarterPlan is the plan written by `hostprep init`: a Rust/FUSE build
// environment bootstrap. The installer step is deliberately left unpinned
// because the upstream endpoint does not publish a stable script hash;
// the runner warns about this at apply time.
const StarterPlan = `// hostprep plan: Rust FUSE development environment.
name:        "rust-fuse-dev"
description: "FUSE headers, C toolchain, clang/LLVM libraries, and the Rust toolchain"

steps: [
	{
		name:        "base-packages"
		description: "Build dependencies from the distribution archive"
		kind:        "packages"
		packages: ["libfuse-dev", "build-essential", "clang", "libclang-dev", "curl"]
	},
	{
		name:        "rust-toolchain"
		description: "rustup installer, fetched over TLS and run unprivileged"
		kind:        "installer"
		url:         "https://sh.rustup.rs"
		run_as:      "builder"
	},
]
`
