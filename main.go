// SPDX-License-Identifier: MPL-2.0

package main

import cmd "hostprep/cmd/hostprep"

func main() {
	cmd.Execute()
}
