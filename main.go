// SPDX-License-Identifier: MPL-2.0

package main

import cmd "foxcheck-cli/cmd/foxcheck"

func main() {
	cmd.Execute()
}
