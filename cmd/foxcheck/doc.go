// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the foxcheck CLI.
//
// The root command validates an extension root; `validate [dir]` does the
// same for an explicit directory, `config show` prints the effective
// configuration and `explain` renders remediation notes. Commands are built per App so tests can inject writers and
// configuration providers.
package cmd
