// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* filesystem helpers it builds extension source trees:
// ExtensionFiles describes a tree that passes every foxcheck check, and
// WriteExtension / ExtensionFS materialise it on disk or in memory.
package testutil
