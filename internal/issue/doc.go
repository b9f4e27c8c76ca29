// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It holds two things: ActionableError, used for operational failures of the
// CLI itself (unreadable config, bad extension root), and a catalog of
// Markdown remediation notes keyed by Id, attached to check findings and
// rendered by `foxcheck --explain`.
package issue
