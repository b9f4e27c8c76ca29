// SPDX-License-Identifier: MPL-2.0

// Package report renders a check.Report as the emoji status report, as JSON
// or YAML, and appends glamour-rendered remediation notes on request.
package report
