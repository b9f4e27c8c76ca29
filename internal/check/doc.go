// SPDX-License-Identifier: MPL-2.0

// Package check implements the Firefox compatibility checks run by foxcheck.
//
// A Checker inspects an extension source tree through an fs.FS and returns a
// Result: the check's pass/fail outcome plus the ordered findings that explain
// it. Checks share no state and never modify the tree. Suite runs a fixed,
// ordered list of checks sequentially and collects a Report.
package check
