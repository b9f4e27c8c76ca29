// SPDX-License-Identifier: MPL-2.0

package check

import (
	"fmt"

	"foxcheck-cli/internal/issue"
	"foxcheck-cli/pkg/types"
)

const (
	// StatusSuccess marks a finding that confirms something is in order.
	StatusSuccess Status = "success"
	// StatusFailure marks a finding that caused its check to fail.
	StatusFailure Status = "failure"
	// StatusWarning marks an advisory finding; it never affects the outcome.
	StatusWarning Status = "warning"
)

type (
	// Status classifies a single finding.
	Status string

	// Finding is one reported line of a check.
	Finding struct {
		Status  Status
		Message string
		// Issue links the finding to a remediation note; zero for none.
		Issue issue.Id
	}

	// Result is the outcome of one check.
	Result struct {
		// Name labels the check in the summary (e.g. "Required files").
		Name string
		// Title is the header printed before the findings.
		Title    string
		Passed   bool
		Findings []Finding
	}

	// Report holds the results of a suite run in execution order.
	Report struct {
		Results []Result
	}

	// recorder accumulates findings for a check in progress.
	recorder struct {
		findings []Finding
	}
)

// Passed reports whether every check passed. An empty report passes.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// ExitCode maps the report to the process exit status.
func (r *Report) ExitCode() types.ExitCode {
	if r.Passed() {
		return types.ExitSuccess
	}
	return types.ExitFailure
}

// Failed returns the results of the checks that did not pass.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Issues returns the distinct issue ids of failure and warning findings in
// first-seen order.
func (r *Report) Issues() []issue.Id {
	seen := make(map[issue.Id]bool)
	var ids []issue.Id
	for _, res := range r.Results {
		for _, f := range res.Findings {
			if f.Issue == 0 || f.Status == StatusSuccess || seen[f.Issue] {
				continue
			}
			seen[f.Issue] = true
			ids = append(ids, f.Issue)
		}
	}
	return ids
}

func (r *recorder) success(format string, args ...any) {
	r.findings = append(r.findings, Finding{Status: StatusSuccess, Message: fmt.Sprintf(format, args...)})
}

func (r *recorder) failure(id issue.Id, format string, args ...any) {
	r.findings = append(r.findings, Finding{Status: StatusFailure, Message: fmt.Sprintf(format, args...), Issue: id})
}

func (r *recorder) warning(id issue.Id, format string, args ...any) {
	r.findings = append(r.findings, Finding{Status: StatusWarning, Message: fmt.Sprintf(format, args...), Issue: id})
}

func (r *recorder) result(name, title string, passed bool) Result {
	return Result{Name: name, Title: title, Passed: passed, Findings: r.findings}
}
