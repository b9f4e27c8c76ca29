// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"foxcheck-cli/internal/check"
	"foxcheck-cli/internal/issue"

	"gopkg.in/yaml.v3"
)

type (
	// Document is the machine-readable form of a report.
	Document struct {
		Passed   bool             `json:"passed" yaml:"passed"`
		ExitCode int              `json:"exit_code" yaml:"exit_code"`
		Results  []ResultDocument `json:"results" yaml:"results"`
	}

	// ResultDocument is one check outcome.
	ResultDocument struct {
		Name     string            `json:"name" yaml:"name"`
		Passed   bool              `json:"passed" yaml:"passed"`
		Findings []FindingDocument `json:"findings" yaml:"findings"`
	}

	// FindingDocument is one finding; Issue names the remediation note, if any.
	// Explanation and Docs carry the note itself when explanations are on.
	FindingDocument struct {
		Status      check.Status `json:"status" yaml:"status"`
		Message     string       `json:"message" yaml:"message"`
		Issue       string       `json:"issue,omitempty" yaml:"issue,omitempty"`
		Explanation string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
		Docs        []string     `json:"docs,omitempty" yaml:"docs,omitempty"`
	}
)

// NewDocument converts rep into its machine-readable form. With explain set,
// every finding that names a note also carries its Markdown text and links.
func NewDocument(rep *check.Report, explain bool) Document {
	doc := Document{
		Passed:   rep.Passed(),
		ExitCode: int(rep.ExitCode()),
		Results:  make([]ResultDocument, 0, len(rep.Results)),
	}
	for _, res := range rep.Results {
		rd := ResultDocument{
			Name:     res.Name,
			Passed:   res.Passed,
			Findings: make([]FindingDocument, 0, len(res.Findings)),
		}
		for _, f := range res.Findings {
			fd := FindingDocument{Status: f.Status, Message: f.Message}
			if is := issue.Get(f.Issue); is != nil {
				fd.Issue = is.Title()
				if explain {
					fd.Explanation = strings.TrimSpace(string(is.MarkdownMsg()))
					for _, link := range is.DocLinks() {
						fd.Docs = append(fd.Docs, string(link))
					}
				}
			}
			rd.Findings = append(rd.Findings, fd)
		}
		doc.Results = append(doc.Results, rd)
	}
	return doc
}

func writeJSON(w io.Writer, rep *check.Report, explain bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(rep, explain)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, rep *check.Report, explain bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(rep, explain)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}
