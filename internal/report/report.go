// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"io"
	"strings"

	"foxcheck-cli/internal/check"
	"foxcheck-cli/internal/config"
	"foxcheck-cli/internal/issue"
)

const (
	iconSuccess = "✅ "
	iconFailure = "❌ "
	iconWarning = "⚠️  "
)

var rule = strings.Repeat("=", 60)

// Options controls how a report is written.
type Options struct {
	// Format selects text, json or yaml output. Empty means text.
	Format config.OutputFormat
	// Explain appends the remediation note of every issue the report raised.
	// Text output renders the notes after the summary; structured output
	// embeds the Markdown and doc links in each finding.
	Explain bool
	// Style is the glamour style used for notes ("auto", "dark", "light", "notty").
	Style string
}

// Write renders rep to w in the requested format.
func Write(w io.Writer, rep *check.Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return writeText(w, rep, opts)
	case config.FormatJSON:
		return writeJSON(w, rep, opts.Explain)
	case config.FormatYAML:
		return writeYAML(w, rep, opts.Explain)
	default:
		return opts.Format.Validate()
	}
}

func writeText(w io.Writer, rep *check.Report, opts Options) error {
	st := newStyles(w)
	var sb strings.Builder

	sb.WriteString(st.rule.Render(rule) + "\n")
	sb.WriteString(st.title.Render("Firefox Extension Validation") + "\n")
	sb.WriteString(st.rule.Render(rule) + "\n")

	for i, res := range rep.Results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(st.title.Render(res.Title) + "\n")
		for _, f := range res.Findings {
			sb.WriteString(formatFinding(st, f) + "\n")
		}
	}

	sb.WriteString("\n" + st.rule.Render(rule) + "\n")
	sb.WriteString(st.title.Render("Validation Summary") + "\n")
	sb.WriteString(st.rule.Render(rule) + "\n")
	for _, res := range rep.Results {
		if res.Passed {
			sb.WriteString(iconSuccess + st.success.Render("PASSED") + ": " + res.Name + "\n")
		} else {
			sb.WriteString(iconFailure + st.failure.Render("FAILED") + ": " + res.Name + "\n")
		}
	}
	sb.WriteString(st.rule.Render(rule) + "\n")

	if rep.Passed() {
		sb.WriteString("\n🎉 " + st.success.Render("All validation checks passed!") + "\n")
		sb.WriteString("The extension should be compatible with Firefox 109+\n")
	} else {
		sb.WriteString("\n" + iconWarning + st.warning.Render("Some validation checks failed.") + "\n")
		sb.WriteString("Please review the issues above.\n")
	}

	if opts.Explain {
		notes, err := explain(rep.Issues(), opts.Style)
		if err != nil {
			return err
		}
		sb.WriteString(notes)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatFinding(st styles, f check.Finding) string {
	switch f.Status {
	case check.StatusSuccess:
		return iconSuccess + st.success.Render(f.Message)
	case check.StatusFailure:
		return iconFailure + st.failure.Render(f.Message)
	default:
		return iconWarning + st.warning.Render(f.Message)
	}
}

// explain renders each issue note once, in the order the issues were raised.
func explain(ids []issue.Id, style string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	if style == "" {
		style = "auto"
	}

	var sb strings.Builder
	for _, id := range ids {
		is := issue.Get(id)
		if is == nil {
			continue
		}
		out, err := is.Render(style)
		if err != nil {
			return "", fmt.Errorf("render note %q: %w", is.Title(), err)
		}
		sb.WriteString("\n" + out)
	}
	return sb.String(), nil
}
