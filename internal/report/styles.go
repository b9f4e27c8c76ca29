// SPDX-License-Identifier: MPL-2.0

package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by the report and the CLI help output.
const (
	// ColorPrimary is purple, used for titles and section headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, used for the banner rules.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green, used for passing findings.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red, used for failures.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber, used for advisories.
	ColorWarning = lipgloss.Color("#F59E0B")
)

// styles is the palette bound to one output writer. Colors are dropped
// automatically when the writer is not a terminal.
type styles struct {
	title   lipgloss.Style
	rule    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		rule:    r.NewStyle().Foreground(ColorMuted),
		success: r.NewStyle().Foreground(ColorSuccess),
		failure: r.NewStyle().Bold(true).Foreground(ColorError),
		warning: r.NewStyle().Foreground(ColorWarning),
	}
}
