// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"foxcheck-cli/internal/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle is for the command name in help output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(report.ColorPrimary)

	// SubtitleStyle is for help section labels.
	SubtitleStyle = lipgloss.NewStyle().Foreground(report.ColorMuted)

	// ErrorStyle prefixes operational errors on stderr.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(report.ColorError)

	// WarningStyle marks watch-mode notices.
	WarningStyle = lipgloss.NewStyle().Foreground(report.ColorWarning)

	// HighlightStyle marks watch-mode progress arrows and issue names.
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)
