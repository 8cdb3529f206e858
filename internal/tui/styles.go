// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	unreadStyle     = lipgloss.NewStyle().Bold(true)
	pendingStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	padStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
)

// bandStyles colors NPS scores by band.
var bandStyles = map[string]lipgloss.Style{
	"red":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"amber": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"green": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}
