// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import tea "github.com/charmbracelet/bubbletea"

// confirmModel asks y/n before a destructive action. onYes runs only on y.
type confirmModel struct {
	message string
	onYes   func() tea.Cmd
}

func newConfirm(message string, onYes func() tea.Cmd) *confirmModel {
	return &confirmModel{message: message, onYes: onYes}
}

// update reports whether the prompt is finished and the command to run.
func (m *confirmModel) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return true, m.onYes()
	case "n", "N", "esc":
		return true, nil
	}
	return false, nil
}

func (m *confirmModel) View() string {
	content := m.message + "?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
