// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import tea "github.com/charmbracelet/bubbletea"

// NavigateTo switches the sign-in flow to another page. Payload, when set,
// is delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the sign-in flow when Err is nil.
type LoginResult struct {
	Err      error
	Username string
}

// resultMsg is an async result that may carry a failed API call. The main
// loop inspects every one of them for an expired session.
type resultMsg interface {
	failure() error
}

// pushScreen opens s on top of the current screen.
type pushScreen struct{ s screen }

// replaceScreen swaps the current screen for s.
type replaceScreen struct{ s screen }

// popScreen goes back to the previous screen.
type popScreen struct{}

// mutationDoneMsg reports a committed or rolled back optimistic change.
type mutationDoneMsg struct {
	err  error
	done string
}

func (m mutationDoneMsg) failure() error { return m.err }

type clearStatusMsg struct{}

func push(s screen) tea.Cmd {
	return func() tea.Msg { return pushScreen{s: s} }
}

func replace(s screen) tea.Cmd {
	return func() tea.Msg { return replaceScreen{s: s} }
}

func pop() tea.Msg {
	return popScreen{}
}
