// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/service"
)

// headerLines is the height of the tab bar the main loop draws above every
// screen.
const headerLines = 2

const statusTTL = 3 * time.Second

// screen is one page of the main loop.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	// typing reports whether keys go to a text input, which turns the
	// global hotkeys off.
	typing() bool
}

// env is what every screen shares.
type env struct {
	ctx       context.Context
	board     *service.Board
	exportDir string
	copy      func(string) error
	logger    *logger.Logger
}

// commit sends an optimistic change. A change that could not even be
// applied locally reports its error the same way as a rejected one.
func (e *env) commit(mut *service.Mutation, err error, done string) tea.Cmd {
	if err != nil {
		return func() tea.Msg { return mutationDoneMsg{err: err} }
	}
	ctx := e.ctx
	return func() tea.Msg {
		return mutationDoneMsg{err: mut.Commit(ctx), done: done}
	}
}

type tab int

const (
	tabForms tab = iota
	tabPipeline
	tabDashboard
)

var tabNames = []string{"1 Forms", "2 Pipeline", "3 Dashboard"}

// mainModel routes between tabs and a stack of screens per tab, and owns the
// error overlay and session expiry.
type mainModel struct {
	env      *env
	username string

	tab   tab
	stack []screen

	overlay *errorOverlayModel
	status  string

	width, height int

	logout  bool
	expired bool
}

func newMainModel(e *env, username string) mainModel {
	return mainModel{
		env:      e,
		username: username,
		tab:      tabForms,
		stack:    []screen{newFormsScreen(e)},
	}
}

func (m mainModel) Init() tea.Cmd {
	return m.top().Init()
}

func (m mainModel) top() screen {
	return m.stack[len(m.stack)-1]
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		msg.Height -= headerLines
		return m.forward(msg)
	case tea.MouseMsg:
		msg.Y -= headerLines
		return m.forward(msg)
	case pushScreen:
		m.stack = append(m.stack, msg.s)
		return m, msg.s.Init()
	case replaceScreen:
		m.stack[len(m.stack)-1] = msg.s
		return m, msg.s.Init()
	case popScreen:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, m.top().Init()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if res, ok := msg.(resultMsg); ok && res.failure() != nil {
		err := res.failure()
		if service.IsSessionExpired(err) {
			m.expired = true
			m.overlay = &errorOverlayModel{message: app.MsgSessionExpired}
			return m, nil
		}
		if done, ok := msg.(mutationDoneMsg); ok {
			m.env.logger.Debug().Err(done.err).Msg("change rolled back")
			m.overlay = &errorOverlayModel{message: errorText(done.err)}
		}
	}

	var statusCmd tea.Cmd
	if done, ok := msg.(mutationDoneMsg); ok && done.err == nil && done.done != "" {
		m.status = done.done
		statusCmd = tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
	}

	model, cmd := m.forward(msg)
	return model, tea.Batch(cmd, statusCmd)
}

func (m mainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay != nil {
		switch msg.String() {
		case "enter", "esc":
			m.overlay = nil
			if m.expired {
				m.logout = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.top().typing() {
		return m.forward(msg)
	}

	switch msg.String() {
	case "q":
		if len(m.stack) == 1 {
			return m, tea.Quit
		}
	case "L":
		m.logout = true
		return m, tea.Quit
	case "1":
		return m.switchTab(tabForms)
	case "2":
		return m.switchTab(tabPipeline)
	case "3":
		return m.switchTab(tabDashboard)
	}
	return m.forward(msg)
}

func (m mainModel) switchTab(t tab) (tea.Model, tea.Cmd) {
	var root screen
	switch t {
	case tabPipeline:
		root = newPipelineScreen(m.env)
	case tabDashboard:
		root = newDashboardScreen(m.env)
	default:
		root = newFormsScreen(m.env)
	}
	m.tab = t
	m.stack = []screen{root}
	return m, root.Init()
}

func (m mainModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = updated
	return m, cmd
}

func (m mainModel) View() string {
	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	if m.overlay != nil {
		box := m.overlay.View()
		if m.width > 0 && m.height > headerLines {
			box = lipgloss.Place(m.width, m.height-headerLines, lipgloss.Center, lipgloss.Center, box)
		}
		b.WriteString(box)
		return b.String()
	}

	b.WriteString(m.top().View())
	return b.String()
}

func (m mainModel) tabBar() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts[i] = selectedStyle.Render("[" + name + "]")
		} else {
			parts[i] = " " + name + " "
		}
	}
	bar := strings.Join(parts, " ")
	if m.username != "" {
		bar += helpStyle.Render("   " + m.username + " · L: sign out")
	}
	if m.status != "" {
		bar += "   " + okStyle.Render(m.status)
	}
	return bar
}
