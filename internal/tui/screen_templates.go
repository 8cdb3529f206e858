// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/models"
)

type templatesLoadedMsg struct{ err error }

func (m templatesLoadedMsg) failure() error { return m.err }

type templateUsedMsg struct {
	form models.Form
	err  error
}

func (m templateUsedMsg) failure() error { return m.err }

// templatesScreen starts a new draft form from the template catalog.
type templatesScreen struct {
	env *env

	idx      int
	loading  bool
	creating bool
	err      string
}

func newTemplatesScreen(e *env) *templatesScreen {
	return &templatesScreen{env: e}
}

func (s *templatesScreen) Init() tea.Cmd {
	if len(s.env.board.Templates()) > 0 {
		return nil
	}
	return s.load()
}

func (s *templatesScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg { return templatesLoadedMsg{err: board.LoadTemplates(ctx)} }
}

func (s *templatesScreen) typing() bool { return false }

func (s *templatesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		s.loading = false
		s.err = errorText(msg.err)
		return s, nil
	case templateUsedMsg:
		s.creating = false
		if msg.err != nil {
			s.err = errorText(msg.err)
			return s, nil
		}
		return s, replace(newBuilderScreen(s.env, msg.form))
	case tea.KeyMsg:
		templates := s.env.board.Templates()
		switch {
		case key.Matches(msg, keys.esc):
			return s, pop
		case key.Matches(msg, keys.up):
			if s.idx > 0 {
				s.idx--
			}
		case key.Matches(msg, keys.down):
			if s.idx < len(templates)-1 {
				s.idx++
			}
		case key.Matches(msg, keys.retry):
			return s, s.load()
		case key.Matches(msg, keys.enter):
			if s.creating || len(templates) == 0 {
				return s, nil
			}
			s.creating = true
			return s, s.use(templates[clampIndex(s.idx, len(templates))].ID)
		}
	}
	return s, nil
}

func (s *templatesScreen) use(id string) tea.Cmd {
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg {
		form, err := board.UseTemplate(ctx, id)
		return templateUsedMsg{form: form, err: err}
	}
}

func (s *templatesScreen) View() string {
	var b strings.Builder
	templates := s.env.board.Templates()
	idx := clampIndex(s.idx, len(templates))

	switch {
	case s.loading:
		b.WriteString("Loading...\n")
	case len(templates) == 0 && s.err == "":
		b.WriteString("No templates available.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-28s │ %-14s │ %s\n", "Template", "Category", "Fields"))
		b.WriteString("  " + strings.Repeat("─", 29) + "┼" + strings.Repeat("─", 16) + "┼" + strings.Repeat("─", 8) + "\n")
		for i, t := range templates {
			row := fmt.Sprintf("%s %s │ %s │ %d", cursor(i == idx), padRight(t.Name, 28), padRight(t.Category, 14), len(t.Fields))
			if i == idx {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
		if len(templates) > 0 {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(templates[idx].Description))
			b.WriteString("\n")
		}
	}

	if s.creating {
		b.WriteString("\nCreating form...\n")
	}
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(inlineError(s.err))
		b.WriteString("\n")
	}

	return renderPage("NEW FORM FROM TEMPLATE", strings.TrimRight(b.String(), "\n"), "enter: use template │ r: reload │ esc: back")
}
