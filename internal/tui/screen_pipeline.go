// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

const pipelineColumnWidth = 22

const (
	leadName = iota
	leadEmail
	leadPhone
	leadCompany
)

var leadInputLabels = []string{"Name", "Email", "Phone", "Company"}

type leadsLoadedMsg struct{ err error }

func (m leadsLoadedMsg) failure() error { return m.err }

// pipelineScreen is the lead board: one column per pipeline status.
type pipelineScreen struct {
	env *env

	col, row int
	loaded   bool
	loading  bool
	detail   bool
	err      string

	adding  bool
	inputs  []textinput.Model
	focus   int
	formErr string

	confirm *confirmModel
}

func newPipelineScreen(e *env) *pipelineScreen {
	return &pipelineScreen{env: e}
}

func (s *pipelineScreen) Init() tea.Cmd {
	if s.loaded {
		return nil
	}
	return s.load()
}

func (s *pipelineScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg { return leadsLoadedMsg{err: board.LoadLeads(ctx)} }
}

func (s *pipelineScreen) typing() bool { return s.adding }

func (s *pipelineScreen) column() []models.Lead {
	return s.env.board.Pipeline()[models.PipelineStatuses[s.col]]
}

func (s *pipelineScreen) selected() (models.Lead, bool) {
	leads := s.column()
	if len(leads) == 0 {
		return models.Lead{}, false
	}
	return leads[clampIndex(s.row, len(leads))], true
}

func (s *pipelineScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case leadsLoadedMsg:
		s.loading = false
		s.loaded = msg.err == nil
		s.err = errorText(msg.err)
		return s, nil
	case mutationDoneMsg:
		s.row = clampIndex(s.row, len(s.column()))
		return s, nil
	case tea.KeyMsg:
		if s.adding {
			return s.handleFormKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *pipelineScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.confirm != nil {
		done, cmd := s.confirm.update(msg)
		if done {
			s.confirm = nil
		}
		return s, cmd
	}

	lead, ok := s.selected()
	last := len(models.PipelineStatuses) - 1

	switch {
	case key.Matches(msg, keys.esc):
		s.detail = false
	case key.Matches(msg, keys.retry):
		return s, s.load()
	case key.Matches(msg, keys.left):
		if s.col > 0 {
			s.col--
			s.row = clampIndex(s.row, len(s.column()))
		}
	case key.Matches(msg, keys.right):
		if s.col < last {
			s.col++
			s.row = clampIndex(s.row, len(s.column()))
		}
	case key.Matches(msg, keys.up):
		if s.row > 0 {
			s.row--
		}
	case key.Matches(msg, keys.down):
		if s.row < len(s.column())-1 {
			s.row++
		}
	case key.Matches(msg, keys.moveLeft):
		if ok && s.col > 0 {
			return s, s.move(lead, s.col-1)
		}
	case key.Matches(msg, keys.moveRight):
		if ok && s.col < last {
			return s, s.move(lead, s.col+1)
		}
	case key.Matches(msg, keys.enter):
		s.detail = ok && !s.detail
	case key.Matches(msg, keys.newItem):
		return s, s.openForm()
	case key.Matches(msg, keys.delete):
		if ok {
			s.confirm = newConfirm(fmt.Sprintf("Delete lead %q", leadTitle(lead)), func() tea.Cmd {
				mut, err := s.env.board.DeleteLead(lead.ID)
				return s.env.commit(mut, err, "Lead deleted")
			})
		}
	}
	return s, nil
}

// move follows the lead into its new column.
func (s *pipelineScreen) move(lead models.Lead, col int) tea.Cmd {
	status := models.PipelineStatuses[col]
	mut, err := s.env.board.MoveLead(lead.ID, status)
	if err == nil {
		s.col = col
		for i, l := range s.column() {
			if l.ID == lead.ID {
				s.row = i
			}
		}
	}
	return s.env.commit(mut, err, "")
}

func (s *pipelineScreen) openForm() tea.Cmd {
	s.inputs = make([]textinput.Model, len(leadInputLabels))
	for i, label := range leadInputLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 200
		in.Prompt = ""
		s.inputs[i] = in
	}
	s.adding = true
	s.focus = leadName
	s.formErr = ""
	return s.inputs[leadName].Focus()
}

func (s *pipelineScreen) handleFormKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		s.adding = false
		return s, nil
	case key.Matches(msg, keys.tab), msg.String() == "down":
		s.focus = moveFocus(s.inputs, s.focus, 1)
		return s, nil
	case key.Matches(msg, keys.backtab), msg.String() == "up":
		s.focus = moveFocus(s.inputs, s.focus, -1)
		return s, nil
	case key.Matches(msg, keys.enter):
		if s.focus < len(s.inputs)-1 {
			s.focus = moveFocus(s.inputs, s.focus, 1)
			return s, nil
		}
		return s, s.createLead()
	case key.Matches(msg, keys.save):
		return s, s.createLead()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	s.formErr = ""
	return s, cmd
}

func (s *pipelineScreen) createLead() tea.Cmd {
	lead := models.Lead{
		Name:    strings.TrimSpace(s.inputs[leadName].Value()),
		Email:   strings.TrimSpace(s.inputs[leadEmail].Value()),
		Phone:   strings.TrimSpace(s.inputs[leadPhone].Value()),
		Company: strings.TrimSpace(s.inputs[leadCompany].Value()),
		Status:  models.PipelineStatuses[s.col],
	}
	if err := validators.NewCRMValidator().Validate(s.env.ctx, lead); err != nil {
		s.formErr = leadFormError(err)
		return nil
	}
	s.adding = false
	mut := s.env.board.CreateLead(lead)
	return s.env.commit(mut, nil, "Lead added")
}

func leadFormError(err error) string {
	if errors.Is(err, validators.ErrInvalidLead) {
		return "Enter a name or a valid email"
	}
	return err.Error()
}

func (s *pipelineScreen) View() string {
	if s.confirm != nil {
		return s.confirm.View()
	}
	if s.adding {
		return s.formView()
	}

	var b strings.Builder
	switch {
	case s.loading && !s.loaded:
		b.WriteString("Loading...\n")
	case s.loaded:
		b.WriteString(s.boardView())
		if lead, ok := s.selected(); ok && s.detail {
			b.WriteString("\n")
			b.WriteString(leadDetail(lead))
		}
	}
	if s.err != "" {
		b.WriteString("\n" + inlineError(s.err) + "\n")
	}

	hotKeys := "←/→ ↑/↓: select │ </>: move │ enter: details │ n: new │ d: delete │ r: reload"
	return renderPage("PIPELINE", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (s *pipelineScreen) boardView() string {
	pipeline := s.env.board.Pipeline()
	columns := make([]string, 0, len(models.PipelineStatuses))
	for c, status := range models.PipelineStatuses {
		leads := pipeline[status]
		lines := []string{
			titleStyle.Render(fitText(fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), len(leads)), pipelineColumnWidth)),
			strings.Repeat("─", pipelineColumnWidth),
		}
		row := clampIndex(s.row, len(leads))
		for i, l := range leads {
			line := padRight(leadTitle(l), pipelineColumnWidth)
			switch {
			case c == s.col && i == row:
				line = selectedStyle.Render(line)
			case service.IsPending(l.ID):
				line = pendingStyle.Render(line)
			}
			lines = append(lines, line)
		}
		if len(leads) == 0 {
			lines = append(lines, helpStyle.Render(padRight("-", pipelineColumnWidth)))
		}
		columns = append(columns, padStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n"
}

func (s *pipelineScreen) formView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Status: %s\n\n", models.PipelineStatuses[s.col]))
	for i, label := range leadInputLabels {
		b.WriteString(fmt.Sprintf("%s %-8s %s\n", cursor(i == s.focus), label+":", s.inputs[i].View()))
	}
	if s.formErr != "" {
		b.WriteString("\n" + errorStyle.Render(s.formErr) + "\n")
	}
	return renderPage("NEW LEAD", strings.TrimRight(b.String(), "\n"), "tab/↑/↓: field │ enter/ctrl+s: save │ esc: cancel")
}

func leadDetail(l models.Lead) string {
	rows := []string{
		"Name:    " + valueOrDash(l.Name),
		"Email:   " + valueOrDash(l.Email),
		"Phone:   " + valueOrDash(l.Phone),
		"Company: " + valueOrDash(l.Company),
		"Source:  " + valueOrDash(l.Source),
	}
	if !l.CreatedAt.IsZero() {
		rows = append(rows, "Created: "+humanize.Time(l.CreatedAt))
	}
	return panelStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// leadTitle falls back to the email when a lead has no name.
func leadTitle(l models.Lead) string {
	if l.Name != "" {
		return l.Name
	}
	return valueOrDash(l.Email)
}
