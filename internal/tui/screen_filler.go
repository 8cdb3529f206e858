// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

const (
	defaultSubmitText    = "Submit"
	defaultThankYouTitle = "Thank you!"
	progressBarWidth     = 30
)

type publicFormLoadedMsg struct {
	form models.Form
	err  error
}

func (m publicFormLoadedMsg) failure() error { return m.err }

type submittedMsg struct {
	resp models.SubmitResponse
	err  error
}

func (m submittedMsg) failure() error { return m.err }

// signedMsg carries the value the signature pad emitted for a field.
type signedMsg struct {
	fieldID string
	value   string
}

// fillerScreen renders a form the way a respondent fills it in. Visibility
// rules are evaluated again after every change. In preview mode the answer
// is only validated locally.
type fillerScreen struct {
	env     *env
	slug    string
	preview bool

	form    models.Form
	loaded  bool
	loading bool
	err     string
	notice  string

	controls  map[string]*control
	data      models.SubmissionData
	vis       formschema.Visibility
	visible   []models.FieldSchema
	focusID   string
	fieldErrs map[string]string

	submitting bool
	done       *models.SubmitResponse
}

func newFillerScreen(e *env, slug string) *fillerScreen {
	return &fillerScreen{env: e, slug: slug}
}

func newPreviewScreen(e *env, form models.Form) *fillerScreen {
	s := &fillerScreen{env: e, slug: form.Slug, preview: true}
	s.setForm(form)
	return s
}

func (s *fillerScreen) Init() tea.Cmd {
	if s.loaded {
		return nil
	}
	return s.load()
}

func (s *fillerScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board, slug := s.env.ctx, s.env.board, s.slug
	return func() tea.Msg {
		form, err := board.PublicForm(ctx, slug)
		return publicFormLoadedMsg{form: form, err: err}
	}
}

func (s *fillerScreen) setForm(form models.Form) {
	s.form = form
	s.loaded = true
	s.controls = make(map[string]*control, len(form.Fields))
	for _, f := range form.Fields {
		s.controls[f.ID] = newControl(f)
	}
	s.fieldErrs = map[string]string{}
	s.done = nil
	s.focusID = ""
	s.recompute()
}

// recompute collects the answers and evaluates visibility. Focus stays on
// its field while that field is visible.
func (s *fillerScreen) recompute() {
	s.data = models.SubmissionData{}
	for id, c := range s.controls {
		// A cleared signature is "", not nil, and stays in the answer.
		if c.value != nil {
			s.data[id] = c.value
		}
	}
	s.vis = formschema.Evaluate(s.form.Fields, s.form.ConditionalRules, s.data)
	s.visible = formschema.VisibleFields(s.form.Fields, s.vis)

	focusable := s.focusable()
	for _, f := range focusable {
		if f.ID == s.focusID {
			return
		}
	}
	if c := s.focused(); c != nil {
		c.blur()
	}
	s.focusID = ""
	if len(focusable) > 0 {
		s.focusID = focusable[0].ID
		s.controls[s.focusID].focus()
	}
}

func (s *fillerScreen) focusable() []models.FieldSchema {
	out := make([]models.FieldSchema, 0, len(s.visible))
	for _, f := range s.visible {
		if !f.Type.IsLayout() {
			out = append(out, f)
		}
	}
	return out
}

func (s *fillerScreen) focused() *control {
	if s.focusID == "" {
		return nil
	}
	return s.controls[s.focusID]
}

func (s *fillerScreen) typing() bool {
	c := s.focused()
	return s.loaded && s.done == nil && c != nil && c.textual()
}

func (s *fillerScreen) moveFocus(dir int) tea.Cmd {
	focusable := s.focusable()
	if len(focusable) == 0 {
		return nil
	}
	pos := 0
	for i, f := range focusable {
		if f.ID == s.focusID {
			pos = i
		}
	}
	pos = (pos + dir + len(focusable)) % len(focusable)
	return s.focusField(focusable[pos].ID)
}

func (s *fillerScreen) focusField(id string) tea.Cmd {
	if c := s.focused(); c != nil {
		c.blur()
	}
	s.focusID = id
	return s.controls[id].focus()
}

func (s *fillerScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case publicFormLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.err = errorText(msg.err)
			return s, nil
		}
		s.setForm(msg.form)
		return s, nil
	case submittedMsg:
		s.submitting = false
		if msg.err != nil {
			s.err = errorText(msg.err)
			if fields := service.FieldErrors(msg.err); fields != nil {
				s.fieldErrs = fields
			}
			return s, nil
		}
		s.done = &msg.resp
		return s, nil
	case signedMsg:
		if c, ok := s.controls[msg.fieldID]; ok {
			c.setSignature(msg.value)
			delete(s.fieldErrs, msg.fieldID)
			s.recompute()
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *fillerScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.done != nil {
		switch {
		case key.Matches(msg, keys.newItem):
			s.setForm(s.form)
			return s, nil
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.esc):
			return s, pop
		}
		return s, nil
	}

	if !s.loaded {
		switch {
		case key.Matches(msg, keys.retry):
			return s, s.load()
		case key.Matches(msg, keys.esc):
			return s, pop
		}
		return s, nil
	}

	c := s.focused()
	switch {
	case key.Matches(msg, keys.esc):
		return s, pop
	case key.Matches(msg, keys.submit):
		return s, s.submit()
	case key.Matches(msg, keys.tab):
		return s, s.moveFocus(1)
	case key.Matches(msg, keys.backtab):
		return s, s.moveFocus(-1)
	case msg.String() == "up" && (c == nil || c.field.Type != models.FieldTextarea):
		return s, s.moveFocus(-1)
	case msg.String() == "down" && (c == nil || c.field.Type != models.FieldTextarea):
		return s, s.moveFocus(1)
	}

	if c == nil {
		return s, nil
	}
	if c.field.Type == models.FieldSignature && key.Matches(msg, keys.enter) {
		current, _ := c.value.(string)
		return s, push(newSignatureScreen(c.field, current))
	}

	changed, cmd := c.update(msg)
	if changed {
		delete(s.fieldErrs, c.field.ID)
		s.notice = ""
		s.recompute()
	}
	return s, cmd
}

func (s *fillerScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.err, s.notice = "", ""

	data := formschema.DropHidden(s.form.Fields, s.data, s.vis)
	if errs := validators.Check(s.form.Fields, s.form.ConditionalRules, data); len(errs) > 0 {
		s.fieldErrs = errs
		s.err = app.MsgInvalidSubmission
		for _, f := range s.focusable() {
			if _, bad := errs[f.ID]; bad {
				return s.focusField(f.ID)
			}
		}
		return nil
	}
	s.fieldErrs = map[string]string{}

	if s.preview {
		s.notice = "Preview: the answer is valid, nothing was sent"
		return nil
	}

	req := models.SubmitRequest{Data: data, SubmitterEmail: s.submitterEmail(data)}
	s.submitting = true
	ctx, board, slug := s.env.ctx, s.env.board, s.slug
	return func() tea.Msg {
		resp, err := board.Submit(ctx, slug, req)
		return submittedMsg{resp: resp, err: err}
	}
}

// submitterEmail is the answer of the first visible email field.
func (s *fillerScreen) submitterEmail(data models.SubmissionData) string {
	for _, f := range s.visible {
		if f.Type == models.FieldEmail {
			if email, ok := data[f.ID].(string); ok {
				return strings.TrimSpace(email)
			}
		}
	}
	return ""
}

func (s *fillerScreen) View() string {
	title := "FILL IN"
	if s.preview {
		title = "PREVIEW"
	}

	switch {
	case s.done != nil:
		return renderPage(title+" · "+s.form.Title, s.thankYouView(), "n: answer again │ enter/esc: back")
	case !s.loaded:
		body := "Loading..."
		if !s.loading {
			body = inlineError(s.err)
		}
		return renderPage(title, body, "r: retry │ esc: back")
	}

	var b strings.Builder
	if s.form.Description != "" {
		b.WriteString(helpStyle.Render(s.form.Description))
		b.WriteString("\n\n")
	}
	if s.form.Settings.ShowProgressBar {
		b.WriteString(s.progressView())
		b.WriteString("\n\n")
	}

	for _, f := range s.visible {
		c := s.controls[f.ID]
		focused := f.ID == s.focusID

		if f.Type.IsLayout() {
			b.WriteString("  ")
			b.WriteString(c.view(false))
			b.WriteString("\n\n")
			continue
		}

		label := f.Label
		if f.Required {
			label += " *"
		}
		if focused {
			label = selectedStyle.Render(label)
		}
		b.WriteString(cursor(focused) + " " + label + "\n")
		if f.Description != "" {
			b.WriteString("  " + helpStyle.Render(f.Description) + "\n")
		}
		for _, line := range strings.Split(c.view(focused), "\n") {
			b.WriteString("  " + line + "\n")
		}
		if msg := s.fieldErrs[f.ID]; msg != "" {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	submitText := s.form.Settings.SubmitButtonText
	if submitText == "" {
		submitText = defaultSubmitText
	}
	if s.submitting {
		submitText += "..."
	}
	b.WriteString("[" + submitText + "]\n")

	if s.notice != "" {
		b.WriteString("\n" + okStyle.Render(s.notice) + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+s.err) + "\n")
	}

	hotKeys := "tab/↑/↓: next field │ ←/→: choose │ space: toggle │ ctrl+s: " + strings.ToLower(defaultSubmitText) + " │ esc: back"
	return renderPage(title+" · "+s.form.Title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (s *fillerScreen) progressView() string {
	total, answered := 0, 0
	for _, f := range s.focusable() {
		total++
		if !formschema.IsEmpty(s.data[f.ID]) {
			answered++
		}
	}
	filled := 0
	if total > 0 {
		filled = answered * progressBarWidth / total
	}
	return fmt.Sprintf("%s%s %d/%d", strings.Repeat("█", filled), strings.Repeat("░", progressBarWidth-filled), answered, total)
}

func (s *fillerScreen) thankYouView() string {
	title := s.done.ThankYouTitle
	if title == "" {
		title = defaultThankYouTitle
	}

	var b strings.Builder
	b.WriteString(okStyle.Render(title))
	b.WriteString("\n")
	if s.done.ThankYouMessage != "" {
		b.WriteString("\n")
		b.WriteString(s.done.ThankYouMessage)
		b.WriteString("\n")
	}
	if s.done.ThankYouRedirectURL != "" {
		b.WriteString("\nContinue at: ")
		b.WriteString(s.done.ThankYouRedirectURL)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
