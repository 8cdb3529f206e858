// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/models"
)

const untitledForm = "Untitled form"

type formsLoadedMsg struct{ err error }

func (m formsLoadedMsg) failure() error { return m.err }

type formCreatedMsg struct {
	form models.Form
	err  error
}

func (m formCreatedMsg) failure() error { return m.err }

type embedCopiedMsg struct {
	code    string
	err     error
	copyErr error
}

func (m embedCopiedMsg) failure() error { return m.err }

// formsScreen lists the operator's forms.
type formsScreen struct {
	env *env

	idx     int
	loaded  bool
	loading bool
	err     string
	notice  string
	embed   string

	confirm *confirmModel
}

func newFormsScreen(e *env) *formsScreen {
	return &formsScreen{env: e}
}

func (s *formsScreen) Init() tea.Cmd {
	if s.loaded {
		return nil
	}
	return s.load()
}

func (s *formsScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg { return formsLoadedMsg{err: board.LoadForms(ctx)} }
}

func (s *formsScreen) typing() bool { return false }

func (s *formsScreen) selected() (models.Form, bool) {
	forms := s.env.board.Forms()
	if len(forms) == 0 {
		return models.Form{}, false
	}
	return forms[clampIndex(s.idx, len(forms))], true
}

func (s *formsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case formsLoadedMsg:
		s.loading = false
		s.loaded = msg.err == nil
		s.err = errorText(msg.err)
		return s, nil
	case formCreatedMsg:
		if msg.err != nil {
			s.err = errorText(msg.err)
			return s, nil
		}
		s.idx = 0
		return s, push(newBuilderScreen(s.env, msg.form))
	case embedCopiedMsg:
		switch {
		case msg.err != nil:
			s.err = errorText(msg.err)
		case msg.copyErr != nil:
			s.notice = "Clipboard unavailable, embed code:"
			s.embed = msg.code
		default:
			s.notice = "Embed code copied to clipboard"
			s.embed = ""
		}
		return s, nil
	case mutationDoneMsg:
		s.idx = clampIndex(s.idx, len(s.env.board.Forms()))
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *formsScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.confirm != nil {
		done, cmd := s.confirm.update(msg)
		if done {
			s.confirm = nil
		}
		return s, cmd
	}

	s.notice, s.embed = "", ""
	forms := s.env.board.Forms()

	switch {
	case key.Matches(msg, keys.up):
		if s.idx > 0 {
			s.idx--
		}
		return s, nil
	case key.Matches(msg, keys.down):
		if s.idx < len(forms)-1 {
			s.idx++
		}
		return s, nil
	case key.Matches(msg, keys.retry):
		return s, s.load()
	case key.Matches(msg, keys.newItem):
		return s, s.create()
	case key.Matches(msg, keys.templates):
		return s, push(newTemplatesScreen(s.env))
	}

	form, ok := s.selected()
	if !ok {
		return s, nil
	}
	if service.IsPending(form.ID) {
		s.notice = service.ErrorMessage(service.ErrPendingItem)
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.enter), key.Matches(msg, keys.edit):
		f, ok := s.env.board.Form(form.ID)
		if !ok {
			return s, nil
		}
		return s, push(newBuilderScreen(s.env, f))
	case key.Matches(msg, keys.publish):
		next := models.StatusPublished
		if form.Status == models.StatusPublished {
			next = models.StatusClosed
		}
		mut, err := s.env.board.SetFormStatus(form.ID, next)
		return s, s.env.commit(mut, err, fmt.Sprintf("%q is now %s", form.Title, next))
	case key.Matches(msg, keys.archive):
		next := models.StatusArchived
		if form.Status == models.StatusArchived {
			next = models.StatusDraft
		}
		mut, err := s.env.board.SetFormStatus(form.ID, next)
		return s, s.env.commit(mut, err, fmt.Sprintf("%q is now %s", form.Title, next))
	case key.Matches(msg, keys.duplicate):
		mut, err := s.env.board.DuplicateForm(form.ID)
		return s, s.env.commit(mut, err, "Form duplicated")
	case key.Matches(msg, keys.delete):
		s.confirm = newConfirm(fmt.Sprintf("Delete %q and all its submissions", form.Title), func() tea.Cmd {
			mut, err := s.env.board.DeleteForm(form.ID)
			return s.env.commit(mut, err, "Form deleted")
		})
		return s, nil
	case key.Matches(msg, keys.subs):
		return s, push(newSubmissionsScreen(s.env, form))
	case key.Matches(msg, keys.fill):
		if form.Status != models.StatusPublished {
			s.notice = "Publish the form (p) before filling it in"
			return s, nil
		}
		return s, push(newFillerScreen(s.env, form.Slug))
	case key.Matches(msg, keys.embed):
		return s, s.copyEmbed(form.ID)
	}
	return s, nil
}

func (s *formsScreen) create() tea.Cmd {
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg {
		form, err := board.CreateForm(ctx, models.FormSchema{
			Title:  untitledForm,
			Status: models.StatusDraft,
			Fields: []models.FieldSchema{},
		})
		return formCreatedMsg{form: form, err: err}
	}
}

func (s *formsScreen) copyEmbed(id string) tea.Cmd {
	ctx, board, copyFn := s.env.ctx, s.env.board, s.env.copy
	return func() tea.Msg {
		embed, err := board.Embed(ctx, id)
		if err != nil {
			return embedCopiedMsg{err: err}
		}
		return embedCopiedMsg{code: embed.Code, copyErr: copyFn(embed.Code)}
	}
}

func (s *formsScreen) View() string {
	if s.confirm != nil {
		return s.confirm.View()
	}

	var b strings.Builder
	forms := s.env.board.Forms()
	idx := clampIndex(s.idx, len(forms))

	switch {
	case s.loading && len(forms) == 0:
		b.WriteString("Loading...\n")
	case s.err != "" && !s.loaded:
	case len(forms) == 0:
		b.WriteString("No forms yet. Press n to create one or t to start from a template.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-32s │ %-9s │ %7s │ %s\n", "Title", "Status", "Answers", "Updated"))
		b.WriteString("  " + strings.Repeat("─", 33) + "┼" + strings.Repeat("─", 11) + "┼" + strings.Repeat("─", 9) + "┼" + strings.Repeat("─", 16) + "\n")
		for i, f := range forms {
			updated := "-"
			if !f.UpdatedAt.IsZero() {
				updated = humanize.Time(f.UpdatedAt)
			}
			row := fmt.Sprintf("%s %s │ %-9s │ %7s │ %s",
				cursor(i == idx), padRight(f.Title, 32), f.Status, humanize.Comma(int64(f.SubmissionsCount)), updated)
			switch {
			case service.IsPending(f.ID):
				row = pendingStyle.Render(row + "  saving...")
			case i == idx:
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(s.notice)
		b.WriteString("\n")
	}
	if s.embed != "" {
		b.WriteString(s.embed)
		b.WriteString("\n")
	}
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(inlineError(s.err))
		b.WriteString("\n")
	}

	hotKeys := "enter: edit │ n: new │ t: templates │ p: publish/close │ a: archive │ c: duplicate │ d: delete\n" +
		"  s: submissions │ f: fill in │ y: copy embed │ r: reload │ q: quit"
	return renderPage(fmt.Sprintf("FORMS (%s)", plural(len(forms), "form", "forms")), strings.TrimRight(b.String(), "\n"), hotKeys)
}
