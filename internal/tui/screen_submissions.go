// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/formdesk/internal/export"
	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/signature"
	"github.com/MKhiriev/formdesk/models"
)

const exportFileMode = 0o644

type submissionsLoadedMsg struct{ err error }

func (m submissionsLoadedMsg) failure() error { return m.err }

type exportedMsg struct {
	path string
	err  error
}

func (m exportedMsg) failure() error { return m.err }

// submissionsScreen lists the answers of one form. Opening an answer marks
// it read.
type submissionsScreen struct {
	env  *env
	form models.Form

	idx     int
	loaded  bool
	loading bool
	detail  bool
	err     string
	notice  string

	confirm *confirmModel
}

func newSubmissionsScreen(e *env, form models.Form) *submissionsScreen {
	return &submissionsScreen{env: e, form: form}
}

func (s *submissionsScreen) Init() tea.Cmd {
	if s.loaded {
		return nil
	}
	return s.load()
}

func (s *submissionsScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board, id := s.env.ctx, s.env.board, s.form.ID
	return func() tea.Msg { return submissionsLoadedMsg{err: board.LoadSubmissions(ctx, id)} }
}

func (s *submissionsScreen) typing() bool { return false }

func (s *submissionsScreen) current() (models.SubmissionsResponse, models.FormSubmission, bool) {
	resp, _ := s.env.board.Submissions(s.form.ID)
	if len(resp.Submissions) == 0 {
		return resp, models.FormSubmission{}, false
	}
	return resp, resp.Submissions[clampIndex(s.idx, len(resp.Submissions))], true
}

func (s *submissionsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submissionsLoadedMsg:
		s.loading = false
		s.loaded = msg.err == nil
		s.err = errorText(msg.err)
		return s, nil
	case exportedMsg:
		if msg.err != nil {
			s.err = errorText(msg.err)
			return s, nil
		}
		s.notice = "Exported to " + msg.path
		return s, nil
	case mutationDoneMsg:
		resp, _ := s.env.board.Submissions(s.form.ID)
		s.idx = clampIndex(s.idx, len(resp.Submissions))
		if len(resp.Submissions) == 0 {
			s.detail = false
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *submissionsScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.confirm != nil {
		done, cmd := s.confirm.update(msg)
		if done {
			s.confirm = nil
		}
		return s, cmd
	}

	s.notice = ""
	resp, sub, ok := s.current()

	switch {
	case key.Matches(msg, keys.esc):
		if s.detail {
			s.detail = false
			return s, nil
		}
		return s, pop
	case key.Matches(msg, keys.retry):
		return s, s.load()
	case key.Matches(msg, keys.export):
		return s, s.export()
	case key.Matches(msg, keys.up):
		if s.idx > 0 {
			s.idx--
			return s, s.openIfDetail()
		}
	case key.Matches(msg, keys.down):
		if s.idx < len(resp.Submissions)-1 {
			s.idx++
			return s, s.openIfDetail()
		}
	case key.Matches(msg, keys.enter):
		if ok {
			s.detail = true
			return s, s.markRead(sub)
		}
	case key.Matches(msg, keys.delete):
		if ok {
			s.confirm = newConfirm(fmt.Sprintf("Delete the answer from %s", valueOrDash(sub.SubmitterEmail)), func() tea.Cmd {
				mut, err := s.env.board.DeleteSubmission(s.form.ID, sub.ID)
				return s.env.commit(mut, err, "Answer deleted")
			})
		}
	}
	return s, nil
}

// openIfDetail marks the newly selected answer read while the detail view
// is open.
func (s *submissionsScreen) openIfDetail() tea.Cmd {
	if !s.detail {
		return nil
	}
	if _, sub, ok := s.current(); ok {
		return s.markRead(sub)
	}
	return nil
}

func (s *submissionsScreen) markRead(sub models.FormSubmission) tea.Cmd {
	if sub.IsRead {
		return nil
	}
	mut, err := s.env.board.MarkRead(s.form.ID, sub.ID)
	return s.env.commit(mut, err, "")
}

func (s *submissionsScreen) export() tea.Cmd {
	ctx, board, dir, form := s.env.ctx, s.env.board, s.env.exportDir, s.form
	return func() tea.Msg {
		name, body, err := board.ExportSubmissions(ctx, form.ID)
		if err != nil {
			return exportedMsg{err: err}
		}
		if name == "" {
			name = export.FileName(form.Slug)
		}
		path := filepath.Join(dir, filepath.Base(name))
		if err = os.WriteFile(path, body, exportFileMode); err != nil {
			return exportedMsg{err: fmt.Errorf("write %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}

func (s *submissionsScreen) View() string {
	if s.confirm != nil {
		return s.confirm.View()
	}

	resp, sub, ok := s.current()
	unread := 0
	for _, x := range resp.Submissions {
		if !x.IsRead {
			unread++
		}
	}

	var b strings.Builder
	switch {
	case s.loading && !s.loaded:
		b.WriteString("Loading...\n")
	case !s.loaded:
	case !ok:
		b.WriteString("No answers yet.\n")
	case s.detail:
		b.WriteString(s.detailView(resp.Fields, sub))
	default:
		b.WriteString(s.listView(resp))
	}

	if s.notice != "" {
		b.WriteString("\n" + okStyle.Render(s.notice) + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + inlineError(s.err) + "\n")
	}

	title := fmt.Sprintf("SUBMISSIONS · %s (%s, %d unread)", s.form.Title, plural(len(resp.Submissions), "answer", "answers"), unread)
	hotKeys := "enter: open │ d: delete │ x: export CSV │ r: reload │ esc: back"
	if s.detail {
		hotKeys = "↑/↓: previous/next │ d: delete │ esc: list"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (s *submissionsScreen) listView(resp models.SubmissionsResponse) string {
	preview := firstAnswerField(resp.Fields)
	idx := clampIndex(s.idx, len(resp.Submissions))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("    %-28s │ %-16s │ %s\n", "Email", "Submitted", preview.Label))
	b.WriteString("  " + strings.Repeat("─", 31) + "┼" + strings.Repeat("─", 18) + "┼" + strings.Repeat("─", 24) + "\n")
	for i, sub := range resp.Submissions {
		dot := " "
		if !sub.IsRead {
			dot = "●"
		}
		row := fmt.Sprintf("%s %s %s │ %s │ %s",
			cursor(i == idx), dot, padRight(valueOrDash(sub.SubmitterEmail), 28), padRight(submittedAt(sub.CreatedAt), 16),
			fitText(formschema.FormatValue(sub.Data[preview.ID]), 40))
		switch {
		case i == idx:
			row = selectedStyle.Render(row)
		case !sub.IsRead:
			row = unreadStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *submissionsScreen) detailView(fields []models.FieldSchema, sub models.FormSubmission) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\n", valueOrDash(sub.SubmitterEmail)))
	if !sub.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Submitted: %s (%s)\n", sub.CreatedAt.Format(time.RFC1123), humanize.Time(sub.CreatedAt)))
	}
	b.WriteString("\n")

	for _, f := range fields {
		if f.Type.IsLayout() {
			continue
		}
		b.WriteString(titleStyle.Render(f.Label))
		b.WriteString("\n")
		b.WriteString(answerView(f, sub.Data[f.ID]))
		b.WriteString("\n\n")
	}
	return b.String()
}

func answerView(f models.FieldSchema, value any) string {
	if formschema.IsEmpty(value) {
		return helpStyle.Render("no answer")
	}
	switch f.Type {
	case models.FieldSignature:
		if s, ok := value.(string); ok {
			if img, err := signature.Decode(s); err == nil {
				return strings.Join(signature.Render(img, 32, 4), "\n")
			}
		}
	case models.FieldNPS:
		if n, ok := formschema.Number(value); ok {
			band := formschema.NPSBand(int(n))
			return bandStyles[band.Color].Render(fmt.Sprintf("%d · %s", int(n), band.Name))
		}
	case models.FieldRating:
		if n, ok := formschema.Number(value); ok {
			stars := formschema.StarCount(f)
			got := min(int(n), stars)
			return strings.Repeat("★", got) + strings.Repeat("☆", stars-got)
		}
	case models.FieldFileUpload:
		if m, ok := value.(map[string]any); ok {
			name, _ := m["name"].(string)
			size, _ := formschema.Number(m["size"])
			return fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(size)))
		}
	}
	return formschema.FormatValue(value)
}

func firstAnswerField(fields []models.FieldSchema) models.FieldSchema {
	for _, f := range fields {
		if !f.Type.IsLayout() {
			return f
		}
	}
	return models.FieldSchema{Label: "Answer"}
}

func submittedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
