// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/formdesk/models"
)

// dashboardRedraw is how often the screen picks up counters reloaded in the
// background.
const dashboardRedraw = 5 * time.Second

const barWidth = 30

type dashboardLoadedMsg struct{ err error }

func (m dashboardLoadedMsg) failure() error { return m.err }

type dashboardTickMsg struct{ owner *dashboardScreen }

// dashboardScreen shows the account counters.
type dashboardScreen struct {
	env *env

	loaded    bool
	loading   bool
	err       string
	updatedAt time.Time
}

func newDashboardScreen(e *env) *dashboardScreen {
	return &dashboardScreen{env: e}
}

func (s *dashboardScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.tick())
}

func (s *dashboardScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx, board := s.env.ctx, s.env.board
	return func() tea.Msg { return dashboardLoadedMsg{err: board.LoadDashboard(ctx)} }
}

func (s *dashboardScreen) tick() tea.Cmd {
	return tea.Tick(dashboardRedraw, func(time.Time) tea.Msg { return dashboardTickMsg{owner: s} })
}

func (s *dashboardScreen) typing() bool { return false }

func (s *dashboardScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		s.loading = false
		if msg.err == nil {
			s.loaded = true
			s.updatedAt = time.Now()
		}
		s.err = errorText(msg.err)
		return s, nil
	case dashboardTickMsg:
		if msg.owner != s {
			return s, nil
		}
		return s, s.tick()
	case tea.KeyMsg:
		if key.Matches(msg, keys.retry) {
			return s, s.load()
		}
	}
	return s, nil
}

func (s *dashboardScreen) View() string {
	var b strings.Builder
	switch {
	case s.loading && !s.loaded:
		b.WriteString("Loading...\n")
	case s.loaded:
		b.WriteString(statsView(s.env.board.Stats()))
		b.WriteString("\n" + helpStyle.Render("Loaded "+humanize.Time(s.updatedAt)) + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + inlineError(s.err) + "\n")
	}
	return renderPage("DASHBOARD", strings.TrimRight(b.String(), "\n"), "r: reload")
}

func statsView(st models.DashboardStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Forms        %s (%s published)\n", humanize.Comma(int64(st.Forms)), humanize.Comma(int64(st.PublishedForms))))
	b.WriteString(fmt.Sprintf("Submissions  %s", humanize.Comma(int64(st.Submissions))))
	if st.UnreadSubmissions > 0 {
		b.WriteString(unreadStyle.Render(fmt.Sprintf(" (%s unread)", humanize.Comma(int64(st.UnreadSubmissions)))))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Leads        %s\n\n", humanize.Comma(int64(st.Leads))))

	b.WriteString(titleStyle.Render("Pipeline"))
	b.WriteString("\n")
	for _, status := range models.PipelineStatuses {
		n := st.LeadsByStatus[status]
		b.WriteString(fmt.Sprintf("  %-10s %s %s\n", status, bar(n, st.Leads), humanize.Comma(int64(n))))
	}
	return b.String()
}

// bar draws n out of total as a fixed-width gauge.
func bar(n, total int) string {
	filled := 0
	if total > 0 {
		filled = n * barWidth / total
	}
	if n > 0 && filled == 0 {
		filled = 1
	}
	return okStyle.Render(strings.Repeat("█", filled)) + helpStyle.Render(strings.Repeat("░", barWidth-filled))
}
