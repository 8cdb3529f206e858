// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/internal/signature"
	"github.com/MKhiriev/formdesk/models"
)

const (
	padCols = 48
	padRows = 12
	// Backing canvas pixels per terminal cell. Cells are about twice as tall
	// as they are wide.
	padCellWidth  = 8
	padCellHeight = 16
	padPenRadius  = 2
)

// signatureScreen is a mouse-driven signature pad. The pad emits a value
// when a stroke ends or when it is cleared; enter hands the last value back
// to the filler.
type signatureScreen struct {
	field   models.FieldSchema
	pad     *signature.Pad
	value   string
	changed bool
	err     string
}

func newSignatureScreen(field models.FieldSchema, current string) *signatureScreen {
	s := &signatureScreen{field: field, value: current}
	s.pad = signature.NewPad(padCols*padCellWidth, padRows*padCellHeight, func(v string) {
		s.value = v
		s.changed = true
	})
	s.pad.SetPenRadius(padPenRadius)
	// The pad's top-left cell sits inside a one-cell border below the page
	// header.
	s.pad.SetDisplay(signature.Rect{
		Left:   pageIndent + 1,
		Top:    pageHeaderLines + 1,
		Width:  padCols,
		Height: padRows,
	})
	if err := s.pad.Load(current); err != nil {
		s.err = err.Error()
	}
	return s
}

func (s *signatureScreen) Init() tea.Cmd { return nil }

func (s *signatureScreen) typing() bool { return false }

func (s *signatureScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		s.handleMouse(msg)
		return s, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return s, pop
		case key.Matches(msg, keys.clear), msg.String() == "c":
			s.pad.Clear()
			return s, nil
		case key.Matches(msg, keys.enter):
			if !s.changed {
				return s, pop
			}
			signed := signedMsg{fieldID: s.field.ID, value: s.value}
			return s, tea.Sequence(pop, func() tea.Msg { return signed })
		}
	}
	return s, nil
}

func (s *signatureScreen) handleMouse(msg tea.MouseMsg) {
	// The centre of the cell is the pointer position.
	ev := signature.MouseAt(float64(msg.X)+0.5, float64(msg.Y)+0.5)

	var err error
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		err = s.pad.Down(ev)
	case msg.Action == tea.MouseActionMotion:
		err = s.pad.Move(ev)
	case msg.Action == tea.MouseActionRelease:
		err = s.pad.Up()
	}
	if err != nil {
		s.err = err.Error()
	}
}

func (s *signatureScreen) View() string {
	lines := signature.Render(s.pad.Image(), padCols, padRows)

	var b strings.Builder
	b.WriteString(padStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	switch {
	case s.pad.Drawing():
		b.WriteString("drawing...")
	case s.pad.HasStroke():
		b.WriteString(okStyle.Render("signed"))
	default:
		b.WriteString(helpStyle.Render("draw with the left mouse button"))
	}
	if s.err != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+s.err))
	}

	return renderPage("SIGN · "+s.field.Label, b.String(), "enter: done │ c: clear │ esc: cancel")
}
