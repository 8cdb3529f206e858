// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/mock"
	"github.com/MKhiriev/formdesk/internal/service"
)

func newTestEnv(t *testing.T) (*env, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	return &env{
		ctx:       context.Background(),
		board:     service.NewBoard(a, logger.Nop()),
		exportDir: t.TempDir(),
		copy:      func(string) error { return nil },
		logger:    logger.Nop(),
	}, a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func special(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// run executes cmd and returns its message, nil for a nil command.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
