// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/mock"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/tui"
)

// scriptedUI plays back one login and one main loop result per round.
type scriptedUI struct {
	logins  []error
	results []tui.MainLoopResult
	loopErr error

	notices []string
	loops   int
}

func (u *scriptedUI) LoginFlow(_ context.Context, notice string) (string, error) {
	u.notices = append(u.notices, notice)
	err := u.logins[0]
	u.logins = u.logins[1:]
	return "ada", err
}

func (u *scriptedUI) MainLoop(_ context.Context, _ string) (tui.MainLoopResult, error) {
	if u.loopErr != nil {
		return tui.MainLoopResult{}, u.loopErr
	}
	res := u.results[u.loops]
	u.loops++
	return res, nil
}

func newTestApp(t *testing.T, ui UI) (*App, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	cli, err := NewApp(service.NewClientServices(a, logger.Nop()), ui, time.Hour, logger.Nop())
	require.NoError(t, err)
	return cli, a
}

// ─────────────────────────────────────────────
// NewApp
// ─────────────────────────────────────────────

func TestNewApp_MissingDependency(t *testing.T) {
	_, err := NewApp(nil, &scriptedUI{}, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, ErrMissingDependency)

	ctrl := gomock.NewController(t)
	services := service.NewClientServices(mock.NewMockServerAdapter(ctrl), logger.Nop())
	_, err = NewApp(services, nil, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, ErrMissingDependency)
}

// ─────────────────────────────────────────────
// Run
// ─────────────────────────────────────────────

func TestApp_Run_QuitAtLogin(t *testing.T) {
	ui := &scriptedUI{logins: []error{tui.ErrUserQuit}}
	a, _ := newTestApp(t, ui)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{""}, ui.notices)
	assert.Zero(t, ui.loops)
}

func TestApp_Run_QuitFromMainLoop(t *testing.T) {
	ui := &scriptedUI{logins: []error{nil}, results: []tui.MainLoopResult{{}}}
	a, _ := newTestApp(t, ui)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 1, ui.loops)
}

func TestApp_Run_LogoutReturnsToLogin(t *testing.T) {
	ui := &scriptedUI{
		logins:  []error{nil, tui.ErrUserQuit},
		results: []tui.MainLoopResult{{Logout: true}},
	}
	a, adapter := newTestApp(t, ui)
	adapter.EXPECT().SetToken("")

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"", ""}, ui.notices)
}

func TestApp_Run_ExpiredSessionShowsNotice(t *testing.T) {
	ui := &scriptedUI{
		logins:  []error{nil, nil, tui.ErrUserQuit},
		results: []tui.MainLoopResult{{Logout: true, Expired: true}, {Logout: true}},
	}
	a, adapter := newTestApp(t, ui)
	adapter.EXPECT().SetToken("").Times(2)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"", app.MsgSessionExpired, ""}, ui.notices)
}

func TestApp_Run_LoginError(t *testing.T) {
	ui := &scriptedUI{logins: []error{assert.AnError}}
	a, _ := newTestApp(t, ui)

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestApp_Run_MainLoopError(t *testing.T) {
	ui := &scriptedUI{logins: []error{nil}, loopErr: assert.AnError}
	a, _ := newTestApp(t, ui)

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "main loop")
}
