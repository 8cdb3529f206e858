// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal interface of formdesk.
//
// [TUI.LoginFlow] runs the sign-in pages and returns once the operator holds
// a token. [TUI.MainLoop] runs the working screens: forms, builder, filler,
// submissions, pipeline and dashboard. Every screen loads its own data and
// fails on its own with an inline error and an r retry.
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/models"
)

type TUI struct {
	services  *service.ClientServices
	exportDir string
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, exportDir string, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		exportDir: exportDir,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// LoginFlow blocks until the operator signs in or quits. notice is shown on
// the first page.
func (t *TUI) LoginFlow(ctx context.Context, notice string) (username string, err error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(notice),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(ctx, t.services.AuthService, pages, "menu", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quitByUser {
		return "", ErrUserQuit
	}

	return result.username, nil
}

// MainLoopResult tells the caller why the main loop ended.
type MainLoopResult struct {
	// Logout is set when the operator signed out or the session expired.
	Logout bool
	// Expired is set when the server rejected the session.
	Expired bool
}

func (t *TUI) MainLoop(ctx context.Context, username string) (MainLoopResult, error) {
	e := &env{
		ctx:       ctx,
		board:     t.services.Board,
		exportDir: t.exportDir,
		copy:      clipboard.WriteAll,
		logger:    t.logger,
	}

	model := newMainModel(e, username)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return MainLoopResult{}, runErr
	}

	result, ok := finalModel.(mainModel)
	if !ok {
		return MainLoopResult{}, tea.ErrProgramKilled
	}
	return MainLoopResult{Logout: result.logout, Expired: result.expired}, nil
}
