// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/tui"
)

var ErrMissingDependency = errors.New("client app: missing dependency")

type App struct {
	services        *service.ClientServices
	ui              UI
	refreshInterval time.Duration
	logger          *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, refreshInterval time.Duration, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, ErrMissingDependency
	}
	return &App{
		services:        services,
		ui:              ui,
		refreshInterval: refreshInterval,
		logger:          logger,
	}, nil
}

// Run alternates between the sign-in pages and the main loop until the
// operator quits. Signing out, or losing the session, goes back to sign-in
// with a clean board.
func (a *App) Run(ctx context.Context) error {
	notice := ""
	for {
		username, err := a.ui.LoginFlow(ctx, notice)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("login flow: %w", err)
		}
		a.logger.Info().Str("login", username).Msg("signed in")

		a.services.RefreshJob.Start(ctx, a.refreshInterval)
		result, err := a.ui.MainLoop(ctx, username)
		a.services.RefreshJob.Stop()
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !result.Logout {
			return nil
		}

		a.services.AuthService.Logout()
		a.services.Board.Reset()

		notice = ""
		if result.Expired {
			notice = app.MsgSessionExpired
			a.logger.Info().Str("login", username).Msg("session expired")
		} else {
			a.logger.Info().Str("login", username).Msg("signed out")
		}
	}
}
