// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/formdesk/internal/tui"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the part of the terminal interface the app drives.
type UI interface {
	// LoginFlow blocks until the operator signs in, returning
	// tui.ErrUserQuit when they quit instead.
	LoginFlow(ctx context.Context, notice string) (string, error)

	// MainLoop runs the working screens until the operator quits or signs
	// out.
	MainLoop(ctx context.Context, username string) (tui.MainLoopResult, error)
}
