// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/formdesk/internal/adapter"
	"github.com/MKhiriev/formdesk/internal/logger"
)

// ClientServices is the service set of the terminal client.
type ClientServices struct {
	AuthService ClientAuthService
	Board       *Board
	RefreshJob  ClientRefreshJob
}

func NewClientServices(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	board := NewBoard(serverAdapter, logger)

	return &ClientServices{
		AuthService: NewClientAuthService(serverAdapter),
		Board:       board,
		RefreshJob:  NewClientRefreshJob(board, logger),
	}
}
