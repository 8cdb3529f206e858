// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/formdesk/models"
)

// ClientAuthService signs the terminal client in. On success the adapter
// holds the operator's bearer token for every later call.
type ClientAuthService interface {
	// Register creates an operator account and signs in with it.
	Register(ctx context.Context, user models.User) error

	// Login signs in with existing credentials.
	Login(ctx context.Context, user models.User) error

	// Logout forgets the stored token.
	Logout()

	// ServerVersion returns the version reported by the API.
	ServerVersion(ctx context.Context) (string, error)
}

// ClientRefreshJob reloads the dashboard counters in the background while
// the operator works.
type ClientRefreshJob interface {
	// Start launches the background refresh, reloading every interval. A
	// zero or negative interval defaults to one minute. A running job is
	// stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background refresh and waits for it to exit.
	Stop()
}
