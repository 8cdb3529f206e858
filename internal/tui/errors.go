// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/formdesk/internal/adapter"
	"github.com/MKhiriev/formdesk/internal/service"
)

// ErrUserQuit is returned by the sign-in flow when the operator leaves.
var ErrUserQuit = errors.New("user quit")

const msgServerUnavailable = "No network or the server is unavailable"

// errorText is what a screen shows for err.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, adapter.ErrUnavailable) || isNetworkError(err) {
		return msgServerUnavailable
	}
	return service.ErrorMessage(err)
}

func isNetworkError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded")
}
