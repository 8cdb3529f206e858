// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/formdesk/internal/adapter"
	"github.com/MKhiriev/formdesk/internal/app"
)

// IsSessionExpired reports whether err means the operator must sign in
// again.
func IsSessionExpired(err error) bool {
	return errors.Is(err, adapter.ErrSessionExpired)
}

// ErrorMessage is the text shown to the operator for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsSessionExpired(err) {
		return app.MsgSessionExpired
	}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	switch {
	case errors.Is(err, ErrInvalidDataProvided):
		return "Login and password are required"
	case errors.Is(err, ErrPendingItem):
		return "Still saving, try again in a moment"
	case errors.Is(err, ErrNotOnBoard):
		return "This item is no longer on screen, press r to reload"
	}
	return err.Error()
}

// FieldErrors returns the per-field validation messages carried by err,
// keyed by field id, or nil.
func FieldErrors(err error) map[string]string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
