// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Status classes of failed API calls. An [*APIError] unwraps to exactly one
// of them.
var (
	// ErrSessionExpired is reported for a 401 on an authenticated call and
	// for any HTML response.
	ErrSessionExpired = errors.New("session expired")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrUnavailable is reported when no response arrived at all.
	ErrUnavailable = errors.New("server unavailable")
)

// APIError is a failed API call ready to be shown to the operator.
type APIError struct {
	// Status is the HTTP status code, zero on transport failures.
	Status int
	// Message is the server's "error" field, or the per-action fallback.
	Message string
	// Fields holds per-field validation messages keyed by field id.
	Fields map[string]string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the status class and, for transport failures, the
// underlying error.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// NewAPIError builds the error reported for an HTTP status and message.
func NewAPIError(status int, message string) *APIError {
	kind, ok := statusKinds[status]
	if !ok {
		kind = ErrUnexpectedStatus
	}
	return &APIError{Status: status, Message: message, kind: kind}
}
