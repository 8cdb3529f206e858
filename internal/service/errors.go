// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrFormNotAccepting is returned when a public submission targets a
	// form that is not published.
	ErrFormNotAccepting = errors.New("form is not accepting submissions")
	// ErrAlreadySubmitted is returned when the form forbids several answers
	// from the same email.
	ErrAlreadySubmitted = errors.New("a response from this email was already recorded")
	// ErrSlugUnavailable is returned when no free slug was found after
	// several attempts.
	ErrSlugUnavailable = errors.New("could not allocate a unique slug")
)

// Client-side errors.
var (
	// ErrNotOnBoard is returned when a mutation names an item the client
	// has not loaded.
	ErrNotOnBoard = errors.New("item is not loaded")
	// ErrPendingItem is returned when a mutation targets a placeholder that
	// the server has not confirmed yet.
	ErrPendingItem = errors.New("item is still being saved")
)
