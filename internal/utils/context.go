// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the formdesk server and
// client: typed context keys, JSON responses, JWT handling, id generation
// and the resty client constructor.
package utils

import (
	"context"
)

// contextKey keeps formdesk context values apart from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated operator id (int64).
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the operator id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the operator id stored by WithUserID. ok is
// false when it is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
