// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h, m := newTestHandler(t)

	input := models.User{Login: "ops", Password: "secret"}
	created := models.User{UserID: 7, Login: "ops"}

	m.auth.EXPECT().RegisterUser(gomock.Any(), input).Return(created, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), created).Return(models.Token{UserID: 7, SignedString: "tok"}, nil)

	rec := serve(t, h, http.MethodPost, "/api/auth/register", `{"login":"ops","password":"secret"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer tok", rec.Header().Get("Authorization"))
	assert.Equal(t, models.AuthResponse{Token: "tok"}, decodeBody[models.AuthResponse](t, rec))
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "login taken",
			err:        fmt.Errorf("user creation ended with error: %w", store.ErrLoginAlreadyExists),
			wantStatus: http.StatusConflict,
			wantMsg:    app.MsgLoginAlreadyExists,
		},
		{
			name:       "bare invalid data",
			err:        service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "invalid data keeps the validator detail",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidCredentials),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid data provided: invalid credentials",
		},
		{
			name:       "unexpected failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

			rec := serve(t, h, http.MethodPost, "/api/auth/register", `{"login":"ops","password":"secret"}`, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rec).Error)
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodPost, "/api/auth/register", `{not json`, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidJSON, errorBody(t, rec).Error)
}

func TestRegister_TokenCreationFails(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 1}, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, service.ErrTokenCreationFailed)

	rec := serve(t, h, http.MethodPost, "/api/auth/register", `{"login":"ops","password":"secret"}`, false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, app.MsgInternalServerError, errorBody(t, rec).Error)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h, m := newTestHandler(t)

	found := models.User{UserID: 3, Login: "ops"}
	m.auth.EXPECT().Login(gomock.Any(), models.User{Login: "ops", Password: "secret"}).Return(found, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), found).Return(models.Token{SignedString: "tok"}, nil)

	rec := serve(t, h, http.MethodPost, "/api/auth/login", `{"login":"ops","password":"secret"}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer tok", rec.Header().Get("Authorization"))
	assert.Equal(t, "tok", decodeBody[models.AuthResponse](t, rec).Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	for _, err := range []error{service.ErrWrongPassword, store.ErrNoUserWasFound} {
		t.Run(err.Error(), func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, fmt.Errorf("login: %w", err))

			rec := serve(t, h, http.MethodPost, "/api/auth/login", `{"login":"ops","password":"nope"}`, false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, app.MsgInvalidLoginPassword, errorBody(t, rec).Error)
		})
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgMissingToken,
		},
		{
			name:       "not a bearer header",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgMissingToken,
		},
		{
			name:       "expired token",
			header:     "Bearer old",
			parseErr:   fmt.Errorf("parse: %w", service.ErrTokenIsExpired),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpired,
		},
		{
			name:       "invalid token",
			header:     "Bearer junk",
			parseErr:   service.ErrTokenIsExpiredOrInvalid,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.parseErr != nil {
				m.auth.EXPECT().ParseToken(gomock.Any(), gomock.Any()).Return(models.Token{}, tt.parseErr)
			}

			req := newRequest(http.MethodGet, "/api/dashboard", "")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := record(h, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rec).Error)
		})
	}
}

func TestAuthMiddleware_PassesOperatorID(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.dashboard.EXPECT().Stats(gomock.Any(), testOperator).Return(models.DashboardStats{Forms: 2}, nil)

	rec := serve(t, h, http.MethodGet, "/api/dashboard", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[models.DashboardStats](t, rec).Forms)
}

func TestOperatorID_MissingInContext(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.listForms(rec, newRequest(http.MethodGet, "/api/forms", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
