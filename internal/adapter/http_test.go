// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/config"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	cfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: "  ", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── auth ─────────────────────────────────────────────────────────────────────

func TestLogin_StoresTokenFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var u models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&u))
		assert.Equal(t, "ada", u.Login)

		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.AuthResponse{Token: "header-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Login(context.Background(), models.User{Login: "ada", Password: "secret-pass"}))
	assert.Equal(t, "header-token", a.Token())
}

func TestRegister_TokenFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, models.AuthResponse{Token: "body-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Register(context.Background(), models.User{Login: "ada"}))
	assert.Equal(t, "body-token", a.Token())
}

func TestLogin_WrongPasswordIsNotSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: app.MsgInvalidLoginPassword})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Login(context.Background(), models.User{Login: "ada"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.EqualError(t, err, app.MsgInvalidLoginPassword)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: app.MsgLoginAlreadyExists})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Register(context.Background(), models.User{Login: "ada"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, app.MsgLoginAlreadyExists)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}

// ── session expiry and error mapping ─────────────────────────────────────────

func TestAuthedCall_401IsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: app.MsgTokenIsExpired})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("stale")
	_, err := a.ListForms(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualError(t, err, app.MsgSessionExpired)
}

func TestHTMLResponseIsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Sign in</body></html>"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	_, err := a.ListLeads(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestFallbackMessageWhenBodyHasNoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	err := a.DeleteForm(context.Background(), "f1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, app.FallbackDeleteForm)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestTransportFailureUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Dashboard(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.EqualError(t, err, app.FallbackDashboard)
}

func TestSubmit_FieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/forms/contact-us/submissions", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:  app.MsgInvalidSubmission,
			Fields: map[string]string{"email": "Enter a valid email address"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("operator-token")
	_, err := a.Submit(context.Background(), "contact-us", models.SubmitRequest{Data: models.SubmissionData{"email": "x"}})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.Equal(t, "Enter a valid email address", apiErr.Fields["email"])
}

// ── retries ──────────────────────────────────────────────────────────────────

func TestReadsAreRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, http.StatusOK, models.FormsResponse{Forms: []models.Form{{ID: "f1"}}})
	}))
	defer srv.Close()

	cfg := config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second, RetryCount: 3, RetryWait: time.Millisecond}
	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)

	forms, err := a.ListForms(context.Background())
	require.NoError(t, err)
	assert.Len(t, forms, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second, RetryCount: 3, RetryWait: time.Millisecond}
	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	a.SetToken("t")

	_, err = a.CreateLead(context.Background(), models.Lead{Name: "x"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(1), calls.Load())
}

// ── resources ────────────────────────────────────────────────────────────────

func TestUpdateForm_SendsPatchAndDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/forms/f1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"status": "closed"}, body)

		writeJSON(t, w, http.StatusOK, models.FormResponse{Form: models.Form{ID: "f1", FormSchema: models.FormSchema{Status: models.StatusClosed}}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	closed := models.StatusClosed
	form, err := a.UpdateForm(context.Background(), "f1", models.FormPatch{Status: &closed})

	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, form.Status)
}

func TestExportSubmissions_FileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/f1/submissions/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="contact-us-submissions.csv"`)
		_, _ = w.Write([]byte("Submitted At,Name\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	name, body, err := a.ExportSubmissions(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "contact-us-submissions.csv", name)
	assert.Equal(t, "Submitted At,Name\n", string(body))
}

func TestUpdateLeadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leads/l1/status", r.URL.Path)
		var req models.LeadStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.LeadQualified, req.Status)
		writeJSON(t, w, http.StatusOK, models.LeadResponse{Lead: models.Lead{ID: "l1", Status: req.Status}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	lead, err := a.UpdateLeadStatus(context.Background(), "l1", models.LeadQualified)

	require.NoError(t, err)
	assert.Equal(t, models.LeadQualified, lead.Status)
}

func TestMarkSubmissionRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/forms/f1/submissions/s1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("t")
	assert.NoError(t, a.MarkSubmissionRead(context.Background(), "f1", "s1"))
}
