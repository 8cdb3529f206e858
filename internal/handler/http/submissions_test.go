// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

func TestListSubmissions(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.submissions.EXPECT().List(gomock.Any(), testOperator, "f1").Return(models.SubmissionsResponse{
		Submissions: []models.FormSubmission{{ID: "s1", FormID: "f1", Data: models.SubmissionData{"name": "Ann"}}},
		Fields:      sampleForm().Fields,
	}, nil)

	rec := serve(t, h, http.MethodGet, "/api/forms/f1/submissions", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.SubmissionsResponse](t, rec)
	require.Len(t, got.Submissions, 1)
	assert.Equal(t, "Ann", got.Submissions[0].Data["name"])
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "name", got.Fields[0].ID)
}

func TestListSubmissions_EmptyIsArrays(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.submissions.EXPECT().List(gomock.Any(), testOperator, "f1").Return(models.SubmissionsResponse{}, nil)

	rec := serve(t, h, http.MethodGet, "/api/forms/f1/submissions", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"submissions":[],"fields":[]}`, rec.Body.String())
}

func TestMarkSubmissionRead(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "explicit body", body: `{"is_read":true}`},
		{name: "no body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			m.submissions.EXPECT().MarkRead(gomock.Any(), testOperator, "f1", "s1").Return(nil)

			rec := serve(t, h, http.MethodPut, "/api/forms/f1/submissions/s1", tt.body, true)

			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
}

func TestMarkSubmissionRead_CannotUnread(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()

	rec := serve(t, h, http.MethodPut, "/api/forms/f1/submissions/s1", `{"is_read":false}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, errorBody(t, rec).Error)
}

func TestDeleteSubmission_NotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.submissions.EXPECT().Delete(gomock.Any(), testOperator, "f1", "gone").Return(store.ErrSubmissionNotFound)

	rec := serve(t, h, http.MethodDelete, "/api/forms/f1/submissions/gone", "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgSubmissionNotFound, errorBody(t, rec).Error)
}

func TestExportSubmissions(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.submissions.EXPECT().ExportCSV(gomock.Any(), testOperator, "f1").
		Return("contact-us-abc123-submissions.csv", []byte("Name\nAnn\n"), nil)

	rec := serve(t, h, http.MethodGet, "/api/forms/f1/submissions/export", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=contact-us-abc123-submissions.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Name\nAnn\n", rec.Body.String())
}

func TestExportSubmissions_FormNotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.submissions.EXPECT().ExportCSV(gomock.Any(), testOperator, "nope").Return("", nil, store.ErrFormNotFound)

	rec := serve(t, h, http.MethodGet, "/api/forms/nope/submissions/export", "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestExportSubmissions_WriteErrorIsLogged(t *testing.T) {
	h, m := newTestHandler(t)
	m.submissions.EXPECT().ExportCSV(gomock.Any(), testOperator, "f1").
		Return("contact-submissions.csv", []byte("Name\nAnn\n"), nil)

	buf := &bytes.Buffer{}
	log := zerolog.New(buf)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "f1")

	ctx := log.WithContext(context.Background())
	ctx = utils.WithUserID(ctx, testOperator)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	req := httptest.NewRequest(http.MethodGet, "/api/forms/f1/submissions/export", nil).WithContext(ctx)

	w := brokenWriter{httptest.NewRecorder()}
	h.exportSubmissions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	entry := lastLogLine(t, buf)
	assert.Equal(t, "writing CSV export failed", entry["message"])
	assert.Equal(t, "connection reset", entry["error"])
	assert.Equal(t, "f1", entry["form_id"])
}

