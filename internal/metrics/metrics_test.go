// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/formdesk/internal/logger"
)

func TestObserveRequest(t *testing.T) {
	m := New(false)

	m.ObserveRequest(http.MethodGet, "/api/forms/{id}", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/forms/{id}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/forms/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserveSubmission(t *testing.T) {
	m := New(false)

	m.ObserveSubmission(SubmissionAccepted)
	m.ObserveSubmission(SubmissionAccepted)
	m.ObserveSubmission(SubmissionInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(SubmissionAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(SubmissionInvalid)))
}

func TestHandler_ServesTextFormat(t *testing.T) {
	m := New(true)
	m.ObserveSubmission(SubmissionRejected)

	rec := httptest.NewRecorder()
	m.Handler(logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `formdesk_forms_submissions_total{result="rejected"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
