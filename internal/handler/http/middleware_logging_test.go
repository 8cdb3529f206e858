// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/logger"
)

// bufferedHandler returns a test handler whose logger writes JSON lines to
// the returned buffer.
func bufferedHandler(t *testing.T) (*Handler, *handlerMocks, *bytes.Buffer) {
	t.Helper()

	h, m := newTestHandler(t)
	buf := &bytes.Buffer{}
	h.logger = &logger.Logger{Logger: zerolog.New(buf)}
	return h, m, buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestWithLogging_AccessLine(t *testing.T) {
	h, m, buf := bufferedHandler(t)
	m.signedIn()
	m.forms.EXPECT().Delete(gomock.Any(), testOperator, "f1").Return(nil)

	req := newRequest(http.MethodDelete, "/api/forms/f1", "")
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(traceIDHeader, "trace-42")
	rec := record(h, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	entry := lastLogLine(t, buf)
	assert.Equal(t, "/api/forms/f1", entry["uri"])
	assert.Equal(t, http.MethodDelete, entry["method"])
	assert.Contains(t, entry["route"], "/api/forms/{id}")
	assert.EqualValues(t, http.StatusNoContent, entry["status"])
	assert.Equal(t, "trace-42", entry[logger.TraceIDField])
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	h, _, buf := bufferedHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodGet, "/anything", ""))

	entry := lastLogLine(t, buf)
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "", entry["route"])
	assert.NotEmpty(t, entry[logger.TraceIDField])
}

func TestWithTraceID_GeneratesID(t *testing.T) {
	h, _ := newTestHandler(t)

	var fromContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext = r.Header.Get(traceIDHeader)
	})

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, newRequest(http.MethodGet, "/", ""))

	assert.Len(t, rec.Header().Get(traceIDHeader), 36)
	assert.Empty(t, fromContext)
}
