// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/models"
)

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError turns a response into nil or an *APIError. authed tells
// whether the request carried a bearer token: only then is a 401 a lapsed
// session rather than bad credentials.
func mapHTTPError(resp *resty.Response, authed bool, fallback string) error {
	if isHTML(resp.Header().Get("Content-Type")) {
		return &APIError{Status: resp.StatusCode(), Message: app.MsgSessionExpired, kind: ErrSessionExpired}
	}

	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	if status == http.StatusUnauthorized && authed {
		return &APIError{Status: status, Message: app.MsgSessionExpired, kind: ErrSessionExpired}
	}

	apiErr := NewAPIError(status, fallback)

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if msg := strings.TrimSpace(body.Error); msg != "" {
			apiErr.Message = msg
		}
		apiErr.Fields = body.Fields
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func transportError(err error, fallback string) error {
	return &APIError{Message: fallback, kind: ErrUnavailable, cause: err}
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "text/html")
	}
	return mediaType == "text/html"
}
