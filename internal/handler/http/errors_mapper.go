// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/templates"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

// mappedError is the status and "error" message reported for a service
// error.
type mappedError struct {
	status  int
	message string
}

// errorStatusMap is checked in order; the first target matched with
// errors.Is wins.
var errorStatusMap = []struct {
	target error
	mappedError
}{
	{validators.ErrInvalidSubmission, mappedError{http.StatusUnprocessableEntity, app.MsgInvalidSubmission}},
	{service.ErrInvalidDataProvided, mappedError{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrWrongPassword, mappedError{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{store.ErrNoUserWasFound, mappedError{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpired, mappedError{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, mappedError{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrFormNotAccepting, mappedError{http.StatusForbidden, app.MsgFormNotAccepting}},
	{service.ErrAlreadySubmitted, mappedError{http.StatusConflict, app.MsgAlreadySubmitted}},
	{service.ErrSlugUnavailable, mappedError{http.StatusServiceUnavailable, app.MsgSlugUnavailable}},

	{store.ErrLoginAlreadyExists, mappedError{http.StatusConflict, app.MsgLoginAlreadyExists}},
	{store.ErrSlugAlreadyExists, mappedError{http.StatusConflict, app.MsgSlugUnavailable}},
	{store.ErrFormNotFound, mappedError{http.StatusNotFound, app.MsgFormNotFound}},
	{store.ErrSubmissionNotFound, mappedError{http.StatusNotFound, app.MsgSubmissionNotFound}},
	{store.ErrLeadNotFound, mappedError{http.StatusNotFound, app.MsgLeadNotFound}},
	{templates.ErrTemplateNotFound, mappedError{http.StatusNotFound, app.MsgTemplateNotFound}},
}

func mapError(err error) mappedError {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.mappedError
		}
	}
	return mappedError{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeServiceError logs err and answers with its mapped status. Rejected
// submissions also carry the per-field messages. Validation failures of a
// schema or lead keep the validator's wording after the generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	m := mapError(err)

	if m.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Msg(msg)
	}

	body := models.ErrorResponse{Error: m.message}

	var fieldErrs validators.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		body.Fields = fieldErrs
	case m.status == http.StatusBadRequest && err != service.ErrInvalidDataProvided:
		body.Error = err.Error()
	}

	_, _ = utils.WriteJSON(w, body, m.status)
}
