// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/formdesk/internal/metrics"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

// getPublicForm serves a published form to respondents.
func (h *Handler) getPublicForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.services.FormService.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, "getting public form failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusOK)
}

// submit records a respondent's answers. Rejected answers come back as 422
// with the per-field messages.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if !decodeJSON(w, r, &req) {
		h.observeSubmission(metrics.SubmissionInvalid)
		return
	}

	resp, err := h.services.SubmissionService.Submit(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		if errors.Is(err, validators.ErrInvalidSubmission) {
			h.observeSubmission(metrics.SubmissionInvalid)
		} else {
			h.observeSubmission(metrics.SubmissionRejected)
		}
		writeServiceError(w, r, err, "submission failed")
		return
	}

	h.observeSubmission(metrics.SubmissionAccepted)
	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) observeSubmission(result string) {
	if h.metrics != nil {
		h.metrics.ObserveSubmission(result)
	}
}
