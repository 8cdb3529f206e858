// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.SubmissionService.List(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "listing submissions failed")
		return
	}
	if resp.Submissions == nil {
		resp.Submissions = []models.FormSubmission{}
	}
	if resp.Fields == nil {
		resp.Fields = []models.FieldSchema{}
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// markReadRequest is the optional body of the mark-read call. Read is a
// one-way latch, so {"is_read": false} is refused.
type markReadRequest struct {
	IsRead *bool `json:"is_read"`
}

func (h *Handler) markSubmissionRead(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.FromRequest(r).Warn().Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if req.IsRead != nil && !*req.IsRead {
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	err := h.services.SubmissionService.MarkRead(r.Context(), ownerID, chi.URLParam(r, "id"), chi.URLParam(r, "subID"))
	if err != nil {
		writeServiceError(w, r, err, "marking submission read failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	err := h.services.SubmissionService.Delete(r.Context(), ownerID, chi.URLParam(r, "id"), chi.URLParam(r, "subID"))
	if err != nil {
		writeServiceError(w, r, err, "deleting submission failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// exportSubmissions streams the CSV export as an attachment.
func (h *Handler) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	fileName, body, err := h.services.SubmissionService.ExportCSV(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "exporting submissions failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.FromRequest(r).Err(err).Str("form_id", chi.URLParam(r, "id")).Msg("writing CSV export failed")
	}
}
