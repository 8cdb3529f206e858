// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	forms, err := h.services.FormService.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err, "listing forms failed")
		return
	}
	if forms == nil {
		forms = []models.Form{}
	}

	utils.WriteJSON(w, models.FormsResponse{Forms: forms}, http.StatusOK)
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	form, err := h.services.FormService.Get(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "getting form failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusOK)
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	var schema models.FormSchema
	if !decodeJSON(w, r, &schema) {
		return
	}

	form, err := h.services.FormService.Create(r.Context(), ownerID, schema)
	if err != nil {
		writeServiceError(w, r, err, "creating form failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusCreated)
}

// updateForm applies a full or partial schema. Only the keys present in the
// body are changed, so status toggles send {"status": "..."} alone.
func (h *Handler) updateForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	var patch models.FormPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	form, err := h.services.FormService.Update(r.Context(), ownerID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err, "updating form failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusOK)
}

func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	if err := h.services.FormService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "deleting form failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) duplicateForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	form, err := h.services.FormService.Duplicate(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "duplicating form failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusCreated)
}

func (h *Handler) embedForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	embed, err := h.services.FormService.Embed(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "building embed code failed")
		return
	}

	utils.WriteJSON(w, embed, http.StatusOK)
}
