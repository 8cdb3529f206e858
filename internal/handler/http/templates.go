// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates := h.services.TemplateService.List(r.Context())
	if templates == nil {
		templates = []models.FormTemplate{}
	}
	utils.WriteJSON(w, models.TemplatesResponse{Templates: templates}, http.StatusOK)
}

// useTemplate creates a draft form from a catalog template.
func (h *Handler) useTemplate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	form, err := h.services.TemplateService.Use(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "using template failed")
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusCreated)
}
