// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	leads, err := h.services.LeadService.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err, "listing leads failed")
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}

	utils.WriteJSON(w, models.LeadsResponse{Leads: leads}, http.StatusOK)
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	var lead models.Lead
	if !decodeJSON(w, r, &lead) {
		return
	}

	created, err := h.services.LeadService.Create(r.Context(), ownerID, lead)
	if err != nil {
		writeServiceError(w, r, err, "creating lead failed")
		return
	}

	utils.WriteJSON(w, models.LeadResponse{Lead: created}, http.StatusCreated)
}

func (h *Handler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	var req models.LeadStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lead, err := h.services.LeadService.UpdateStatus(r.Context(), ownerID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "moving lead failed")
		return
	}

	utils.WriteJSON(w, models.LeadResponse{Lead: lead}, http.StatusOK)
}

func (h *Handler) deleteLead(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	if err := h.services.LeadService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "deleting lead failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
