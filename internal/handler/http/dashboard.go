// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/formdesk/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := operatorID(w, r)
	if !ok {
		return
	}

	stats, err := h.services.DashboardService.Stats(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err, "loading dashboard failed")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
