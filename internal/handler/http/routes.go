// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)

		r.Get("/api/public/forms/{slug}", h.getPublicForm)
		r.Post("/api/public/forms/{slug}/submissions", h.submit)
	})

	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler(h.logger))
	}

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/forms", func(r chi.Router) {
			r.Get("/", h.listForms)
			r.Post("/", h.createForm)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getForm)
				r.Put("/", h.updateForm)
				r.Delete("/", h.deleteForm)
				r.Post("/duplicate", h.duplicateForm)
				r.Get("/embed", h.embedForm)

				r.Get("/submissions", h.listSubmissions)
				r.Get("/submissions/export", h.exportSubmissions)
				r.Put("/submissions/{subID}", h.markSubmissionRead)
				r.Delete("/submissions/{subID}", h.deleteSubmission)
			})
		})

		r.Route("/api/leads", func(r chi.Router) {
			r.Get("/", h.listLeads)
			r.Post("/", h.createLead)
			r.Put("/{id}/status", h.updateLeadStatus)
			r.Delete("/{id}", h.deleteLead)
		})

		r.Get("/api/templates", h.listTemplates)
		r.Post("/api/templates/{id}/use", h.useTemplate)

		r.Get("/api/dashboard", h.dashboard)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
