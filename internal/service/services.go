// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/formdesk/internal/config"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/templates"
)

// Services is the server-side service set handed to the transport layer.
type Services struct {
	AuthService       AuthService
	AppInfoService    AppInfoService
	FormService       FormService
	SubmissionService SubmissionService
	LeadService       LeadService
	TemplateService   TemplateService
	DashboardService  DashboardService
}

func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	catalog, err := templates.Builtin()
	if err != nil {
		return nil, fmt.Errorf("error loading template catalog: %w", err)
	}

	forms := NewFormValidationService().Wrap(
		NewFormService(repos.FormRepository, publicURL(cfg), logger),
	)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, cfg.App, logger),
		AppInfoService:    appInfo,
		FormService:       forms,
		SubmissionService: NewSubmissionService(repos, logger),
		LeadService:       NewLeadService(repos.LeadRepository, logger),
		TemplateService:   NewTemplateService(catalog, forms, logger),
		DashboardService:  NewDashboardService(repos, logger),
	}, nil
}

// publicURL falls back to the HTTP listener when no public address is set.
func publicURL(cfg *config.StructuredConfig) string {
	if cfg.App.PublicURL != "" {
		return cfg.App.PublicURL
	}
	return "http://" + cfg.Server.HTTPAddress
}
