// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/templates"
	"github.com/MKhiriev/formdesk/models"
)

type templateService struct {
	catalog *templates.Catalog
	forms   FormService

	logger *logger.Logger
}

// NewTemplateService serves catalog and creates forms from it through forms.
func NewTemplateService(catalog *templates.Catalog, forms FormService, logger *logger.Logger) TemplateService {
	return &templateService{
		catalog: catalog,
		forms:   forms,
		logger:  logger,
	}
}

func (s *templateService) List(ctx context.Context) []models.FormTemplate {
	return s.catalog.List()
}

func (s *templateService) Use(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	schema, err := s.catalog.Instantiate(id)
	if err != nil {
		return models.Form{}, err
	}

	return s.forms.Create(ctx, ownerID, schema)
}
