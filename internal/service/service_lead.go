// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

const manualLeadSource = "manual"

type leadService struct {
	leadRepository store.LeadRepository
	validator      validators.Validator
	ids            *utils.UUIDGenerator
	now            func() time.Time

	logger *logger.Logger
}

func NewLeadService(leadRepository store.LeadRepository, logger *logger.Logger) LeadService {
	return &leadService{
		leadRepository: leadRepository,
		validator:      validators.NewCRMValidator(),
		ids:            utils.NewUUIDGenerator(),
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (s *leadService) List(ctx context.Context, ownerID int64) ([]models.Lead, error) {
	return s.leadRepository.List(ctx, ownerID)
}

// Create adds a lead by hand. It enters the pipeline as new unless a status
// is given.
func (s *leadService) Create(ctx context.Context, ownerID int64, lead models.Lead) (models.Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	if err := s.validator.Validate(ctx, lead); err != nil {
		return models.Lead{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if lead.Status == "" {
		lead.Status = models.LeadNew
	}
	if lead.Source == "" {
		lead.Source = manualLeadSource
	}

	now := s.now()
	lead.ID = s.ids.Generate()
	lead.OwnerID = ownerID
	lead.FormID, lead.SubmissionID = "", ""
	lead.CreatedAt, lead.UpdatedAt = now, now

	if err := s.leadRepository.Create(ctx, lead); err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

// UpdateStatus moves a lead to another pipeline column and returns it as
// stored.
func (s *leadService) UpdateStatus(ctx context.Context, ownerID int64, id string, status models.LeadStatus) (models.Lead, error) {
	if err := s.validator.Validate(ctx, models.LeadStatusRequest{Status: status}); err != nil {
		return models.Lead{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.leadRepository.UpdateStatus(ctx, ownerID, id, status); err != nil {
		return models.Lead{}, err
	}

	return s.leadRepository.Get(ctx, ownerID, id)
}

func (s *leadService) Delete(ctx context.Context, ownerID int64, id string) error {
	return s.leadRepository.Delete(ctx, ownerID, id)
}
