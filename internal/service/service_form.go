// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/formdesk/internal/export"
	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

// slugAttempts bounds the retries on a slug collision.
const slugAttempts = 5

const copySuffix = " (Copy)"

type formService struct {
	formRepository store.FormRepository
	ids            *utils.UUIDGenerator
	publicURL      string

	now func() time.Time

	logger *logger.Logger
}

// NewFormService constructs a FormService. publicURL is the base address
// used in embed codes.
func NewFormService(formRepository store.FormRepository, publicURL string, logger *logger.Logger) FormService {
	return &formService{
		formRepository: formRepository,
		ids:            utils.NewUUIDGenerator(),
		publicURL:      publicURL,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (s *formService) List(ctx context.Context, ownerID int64) ([]models.Form, error) {
	return s.formRepository.List(ctx, ownerID)
}

func (s *formService) Get(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	return s.formRepository.Get(ctx, ownerID, id)
}

// Create stores schema as a new form owned by ownerID. An empty status
// becomes draft.
func (s *formService) Create(ctx context.Context, ownerID int64, schema models.FormSchema) (models.Form, error) {
	schema = normalizeSchema(schema)
	if schema.Status == "" {
		schema.Status = models.StatusDraft
	}

	now := s.now()
	form := models.Form{
		ID:         s.ids.Generate(),
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
		FormSchema: schema,
	}

	return s.insertWithSlug(ctx, form)
}

// Update applies patch to the stored form. Slug and timestamps of creation
// never change.
func (s *formService) Update(ctx context.Context, ownerID int64, id string, patch models.FormPatch) (models.Form, error) {
	form, err := s.formRepository.Get(ctx, ownerID, id)
	if err != nil {
		return models.Form{}, err
	}

	form.FormSchema = normalizeSchema(patch.Apply(form.FormSchema))
	form.UpdatedAt = s.now()

	if err = s.formRepository.Update(ctx, form); err != nil {
		return models.Form{}, err
	}

	return form, nil
}

func (s *formService) Delete(ctx context.Context, ownerID int64, id string) error {
	return s.formRepository.Delete(ctx, ownerID, id)
}

// Duplicate copies a form into a new draft with fresh field ids and no
// submissions.
func (s *formService) Duplicate(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	src, err := s.formRepository.Get(ctx, ownerID, id)
	if err != nil {
		return models.Form{}, err
	}

	schema := formschema.RegenerateSchemaIDs(src.FormSchema)
	schema.Title += copySuffix
	schema.Status = models.StatusDraft

	return s.Create(ctx, ownerID, schema)
}

func (s *formService) Embed(ctx context.Context, ownerID int64, id string) (models.EmbedResponse, error) {
	form, err := s.formRepository.Get(ctx, ownerID, id)
	if err != nil {
		return models.EmbedResponse{}, err
	}

	return models.EmbedResponse{
		Code: export.EmbedCode(s.publicURL, form.Slug),
		URL:  export.PublicURL(s.publicURL, form.Slug),
	}, nil
}

// GetPublished hides drafts, closed and archived forms behind
// store.ErrFormNotFound.
func (s *formService) GetPublished(ctx context.Context, slug string) (models.Form, error) {
	form, err := s.formRepository.GetBySlug(ctx, slug)
	if err != nil {
		return models.Form{}, err
	}
	if form.Status != models.StatusPublished {
		return models.Form{}, fmt.Errorf("%w: %s is %s", store.ErrFormNotFound, slug, form.Status)
	}
	return form, nil
}

func (s *formService) insertWithSlug(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	for range slugAttempts {
		form.Slug = newSlug(form.Title)
		err := s.formRepository.Create(ctx, form)
		if err == nil {
			return form, nil
		}
		if !errors.Is(err, store.ErrSlugAlreadyExists) {
			return models.Form{}, err
		}
		log.Debug().Str("slug", form.Slug).Msg("slug taken, retrying")
	}

	return models.Form{}, ErrSlugUnavailable
}

// normalizeSchema replaces nil collections so the stored JSON is never null.
func normalizeSchema(s models.FormSchema) models.FormSchema {
	if s.Fields == nil {
		s.Fields = []models.FieldSchema{}
	}
	if s.ConditionalRules == nil {
		s.ConditionalRules = []models.ConditionalRule{}
	}
	if s.LeadFieldMapping == nil {
		s.LeadFieldMapping = models.LeadFieldMapping{}
	}
	return s
}
