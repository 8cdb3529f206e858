// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

// FormValidationService checks schemas before they reach the inner
// FormService.
type FormValidationService struct {
	inner     FormService
	validator validators.Validator
}

// FormServiceWrapper decorates a FormService, e.g. with validation.
type FormServiceWrapper interface {
	Wrap(FormService) FormService
}

func NewFormValidationService() FormServiceWrapper {
	return &FormValidationService{
		validator: validators.NewFormValidator(),
	}
}

func (v *FormValidationService) Wrap(inner FormService) FormService {
	v.inner = inner
	return v
}

// Create validates schema; a missing status counts as draft.
func (v *FormValidationService) Create(ctx context.Context, ownerID int64, schema models.FormSchema) (models.Form, error) {
	if schema.Status == "" {
		schema.Status = models.StatusDraft
	}
	if err := v.validator.Validate(ctx, schema); err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, ownerID, schema)
}

// Update validates the form as it will look after the patch.
func (v *FormValidationService) Update(ctx context.Context, ownerID int64, id string, patch models.FormPatch) (models.Form, error) {
	current, err := v.inner.Get(ctx, ownerID, id)
	if err != nil {
		return models.Form{}, err
	}
	if err = v.validator.Validate(ctx, patch.Apply(current.FormSchema)); err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, ownerID, id, patch)
}

func (v *FormValidationService) List(ctx context.Context, ownerID int64) ([]models.Form, error) {
	return v.inner.List(ctx, ownerID)
}

func (v *FormValidationService) Get(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	return v.inner.Get(ctx, ownerID, id)
}

func (v *FormValidationService) Delete(ctx context.Context, ownerID int64, id string) error {
	return v.inner.Delete(ctx, ownerID, id)
}

func (v *FormValidationService) Duplicate(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	return v.inner.Duplicate(ctx, ownerID, id)
}

func (v *FormValidationService) Embed(ctx context.Context, ownerID int64, id string) (models.EmbedResponse, error) {
	return v.inner.Embed(ctx, ownerID, id)
}

func (v *FormValidationService) GetPublished(ctx context.Context, slug string) (models.Form, error) {
	return v.inner.GetPublished(ctx, slug)
}
