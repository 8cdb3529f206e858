// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/formdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists operator accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// FormRepository persists forms. Every operator-facing read or write is
// scoped to the owner; GetBySlug is the public lookup.
type FormRepository interface {
	Create(ctx context.Context, form models.Form) error
	Get(ctx context.Context, ownerID int64, id string) (models.Form, error)
	GetBySlug(ctx context.Context, slug string) (models.Form, error)
	List(ctx context.Context, ownerID int64) ([]models.Form, error)
	Update(ctx context.Context, form models.Form) error
	Delete(ctx context.Context, ownerID int64, id string) error
	Count(ctx context.Context, ownerID int64) (total, published int, err error)
}

// SubmissionRepository persists form responses. Callers check form
// ownership before reaching it.
type SubmissionRepository interface {
	Create(ctx context.Context, submission models.FormSubmission) error
	List(ctx context.Context, formID string) ([]models.FormSubmission, error)
	HasSubmitter(ctx context.Context, formID, email string) (bool, error)
	MarkRead(ctx context.Context, formID, id string) error
	Delete(ctx context.Context, formID, id string) error
	Count(ctx context.Context, ownerID int64) (total, unread int, err error)
}

// LeadRepository persists pipeline leads.
type LeadRepository interface {
	Create(ctx context.Context, lead models.Lead) error
	Get(ctx context.Context, ownerID int64, id string) (models.Lead, error)
	List(ctx context.Context, ownerID int64) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, ownerID int64, id string, status models.LeadStatus) error
	Delete(ctx context.Context, ownerID int64, id string) error
	CountByStatus(ctx context.Context, ownerID int64) (map[models.LeadStatus]int, error)
}

// ContactRepository persists address-book contacts created from submissions.
type ContactRepository interface {
	Create(ctx context.Context, contact models.Contact) error
	FindByEmail(ctx context.Context, ownerID int64, email string) (models.Contact, bool, error)
	List(ctx context.Context, ownerID int64) ([]models.Contact, error)
}
