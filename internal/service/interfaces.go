// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"

	"github.com/MKhiriev/formdesk/models"
)

// AuthService registers operators and issues their session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// FormService manages an operator's forms. Every method except GetPublished
// is scoped to ownerID.
type FormService interface {
	List(ctx context.Context, ownerID int64) ([]models.Form, error)
	Get(ctx context.Context, ownerID int64, id string) (models.Form, error)
	Create(ctx context.Context, ownerID int64, schema models.FormSchema) (models.Form, error)
	Update(ctx context.Context, ownerID int64, id string, patch models.FormPatch) (models.Form, error)
	Delete(ctx context.Context, ownerID int64, id string) error
	Duplicate(ctx context.Context, ownerID int64, id string) (models.Form, error)
	Embed(ctx context.Context, ownerID int64, id string) (models.EmbedResponse, error)

	// GetPublished returns the form behind slug if it is published.
	GetPublished(ctx context.Context, slug string) (models.Form, error)
}

// SubmissionService accepts public answers and exposes them to the form
// owner.
type SubmissionService interface {
	Submit(ctx context.Context, slug string, req models.SubmitRequest) (models.SubmitResponse, error)
	List(ctx context.Context, ownerID int64, formID string) (models.SubmissionsResponse, error)
	MarkRead(ctx context.Context, ownerID int64, formID, id string) error
	Delete(ctx context.Context, ownerID int64, formID, id string) error
	// ExportCSV returns the download file name and the CSV body.
	ExportCSV(ctx context.Context, ownerID int64, formID string) (string, []byte, error)
}

type LeadService interface {
	List(ctx context.Context, ownerID int64) ([]models.Lead, error)
	Create(ctx context.Context, ownerID int64, lead models.Lead) (models.Lead, error)
	UpdateStatus(ctx context.Context, ownerID int64, id string, status models.LeadStatus) (models.Lead, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

type TemplateService interface {
	List(ctx context.Context) []models.FormTemplate
	// Use creates a draft form from the template.
	Use(ctx context.Context, ownerID int64, id string) (models.Form, error)
}

type DashboardService interface {
	Stats(ctx context.Context, ownerID int64) (models.DashboardStats, error)
}
