// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the formdesk
// terminal client and the REST API.
//
// [ServerAdapter] is the single call path used by the client services.
// Every method goes through the same request helper: GET requests are
// retried according to the configured policy, a 401 on an authenticated
// call or an HTML response is reported as [ErrSessionExpired], and any
// other failure is an [*APIError] whose message is the server's "error"
// field or a per-action fallback.
package adapter

import (
	"context"

	"github.com/MKhiriev/formdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the client's view of the formdesk API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	// Token returns the stored bearer token or "".
	Token() string

	// Register creates an operator account and stores the issued token.
	Register(ctx context.Context, user models.User) error
	// Login authenticates an operator and stores the issued token.
	Login(ctx context.Context, user models.User) error
	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	ListForms(ctx context.Context) ([]models.Form, error)
	GetForm(ctx context.Context, id string) (models.Form, error)
	CreateForm(ctx context.Context, schema models.FormSchema) (models.Form, error)
	// UpdateForm sends a full or partial schema; only set patch fields change.
	UpdateForm(ctx context.Context, id string, patch models.FormPatch) (models.Form, error)
	DeleteForm(ctx context.Context, id string) error
	DuplicateForm(ctx context.Context, id string) (models.Form, error)
	Embed(ctx context.Context, id string) (models.EmbedResponse, error)

	ListSubmissions(ctx context.Context, formID string) (models.SubmissionsResponse, error)
	MarkSubmissionRead(ctx context.Context, formID, id string) error
	DeleteSubmission(ctx context.Context, formID, id string) error
	// ExportSubmissions downloads the CSV export and the file name the
	// server proposes for it.
	ExportSubmissions(ctx context.Context, formID string) (fileName string, body []byte, err error)

	ListLeads(ctx context.Context) ([]models.Lead, error)
	CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error)
	DeleteLead(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]models.FormTemplate, error)
	UseTemplate(ctx context.Context, id string) (models.Form, error)

	Dashboard(ctx context.Context) (models.DashboardStats, error)

	// GetPublicForm loads a published form by slug without authentication.
	GetPublicForm(ctx context.Context, slug string) (models.Form, error)
	// Submit posts a public answer. Field errors come back in
	// [*APIError].Fields.
	Submit(ctx context.Context, slug string, req models.SubmitRequest) (models.SubmitResponse, error)
}
