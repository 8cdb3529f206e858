// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

func sampleForm() models.Form {
	return models.Form{
		ID:   "f1",
		Slug: "contact-us-abc123",
		FormSchema: models.FormSchema{
			Title:  "Contact us",
			Status: models.StatusPublished,
			Fields: []models.FieldSchema{
				{ID: "name", Type: models.FieldText, Label: "Name", Required: true},
			},
		},
	}
}

func TestListForms(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().List(gomock.Any(), testOperator).Return([]models.Form{sampleForm()}, nil)

	rec := serve(t, h, http.MethodGet, "/api/forms", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.FormsResponse](t, rec)
	require.Len(t, got.Forms, 1)
	assert.Equal(t, "contact-us-abc123", got.Forms[0].Slug)
}

func TestListForms_EmptyIsArray(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().List(gomock.Any(), testOperator).Return(nil, nil)

	rec := serve(t, h, http.MethodGet, "/api/forms", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"forms":[]}`, rec.Body.String())
}

func TestGetForm_NotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().Get(gomock.Any(), testOperator, "missing").Return(models.Form{}, store.ErrFormNotFound)

	rec := serve(t, h, http.MethodGet, "/api/forms/missing", "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgFormNotFound, errorBody(t, rec).Error)
}

func TestCreateForm(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().Create(gomock.Any(), testOperator, gomock.Any()).
		DoAndReturn(func(_ any, _ int64, schema models.FormSchema) (models.Form, error) {
			assert.Equal(t, "Contact us", schema.Title)
			form := sampleForm()
			form.FormSchema = schema
			return form, nil
		})

	rec := serve(t, h, http.MethodPost, "/api/forms", `{"title":"Contact us","fields":[]}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "f1", decodeBody[models.FormResponse](t, rec).Form.ID)
}

func TestCreateForm_ValidationError(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().Create(gomock.Any(), testOperator, gomock.Any()).
		Return(models.Form{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyTitle))

	rec := serve(t, h, http.MethodPost, "/api/forms", `{"title":""}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid data provided: title is required", errorBody(t, rec).Error)
}

func TestUpdateForm_PartialPatch(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()

	closed := models.StatusClosed
	m.forms.EXPECT().Update(gomock.Any(), testOperator, "f1", models.FormPatch{Status: &closed}).
		DoAndReturn(func(_ any, _ int64, _ string, _ models.FormPatch) (models.Form, error) {
			form := sampleForm()
			form.Status = models.StatusClosed
			return form, nil
		})

	rec := serve(t, h, http.MethodPut, "/api/forms/f1", `{"status":"closed"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusClosed, decodeBody[models.FormResponse](t, rec).Form.Status)
}

func TestDeleteForm(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().Delete(gomock.Any(), testOperator, "f1").Return(nil)

	rec := serve(t, h, http.MethodDelete, "/api/forms/f1", "", true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDuplicateForm(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()

	dup := sampleForm()
	dup.ID, dup.Title, dup.Status = "f2", "Contact us (Copy)", models.StatusDraft
	m.forms.EXPECT().Duplicate(gomock.Any(), testOperator, "f1").Return(dup, nil)

	rec := serve(t, h, http.MethodPost, "/api/forms/f1/duplicate", "", true)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody[models.FormResponse](t, rec).Form
	assert.Equal(t, "f2", got.ID)
	assert.Equal(t, models.StatusDraft, got.Status)
}

func TestEmbedForm(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.forms.EXPECT().Embed(gomock.Any(), testOperator, "f1").
		Return(models.EmbedResponse{URL: "https://forms.example.com/form/contact-us-abc123", Code: "<iframe></iframe>"}, nil)

	rec := serve(t, h, http.MethodGet, "/api/forms/f1/embed", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.EmbedResponse](t, rec)
	assert.Equal(t, "https://forms.example.com/form/contact-us-abc123", got.URL)
	assert.Equal(t, "<iframe></iframe>", got.Code)
}

func TestUseTemplate(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()

	form := sampleForm()
	form.Status = models.StatusDraft
	m.templates.EXPECT().Use(gomock.Any(), testOperator, "contact").Return(form, nil)

	rec := serve(t, h, http.MethodPost, "/api/templates/contact/use", "", true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.StatusDraft, decodeBody[models.FormResponse](t, rec).Form.Status)
}

func TestListTemplates(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.templates.EXPECT().List(gomock.Any()).Return([]models.FormTemplate{{ID: "contact", Name: "Contact"}})

	rec := serve(t, h, http.MethodGet, "/api/templates", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.TemplatesResponse](t, rec)
	require.Len(t, got.Templates, 1)
	assert.Equal(t, "contact", got.Templates[0].ID)
}
