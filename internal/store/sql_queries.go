// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/formdesk/models"
)

var (
	userColumns = []string{"user_id", "login", "name", "password_hash", "created_at"}

	formColumns = []string{
		"id", "owner_id", "slug", "title", "description", "status",
		"fields", "settings", "thank_you_title", "thank_you_message", "thank_you_redirect_url",
		"auto_create_lead", "auto_create_contact", "lead_field_mapping", "conditional_rules",
		"created_at", "updated_at",
	}

	submissionColumns = []string{"id", "form_id", "data", "submitter_email", "is_read", "created_at"}

	leadColumns = []string{
		"id", "owner_id", "name", "email", "phone", "company", "status", "source",
		"form_id", "submission_id", "created_at", "updated_at",
	}

	contactColumns = []string{"id", "owner_id", "name", "email", "phone", "company", "source", "created_at"}
)

// submissionsCountColumn counts a form's submissions next to its columns.
const submissionsCountColumn = "(SELECT COUNT(*) FROM form_submissions s WHERE s.form_id = forms.id) AS submissions_count"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// selectForms is the common SELECT of form reads.
func (db *DB) selectForms() sq.SelectBuilder {
	return db.builder.
		Select(append(qualify("forms", formColumns), submissionsCountColumn)...).
		From("forms")
}

func qualify(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}

// formValues lays out a form in formColumns order, encoding the JSON
// columns.
func formValues(f models.Form) ([]any, error) {
	fields, err := encodeJSON(nonNil(f.Fields))
	if err != nil {
		return nil, err
	}
	settings, err := encodeJSON(f.Settings)
	if err != nil {
		return nil, err
	}
	mapping := f.LeadFieldMapping
	if mapping == nil {
		mapping = models.LeadFieldMapping{}
	}
	mappingJSON, err := encodeJSON(mapping)
	if err != nil {
		return nil, err
	}
	rules, err := encodeJSON(nonNil(f.ConditionalRules))
	if err != nil {
		return nil, err
	}

	return []any{
		f.ID, f.OwnerID, f.Slug, f.Title, f.Description, string(f.Status),
		fields, settings, f.ThankYouTitle, f.ThankYouMessage, f.ThankYouRedirectURL,
		f.AutoCreateLead, f.AutoCreateContact, mappingJSON, rules,
		f.CreatedAt, f.UpdatedAt,
	}, nil
}

func scanForm(row rowScanner) (models.Form, error) {
	var (
		f                                models.Form
		status                           string
		fields, settings, mapping, rules []byte
	)

	err := row.Scan(
		&f.ID, &f.OwnerID, &f.Slug, &f.Title, &f.Description, &status,
		&fields, &settings, &f.ThankYouTitle, &f.ThankYouMessage, &f.ThankYouRedirectURL,
		&f.AutoCreateLead, &f.AutoCreateContact, &mapping, &rules,
		&f.CreatedAt, &f.UpdatedAt, &f.SubmissionsCount,
	)
	if err != nil {
		return models.Form{}, err
	}
	f.Status = models.FormStatus(status)

	if err = decodeJSON(fields, &f.Fields); err != nil {
		return models.Form{}, err
	}
	if err = decodeJSON(settings, &f.Settings); err != nil {
		return models.Form{}, err
	}
	if err = decodeJSON(mapping, &f.LeadFieldMapping); err != nil {
		return models.Form{}, err
	}
	if err = decodeJSON(rules, &f.ConditionalRules); err != nil {
		return models.Form{}, err
	}
	if f.Fields == nil {
		f.Fields = []models.FieldSchema{}
	}
	if f.ConditionalRules == nil {
		f.ConditionalRules = []models.ConditionalRule{}
	}
	if f.LeadFieldMapping == nil {
		f.LeadFieldMapping = models.LeadFieldMapping{}
	}

	return f, nil
}

func scanSubmission(row rowScanner) (models.FormSubmission, error) {
	var (
		s    models.FormSubmission
		data []byte
	)
	if err := row.Scan(&s.ID, &s.FormID, &data, &s.SubmitterEmail, &s.IsRead, &s.CreatedAt); err != nil {
		return models.FormSubmission{}, err
	}
	if err := decodeJSON(data, &s.Data); err != nil {
		return models.FormSubmission{}, err
	}
	if s.Data == nil {
		s.Data = models.SubmissionData{}
	}
	return s, nil
}

func scanLead(row rowScanner) (models.Lead, error) {
	var (
		l                    models.Lead
		status               string
		formID, submissionID *string
	)
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Name, &l.Email, &l.Phone, &l.Company, &status, &l.Source,
		&formID, &submissionID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return models.Lead{}, err
	}
	l.Status = models.LeadStatus(status)
	if formID != nil {
		l.FormID = *formID
	}
	if submissionID != nil {
		l.SubmissionID = *submissionID
	}
	return l, nil
}

func scanContact(row rowScanner) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Source, &c.CreatedAt)
	return c, err
}

// nullable stores an empty reference as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// encodeJSON renders a JSON column as text, which both jsonb and TEXT
// columns accept.
func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return string(raw), nil
}

func decodeJSON(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingColumn, err)
	}
	return nil
}
