// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validSchema() models.FormSchema {
	return models.FormSchema{
		Title:  "Contact us",
		Status: models.StatusDraft,
		Fields: []models.FieldSchema{
			{ID: "name", Type: models.FieldText, Label: "Name"},
			{ID: "email", Type: models.FieldEmail, Label: "Email"},
			{ID: "topic", Type: models.FieldRadio, Options: []string{"sales", "support"}},
		},
		ConditionalRules: []models.ConditionalRule{
			{FieldID: "topic", Operator: models.OpEquals, Value: "sales", TargetFieldID: "email", Action: models.ActionShow},
		},
		LeadFieldMapping: models.LeadFieldMapping{models.CRMName: "name", models.CRMEmail: "email"},
	}
}

func ptrFloat(f float64) *float64 { return &f }
func ptrInt(i int) *int           { return &i }

// ---------------------------------------------------------------------------
// TestFormValidator
// ---------------------------------------------------------------------------

func TestFormValidator_Dispatch(t *testing.T) {
	v := NewFormValidator()
	ctx := context.Background()

	s := validSchema()
	require.NoError(t, v.Validate(ctx, s))
	require.NoError(t, v.Validate(ctx, &s))
	require.NoError(t, v.Validate(ctx, models.Form{FormSchema: s}))
	require.ErrorIs(t, v.Validate(ctx, "form"), ErrUnsupportedType)
	require.ErrorIs(t, v.Validate(ctx, s, "colour"), ErrUnknownField)
}

func TestFormValidator_Rejects(t *testing.T) {
	v := NewFormValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.FormSchema)
		want   error
	}{
		{"blank title", func(s *models.FormSchema) { s.Title = "  " }, ErrEmptyTitle},
		{"unknown status", func(s *models.FormSchema) { s.Status = "live" }, ErrInvalidStatus},
		{"empty field id", func(s *models.FormSchema) { s.Fields[0].ID = "" }, ErrEmptyFieldID},
		{"duplicate field id", func(s *models.FormSchema) { s.Fields[1].ID = "name" }, ErrDuplicateFieldID},
		{"rule source missing", func(s *models.FormSchema) { s.ConditionalRules[0].FieldID = "gone" }, ErrInvalidRule},
		{"rule target missing", func(s *models.FormSchema) { s.ConditionalRules[0].TargetFieldID = "gone" }, ErrInvalidRule},
		{"rule self target", func(s *models.FormSchema) { s.ConditionalRules[0].TargetFieldID = "topic" }, ErrInvalidRule},
		{"rule operator", func(s *models.FormSchema) { s.ConditionalRules[0].Operator = "gt" }, ErrInvalidRule},
		{"rule action", func(s *models.FormSchema) { s.ConditionalRules[0].Action = "blink" }, ErrInvalidRule},
		{"mapping attribute", func(s *models.FormSchema) { s.LeadFieldMapping["fax"] = "name" }, ErrInvalidMapping},
		{"mapping target", func(s *models.FormSchema) { s.LeadFieldMapping[models.CRMPhone] = "gone" }, ErrInvalidMapping},
		{"number bounds", func(s *models.FormSchema) {
			s.Fields = append(s.Fields, models.FieldSchema{ID: "n", Type: models.FieldNumber,
				Validation: models.NumberValidation{Min: ptrFloat(10), Max: ptrFloat(1)}})
		}, ErrInvalidConstraints},
		{"rating stars", func(s *models.FormSchema) {
			s.Fields = append(s.Fields, models.FieldSchema{ID: "r", Type: models.FieldRating,
				Validation: models.RatingValidation{MaxStars: 11}})
		}, ErrInvalidConstraints},
		{"scale bounds", func(s *models.FormSchema) {
			s.Fields = append(s.Fields, models.FieldSchema{ID: "sc", Type: models.FieldScale,
				Validation: models.ScaleValidation{ScaleMin: ptrInt(5), ScaleMax: ptrInt(5)}})
		}, ErrInvalidConstraints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(&s)
			require.ErrorIs(t, v.Validate(ctx, s), tt.want)
		})
	}
}

func TestFormValidator_UnknownFieldTypeAccepted(t *testing.T) {
	s := validSchema()
	s.Fields = append(s.Fields, models.FieldSchema{ID: "x", Type: "hologram"})

	require.NoError(t, NewFormValidator().Validate(context.Background(), s))
}

func TestFormValidator_ScopedFields(t *testing.T) {
	s := validSchema()
	s.Title = ""

	require.NoError(t, NewFormValidator().Validate(context.Background(), s, FieldStatus, FieldFields))
}
