// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSchema_UnmarshalPicksVariant(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Validation
	}{
		{
			name: "number with bounds",
			json: `{"id":"a","type":"number","validation":{"min":1,"max":10}}`,
			want: NumberValidation{Min: ptr(1.0), Max: ptr(10.0)},
		},
		{
			name: "number bounds as strings",
			json: `{"id":"a","type":"number","validation":{"min":"3"}}`,
			want: NumberValidation{Min: ptr(3.0)},
		},
		{
			name: "rating",
			json: `{"id":"a","type":"rating","validation":{"maxStars":7}}`,
			want: RatingValidation{MaxStars: 7},
		},
		{
			name: "file",
			json: `{"id":"a","type":"file_upload","validation":{"allowedTypes":"pdf,doc","maxSizeMB":2}}`,
			want: FileValidation{AllowedTypes: "pdf,doc", MaxSizeMB: 2},
		},
		{
			name: "scale",
			json: `{"id":"a","type":"scale","validation":{"scale_min":0,"scale_max":10,"low_label":"No","high_label":"Yes"}}`,
			want: ScaleValidation{ScaleMin: ptr(0), ScaleMax: ptr(10), LowLabel: "No", HighLabel: "Yes"},
		},
		{
			name: "keys of other types ignored",
			json: `{"id":"a","type":"text","validation":{"maxStars":7}}`,
			want: nil,
		},
		{
			name: "empty object",
			json: `{"id":"a","type":"rating","validation":{}}`,
			want: nil,
		},
		{
			name: "missing",
			json: `{"id":"a","type":"number"}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FieldSchema
			require.NoError(t, json.Unmarshal([]byte(tt.json), &f))
			assert.Equal(t, tt.want, f.Validation)
			assert.Equal(t, WidthFull, f.Width)
			assert.NotNil(t, f.Options)
		})
	}
}

func TestFieldSchema_MarshalFlatValidation(t *testing.T) {
	f := FieldSchema{
		ID:         "f1",
		Type:       FieldScale,
		Label:      "How likely",
		Validation: ScaleValidation{ScaleMin: ptr(0), ScaleMax: ptr(10)},
		Width:      WidthHalf,
	}

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id":"f1","type":"scale","label":"How likely","placeholder":"","required":false,
		"options":[],"validation":{"scale_min":0,"scale_max":10},"description":"","width":"half"
	}`, string(raw))
}

func TestFieldSchema_CloneIsDeep(t *testing.T) {
	f := FieldSchema{
		ID:         "f1",
		Type:       FieldNumber,
		Options:    []string{"a"},
		Validation: NumberValidation{Min: ptr(1.0)},
	}

	c := f.Clone()
	c.Options[0] = "b"
	*c.Validation.(NumberValidation).Min = 5

	assert.Equal(t, "a", f.Options[0])
	assert.Equal(t, 1.0, *f.Validation.(NumberValidation).Min)
}

func TestValidationDefaults(t *testing.T) {
	assert.Equal(t, 5, RatingOf(FieldSchema{Type: FieldRating}).MaxStars)
	assert.Equal(t, 10.0, FileOf(FieldSchema{Type: FieldFileUpload}).MaxSizeMB)

	low, high, _, _ := ScaleOf(FieldSchema{Type: FieldScale})
	assert.Equal(t, 1, low)
	assert.Equal(t, 5, high)

	assert.Equal(t, []string{"pdf", "png"}, FileValidation{AllowedTypes: " .PDF, png ,"}.Extensions())
}

func TestFormPatch_Apply(t *testing.T) {
	schema := FormSchema{Title: "Contact", Status: StatusDraft}
	published := StatusPublished

	out := FormPatch{Status: &published}.Apply(schema)

	assert.Equal(t, StatusPublished, out.Status)
	assert.Equal(t, "Contact", out.Title)
	assert.Equal(t, StatusDraft, schema.Status)
}

func ptr[T any](v T) *T { return &v }
