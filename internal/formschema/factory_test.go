// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_AllTypes(t *testing.T) {
	for _, typ := range models.AllFieldTypes {
		t.Run(string(typ), func(t *testing.T) {
			f := NewField(typ)

			assert.NotEmpty(t, f.ID)
			assert.Equal(t, typ, f.Type)
			assert.NotEqual(t, defaultLabel, f.Label)
			assert.Empty(t, f.Placeholder)
			assert.Empty(t, f.Description)
			assert.False(t, f.Required)
			assert.Equal(t, models.WidthFull, f.Width)

			if typ.IsChoice() {
				assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, f.Options)
			} else {
				assert.Empty(t, f.Options)
				assert.NotNil(t, f.Options)
			}

			raw, err := json.Marshal(f)
			require.NoError(t, err)
			var wire map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(raw, &wire))

			if typ == models.FieldRating {
				assert.Equal(t, models.RatingValidation{MaxStars: 5}, f.Validation)
				assert.JSONEq(t, `{"maxStars":5}`, string(wire["validation"]))
			} else {
				assert.Nil(t, f.Validation)
				assert.JSONEq(t, `{}`, string(wire["validation"]))
			}
		})
	}
}

func TestNewField_UnknownType(t *testing.T) {
	f := NewField("hologram")

	assert.Equal(t, "Field", f.Label)
	assert.Empty(t, f.Options)
	assert.Nil(t, f.Validation)
	assert.Equal(t, models.WidthFull, f.Width)
}

func TestNewField_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for range 500 {
		id := NewField(models.FieldText).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRegenerateSchemaIDs(t *testing.T) {
	a, b := NewField(models.FieldRadio), NewField(models.FieldEmail)
	schema := models.FormSchema{
		Fields: []models.FieldSchema{a, b},
		ConditionalRules: []models.ConditionalRule{
			{FieldID: a.ID, Operator: models.OpEquals, Value: "Option 1", TargetFieldID: b.ID, Action: models.ActionShow},
		},
		LeadFieldMapping: models.LeadFieldMapping{models.CRMEmail: b.ID},
	}

	out := RegenerateSchemaIDs(schema)

	require.Len(t, out.Fields, 2)
	assert.NotEqual(t, a.ID, out.Fields[0].ID)
	assert.NotEqual(t, b.ID, out.Fields[1].ID)
	assert.Equal(t, out.Fields[0].ID, out.ConditionalRules[0].FieldID)
	assert.Equal(t, out.Fields[1].ID, out.ConditionalRules[0].TargetFieldID)
	assert.Equal(t, out.Fields[1].ID, out.LeadFieldMapping[models.CRMEmail])

	// source untouched
	assert.Equal(t, a.ID, schema.Fields[0].ID)
	assert.Equal(t, b.ID, schema.LeadFieldMapping[models.CRMEmail])
}
