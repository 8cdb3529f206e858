// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package templates

import (
	"context"
	"testing"

	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_IsValid(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	list := c.List()
	require.NotEmpty(t, list)

	v := validators.NewFormValidator()
	for _, tpl := range list {
		t.Run(tpl.ID, func(t *testing.T) {
			assert.NotEmpty(t, tpl.Name)
			assert.NotEmpty(t, tpl.Fields)

			schema, err := c.Instantiate(tpl.ID)
			require.NoError(t, err)
			require.NoError(t, v.Validate(context.Background(), schema))
		})
	}
}

func TestBuiltin_ValidationDecoded(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	tpl, err := c.Get("customer-feedback")
	require.NoError(t, err)

	rating, ok := tpl.Fields[1].Validation.(models.RatingValidation)
	require.True(t, ok)
	assert.Equal(t, 5, rating.MaxStars)

	low, high, lowLabel, _ := models.ScaleOf(tpl.Fields[2])
	assert.Equal(t, 1, low)
	assert.Equal(t, 7, high)
	assert.Equal(t, "Very hard", lowLabel)
}

func TestInstantiate_FreshIDs(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	tpl, err := c.Get("lead-capture")
	require.NoError(t, err)

	first, err := c.Instantiate("lead-capture")
	require.NoError(t, err)
	second, err := c.Instantiate("lead-capture")
	require.NoError(t, err)

	assert.Equal(t, models.StatusDraft, first.Status)
	assert.Equal(t, "Lead Capture", first.Title)
	require.Len(t, first.Fields, len(tpl.Fields))
	for i := range first.Fields {
		assert.NotEqual(t, tpl.Fields[i].ID, first.Fields[i].ID)
		assert.NotEqual(t, first.Fields[i].ID, second.Fields[i].ID)
		assert.Equal(t, tpl.Fields[i].Label, first.Fields[i].Label)
	}

	emailID := first.LeadFieldMapping[models.CRMEmail]
	f, ok := first.Field(emailID)
	require.True(t, ok)
	assert.Equal(t, models.FieldEmail, f.Type)

	rule := first.ConditionalRules[0]
	_, ok = first.Field(rule.TargetFieldID)
	assert.True(t, ok)
}

func TestGet_NotFound(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	_, err = c.Get("nope")
	require.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = c.Instantiate("nope")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("- id: [a"))
	require.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = Parse([]byte("- name: no id\n"))
	require.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = Parse([]byte("- id: a\n- id: a\n"))
	require.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestParse_GeneratedFieldIDsAreStable(t *testing.T) {
	doc := []byte("- id: t\n  name: T\n  fields:\n    - type: text\n    - type: rating\n")

	a, err := Parse(doc)
	require.NoError(t, err)
	b, err := Parse(doc)
	require.NoError(t, err)

	ta, _ := a.Get("t")
	tb, _ := b.Get("t")
	assert.Equal(t, ta.Fields[0].ID, tb.Fields[0].ID)
	assert.NotEqual(t, ta.Fields[0].ID, ta.Fields[1].ID)
	assert.Equal(t, "Rating", ta.Fields[1].Label)
}
