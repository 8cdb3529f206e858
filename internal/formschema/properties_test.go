// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"testing"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties(t *testing.T) {
	tests := []struct {
		name string
		typ  models.FieldType
		want []Property
	}{
		{"text", models.FieldText, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired}},
		{"heading", models.FieldSectionHeading, []Property{PropLabel, PropDescription, PropWidth}},
		{"paragraph", models.FieldParagraph, []Property{PropLabel, PropDescription, PropWidth}},
		{"radio", models.FieldRadio, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired, PropOptions}},
		{"number", models.FieldNumber, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired, PropMin, PropMax}},
		{"file", models.FieldFileUpload, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired, PropAllowedTypes, PropMaxSizeMB}},
		{"rating", models.FieldRating, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired, PropMaxStars}},
		{"scale", models.FieldScale, []Property{PropLabel, PropDescription, PropWidth, PropPlaceholder, PropRequired, PropScaleMin, PropScaleMax, PropLowLabel, PropHighLabel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Properties(tt.typ))
		})
	}
}

func TestAddOption(t *testing.T) {
	f := NewField(models.FieldSelect)

	out := AddOption(f)

	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3", "Option 4"}, out.Options)
	assert.Len(t, f.Options, 3)

	out, err := RemoveOption(out, 0)
	require.NoError(t, err)
	out = AddOption(out)
	assert.Equal(t, "Option 4", out.Options[len(out.Options)-1])

	_, err = SetOption(out, 10, "x")
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNumberBounds(t *testing.T) {
	f := NewField(models.FieldNumber)

	f, err := WithMin(f, "1")
	require.NoError(t, err)
	f, err = WithMax(f, "10")
	require.NoError(t, err)

	v := models.NumberOf(f)
	require.NotNil(t, v.Min)
	require.NotNil(t, v.Max)
	assert.Equal(t, 1.0, *v.Min)
	assert.Equal(t, 10.0, *v.Max)

	t.Run("empty input clears key", func(t *testing.T) {
		cleared, err := WithMin(f, "  ")
		require.NoError(t, err)
		assert.Nil(t, models.NumberOf(cleared).Min)
		assert.NotNil(t, models.NumberOf(cleared).Max)

		cleared, err = WithMax(cleared, "")
		require.NoError(t, err)
		assert.Nil(t, cleared.Validation)
	})

	t.Run("zero is stored", func(t *testing.T) {
		zero, err := WithMin(f, "0")
		require.NoError(t, err)
		require.NotNil(t, models.NumberOf(zero).Min)
		assert.Equal(t, 0.0, *models.NumberOf(zero).Min)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := WithMin(f, "ten")
		require.ErrorIs(t, err, ErrInvalidNumber)
	})

	t.Run("original untouched", func(t *testing.T) {
		_, _ = WithMin(f, "5")
		assert.Equal(t, 1.0, *models.NumberOf(f).Min)
	})
}

func TestWithMaxStars_Clamped(t *testing.T) {
	f := NewField(models.FieldRating)

	assert.Equal(t, 3, StarCount(WithMaxStars(f, 1)))
	assert.Equal(t, 7, StarCount(WithMaxStars(f, 7)))
	assert.Equal(t, 10, StarCount(WithMaxStars(f, 25)))
}

func TestSet_RoundTripsWithGet(t *testing.T) {
	tests := []struct {
		typ   models.FieldType
		prop  Property
		input string
	}{
		{models.FieldText, PropLabel, "Full name"},
		{models.FieldText, PropPlaceholder, "Jane Doe"},
		{models.FieldText, PropRequired, "true"},
		{models.FieldText, PropWidth, "half"},
		{models.FieldSelect, PropOptions, "Red\nGreen\nBlue"},
		{models.FieldNumber, PropMin, "2.5"},
		{models.FieldFileUpload, PropAllowedTypes, "pdf, png"},
		{models.FieldFileUpload, PropMaxSizeMB, "25"},
		{models.FieldRating, PropMaxStars, "8"},
		{models.FieldScale, PropScaleMin, "0"},
		{models.FieldScale, PropScaleMax, "10"},
		{models.FieldScale, PropLowLabel, "Unlikely"},
		{models.FieldScale, PropHighLabel, "Very likely"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+string(tt.prop), func(t *testing.T) {
			f, err := Set(NewField(tt.typ), tt.prop, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, Get(f, tt.prop))
		})
	}
}

func TestSet_Errors(t *testing.T) {
	_, err := Set(NewField(models.FieldParagraph), PropRequired, "true")
	require.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = Set(NewField(models.FieldText), PropRequired, "maybe")
	require.ErrorIs(t, err, ErrInvalidBool)

	_, err = Set(NewField(models.FieldRating), PropMaxStars, "lots")
	require.ErrorIs(t, err, ErrInvalidNumber)

	_, err = Set(NewField(models.FieldFileUpload), PropMaxSizeMB, "-1")
	require.ErrorIs(t, err, ErrInvalidNumber)
}

func TestScaleLabelsKeepBounds(t *testing.T) {
	f := WithScaleMax(WithScaleMin(NewField(models.FieldScale), 0), 10)
	f = WithScaleLabels(f, "Bad", "Great")

	low, high, lowLabel, highLabel := models.ScaleOf(f)
	assert.Equal(t, 0, low)
	assert.Equal(t, 10, high)
	assert.Equal(t, "Bad", lowLabel)
	assert.Equal(t, "Great", highLabel)
}
