// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"testing"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleOption_DoubleToggleIsIdentity(t *testing.T) {
	start := []string{"Red", "Blue"}

	for _, opt := range []string{"Red", "Green", "Blue"} {
		out := ToggleOption(ToggleOption(start, opt), opt)
		assert.ElementsMatch(t, start, out, opt)
	}
}

func TestToggleOption_DecodedJSON(t *testing.T) {
	out := ToggleOption([]any{"a", "b"}, "a")
	assert.Equal(t, []string{"b"}, out)

	out = ToggleOption(nil, "a")
	assert.Equal(t, []string{"a"}, out)
}

func TestCheckboxIsGroup(t *testing.T) {
	f := NewField(models.FieldCheckbox)
	assert.True(t, CheckboxIsGroup(f))

	f.Options = []string{}
	assert.False(t, CheckboxIsGroup(f))
}

func TestNPSBand(t *testing.T) {
	for score := 0; score <= 6; score++ {
		assert.Equal(t, Detractor, NPSBand(score))
	}
	assert.Equal(t, Passive, NPSBand(7))
	assert.Equal(t, Passive, NPSBand(8))
	assert.Equal(t, Promoter, NPSBand(9))
	assert.Equal(t, Promoter, NPSBand(10))
	assert.Len(t, NPSScores, 11)
}

func TestScaleRange(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ScaleRange(NewField(models.FieldScale)))

	f := WithScaleMax(WithScaleMin(NewField(models.FieldScale), 0), 3)
	assert.Equal(t, []int{0, 1, 2, 3}, ScaleRange(f))

	inverted := WithScaleMax(WithScaleMin(NewField(models.FieldScale), 5), 1)
	assert.Empty(t, ScaleRange(inverted))
}

func TestStarCount_Default(t *testing.T) {
	f := NewField(models.FieldRating)
	f.Validation = nil
	assert.Equal(t, 5, StarCount(f))
}

func TestCheckFileSize(t *testing.T) {
	f := NewField(models.FieldFileUpload)
	limit := int64(10 * 1024 * 1024)

	require.NoError(t, CheckFileSize(f, limit))
	require.NoError(t, CheckFileSize(f, 0))
	require.ErrorIs(t, CheckFileSize(f, limit+1), ErrFileTooLarge)

	f, err := WithMaxSizeMB(f, "1")
	require.NoError(t, err)
	require.NoError(t, CheckFileSize(f, 1024*1024))
	require.ErrorIs(t, CheckFileSize(f, 1024*1024+1), ErrFileTooLarge)
}

func TestCheckFileType(t *testing.T) {
	f := NewField(models.FieldFileUpload)
	require.NoError(t, CheckFileType(f, "anything.exe"))

	f = WithAllowedTypes(f, ".pdf, PNG")
	require.NoError(t, CheckFileType(f, "cv.PDF"))
	require.NoError(t, CheckFileType(f, "photo.png"))
	require.ErrorIs(t, CheckFileType(f, "virus.exe"), ErrFileTypeDenied)
}

func TestTestimonial(t *testing.T) {
	want := models.TestimonialValue{Text: "Great", Permission: true}

	assert.Equal(t, want, Testimonial(want))
	assert.Equal(t, want, Testimonial(map[string]any{"text": "Great", "permission": true}))
	assert.Equal(t, models.TestimonialValue{}, Testimonial("nope"))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hi", "hi"},
		{"whole number", float64(7), "7"},
		{"fraction", 2.5, "2.5"},
		{"list", []any{"a", "b"}, "a, b"},
		{"true", true, "Yes"},
		{"testimonial", map[string]any{"text": "Nice", "permission": false}, "Nice"},
		{"file", models.FileValue{Name: "cv.pdf", Size: 10}, "cv.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty([]any{}))
	assert.True(t, IsEmpty([]string{}))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(0.0))
	assert.False(t, IsEmpty(false))
}
