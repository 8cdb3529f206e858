// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/formdesk/models"
)

// Property names one editable attribute of a field.
type Property string

const (
	PropLabel        Property = "label"
	PropDescription  Property = "description"
	PropWidth        Property = "width"
	PropPlaceholder  Property = "placeholder"
	PropRequired     Property = "required"
	PropOptions      Property = "options"
	PropMin          Property = "min"
	PropMax          Property = "max"
	PropAllowedTypes Property = "allowedTypes"
	PropMaxSizeMB    Property = "maxSizeMB"
	PropMaxStars     Property = "maxStars"
	PropScaleMin     Property = "scale_min"
	PropScaleMax     Property = "scale_max"
	PropLowLabel     Property = "low_label"
	PropHighLabel    Property = "high_label"
)

// Properties lists the properties the editor shows for a field of type t,
// in display order.
func Properties(t models.FieldType) []Property {
	props := []Property{PropLabel, PropDescription, PropWidth}
	if !t.IsLayout() {
		props = append(props, PropPlaceholder, PropRequired)
	}
	if t.IsChoice() {
		props = append(props, PropOptions)
	}

	switch t {
	case models.FieldNumber:
		props = append(props, PropMin, PropMax)
	case models.FieldFileUpload:
		props = append(props, PropAllowedTypes, PropMaxSizeMB)
	case models.FieldRating:
		props = append(props, PropMaxStars)
	case models.FieldScale:
		props = append(props, PropScaleMin, PropScaleMax, PropLowLabel, PropHighLabel)
	}
	return props
}

// HasProperty reports whether p is editable on a field of type t.
func HasProperty(t models.FieldType, p Property) bool {
	for _, prop := range Properties(t) {
		if prop == p {
			return true
		}
	}
	return false
}

func WithLabel(f models.FieldSchema, label string) models.FieldSchema {
	out := f.Clone()
	out.Label = label
	return out
}

func WithDescription(f models.FieldSchema, description string) models.FieldSchema {
	out := f.Clone()
	out.Description = description
	return out
}

func WithWidth(f models.FieldSchema, width models.FieldWidth) models.FieldSchema {
	out := f.Clone()
	out.Width = width
	return out
}

func WithPlaceholder(f models.FieldSchema, placeholder string) models.FieldSchema {
	out := f.Clone()
	out.Placeholder = placeholder
	return out
}

func WithRequired(f models.FieldSchema, required bool) models.FieldSchema {
	out := f.Clone()
	out.Required = required
	return out
}

// AddOption appends "Option N" where N is the current option count plus one.
func AddOption(f models.FieldSchema) models.FieldSchema {
	out := f.Clone()
	out.Options = append(out.Options, optionLabel(len(f.Options)+1))
	return out
}

// SetOption rewrites the option at index.
func SetOption(f models.FieldSchema, index int, value string) (models.FieldSchema, error) {
	if index < 0 || index >= len(f.Options) {
		return f, fmt.Errorf("%w: option %d", ErrIndexOutOfRange, index)
	}
	out := f.Clone()
	out.Options[index] = value
	return out, nil
}

// RemoveOption drops the option at index.
func RemoveOption(f models.FieldSchema, index int) (models.FieldSchema, error) {
	if index < 0 || index >= len(f.Options) {
		return f, fmt.Errorf("%w: option %d", ErrIndexOutOfRange, index)
	}
	out := f.Clone()
	out.Options = append(out.Options[:index], out.Options[index+1:]...)
	return out, nil
}

// WithMin sets the lower bound of a number field from raw editor input.
// Empty input clears the bound rather than storing zero.
func WithMin(f models.FieldSchema, input string) (models.FieldSchema, error) {
	n, err := parseOptionalFloat(input)
	if err != nil {
		return f, err
	}
	out := f.Clone()
	v := models.NumberOf(out)
	v.Min = n
	out.Validation = numberOrNil(v)
	return out, nil
}

// WithMax sets the upper bound of a number field from raw editor input.
// Empty input clears the bound rather than storing zero.
func WithMax(f models.FieldSchema, input string) (models.FieldSchema, error) {
	n, err := parseOptionalFloat(input)
	if err != nil {
		return f, err
	}
	out := f.Clone()
	v := models.NumberOf(out)
	v.Max = n
	out.Validation = numberOrNil(v)
	return out, nil
}

func WithAllowedTypes(f models.FieldSchema, allowed string) models.FieldSchema {
	out := f.Clone()
	v, _ := out.Validation.(models.FileValidation)
	v.AllowedTypes = allowed
	out.Validation = v
	return out
}

// WithMaxSizeMB sets the upload limit. Empty input falls back to the default.
func WithMaxSizeMB(f models.FieldSchema, input string) (models.FieldSchema, error) {
	n, err := parseOptionalFloat(input)
	if err != nil {
		return f, err
	}
	out := f.Clone()
	v, _ := out.Validation.(models.FileValidation)
	v.MaxSizeMB = 0
	if n != nil {
		if *n <= 0 {
			return f, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
		}
		v.MaxSizeMB = *n
	}
	out.Validation = v
	return out, nil
}

// WithMaxStars sets the star count of a rating field, clamped to 3..10.
func WithMaxStars(f models.FieldSchema, stars int) models.FieldSchema {
	stars = max(models.MinMaxStars, min(models.MaxMaxStars, stars))
	out := f.Clone()
	out.Validation = models.RatingValidation{MaxStars: stars}
	return out
}

func WithScaleMin(f models.FieldSchema, n int) models.FieldSchema {
	out := f.Clone()
	v := scaleOf(out)
	v.ScaleMin = &n
	out.Validation = v
	return out
}

func WithScaleMax(f models.FieldSchema, n int) models.FieldSchema {
	out := f.Clone()
	v := scaleOf(out)
	v.ScaleMax = &n
	out.Validation = v
	return out
}

func WithScaleLabels(f models.FieldSchema, low, high string) models.FieldSchema {
	out := f.Clone()
	v := scaleOf(out)
	v.LowLabel, v.HighLabel = low, high
	out.Validation = v
	return out
}

// Set applies raw editor input to property p of f. Options are given one
// per line. It is the single entry point the terminal property panel uses.
func Set(f models.FieldSchema, p Property, input string) (models.FieldSchema, error) {
	if !HasProperty(f.Type, p) {
		return f, fmt.Errorf("%w: %s on %s", ErrPropertyNotFound, p, f.Type)
	}

	switch p {
	case PropLabel:
		return WithLabel(f, input), nil
	case PropDescription:
		return WithDescription(f, input), nil
	case PropWidth:
		if models.FieldWidth(input) == models.WidthHalf {
			return WithWidth(f, models.WidthHalf), nil
		}
		return WithWidth(f, models.WidthFull), nil
	case PropPlaceholder:
		return WithPlaceholder(f, input), nil
	case PropRequired:
		required, err := strconv.ParseBool(strings.TrimSpace(input))
		if err != nil {
			return f, fmt.Errorf("%w: %q", ErrInvalidBool, input)
		}
		return WithRequired(f, required), nil
	case PropOptions:
		out := f.Clone()
		out.Options = splitLines(input)
		return out, nil
	case PropMin:
		return WithMin(f, input)
	case PropMax:
		return WithMax(f, input)
	case PropAllowedTypes:
		return WithAllowedTypes(f, input), nil
	case PropMaxSizeMB:
		return WithMaxSizeMB(f, input)
	case PropMaxStars:
		n, err := parseInt(input)
		if err != nil {
			return f, err
		}
		return WithMaxStars(f, n), nil
	case PropScaleMin:
		n, err := parseInt(input)
		if err != nil {
			return f, err
		}
		return WithScaleMin(f, n), nil
	case PropScaleMax:
		n, err := parseInt(input)
		if err != nil {
			return f, err
		}
		return WithScaleMax(f, n), nil
	case PropLowLabel:
		_, _, _, high := models.ScaleOf(f)
		return WithScaleLabels(f, input, high), nil
	case PropHighLabel:
		_, _, low, _ := models.ScaleOf(f)
		return WithScaleLabels(f, low, input), nil
	}
	return f, fmt.Errorf("%w: %s", ErrPropertyNotFound, p)
}

// Get renders property p of f as editor input, the inverse of Set.
func Get(f models.FieldSchema, p Property) string {
	switch p {
	case PropLabel:
		return f.Label
	case PropDescription:
		return f.Description
	case PropWidth:
		return string(f.Width)
	case PropPlaceholder:
		return f.Placeholder
	case PropRequired:
		return strconv.FormatBool(f.Required)
	case PropOptions:
		return strings.Join(f.Options, "\n")
	case PropMin:
		return formatOptionalFloat(models.NumberOf(f).Min)
	case PropMax:
		return formatOptionalFloat(models.NumberOf(f).Max)
	case PropAllowedTypes:
		return models.FileOf(f).AllowedTypes
	case PropMaxSizeMB:
		return strconv.FormatFloat(models.FileOf(f).MaxSizeMB, 'f', -1, 64)
	case PropMaxStars:
		return strconv.Itoa(models.RatingOf(f).MaxStars)
	case PropScaleMin:
		low, _, _, _ := models.ScaleOf(f)
		return strconv.Itoa(low)
	case PropScaleMax:
		_, high, _, _ := models.ScaleOf(f)
		return strconv.Itoa(high)
	case PropLowLabel:
		_, _, low, _ := models.ScaleOf(f)
		return low
	case PropHighLabel:
		_, _, _, high := models.ScaleOf(f)
		return high
	}
	return ""
}

func scaleOf(f models.FieldSchema) models.ScaleValidation {
	v, _ := f.Validation.(models.ScaleValidation)
	return v
}

func numberOrNil(v models.NumberValidation) models.Validation {
	if v.Min == nil && v.Max == nil {
		return nil
	}
	return v
}

func parseOptionalFloat(input string) (*float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return &n, nil
}

func formatOptionalFloat(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func parseInt(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return n, nil
}

func splitLines(input string) []string {
	options := []string{}
	for _, line := range strings.Split(input, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			options = append(options, line)
		}
	}
	return options
}
