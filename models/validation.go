// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Defaults applied when a field's validation omits a constraint.
const (
	DefaultMaxStars  = 5
	MinMaxStars      = 3
	MaxMaxStars      = 10
	DefaultMaxSizeMB = 10
	DefaultScaleMin  = 1
	DefaultScaleMax  = 5
)

// Validation is the per-type constraint set of a field. Exactly one variant
// applies to a given [FieldType]; types without constraints carry nil.
type Validation interface {
	// Kind returns the field type this variant belongs to.
	Kind() FieldType
	clone() Validation
}

// NumberValidation bounds a number field. Nil means unbounded on that side.
type NumberValidation struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (NumberValidation) Kind() FieldType { return FieldNumber }

func (v NumberValidation) clone() Validation {
	out := NumberValidation{}
	if v.Min != nil {
		m := *v.Min
		out.Min = &m
	}
	if v.Max != nil {
		m := *v.Max
		out.Max = &m
	}
	return out
}

// RatingValidation sets the number of stars of a rating field.
type RatingValidation struct {
	MaxStars int `json:"maxStars"`
}

func (RatingValidation) Kind() FieldType { return FieldRating }

func (v RatingValidation) clone() Validation { return v }

// FileValidation restricts a file upload. AllowedTypes is the
// comma-separated extension list as typed by the operator.
type FileValidation struct {
	AllowedTypes string  `json:"allowedTypes,omitempty"`
	MaxSizeMB    float64 `json:"maxSizeMB,omitempty"`
}

func (FileValidation) Kind() FieldType { return FieldFileUpload }

func (v FileValidation) clone() Validation { return v }

// Extensions splits AllowedTypes into trimmed, lower-cased, dot-less entries.
func (v FileValidation) Extensions() []string {
	var out []string
	for _, part := range strings.Split(v.AllowedTypes, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

// ScaleValidation configures a linear scale field.
type ScaleValidation struct {
	ScaleMin  *int   `json:"scale_min,omitempty"`
	ScaleMax  *int   `json:"scale_max,omitempty"`
	LowLabel  string `json:"low_label,omitempty"`
	HighLabel string `json:"high_label,omitempty"`
}

func (ScaleValidation) Kind() FieldType { return FieldScale }

func (v ScaleValidation) clone() Validation {
	out := v
	if v.ScaleMin != nil {
		m := *v.ScaleMin
		out.ScaleMin = &m
	}
	if v.ScaleMax != nil {
		m := *v.ScaleMax
		out.ScaleMax = &m
	}
	return out
}

// DecodeValidation reads the flat validation object of a field of type t.
// Keys a variant does not understand are ignored; numbers written as strings
// are accepted. Empty, null or unknown-type input yields nil.
func DecodeValidation(t FieldType, raw json.RawMessage) (Validation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, err
	}
	if len(bag) == 0 {
		return nil, nil
	}

	switch t {
	case FieldNumber:
		v := NumberValidation{}
		if n, ok := toFloat(bag["min"]); ok {
			v.Min = &n
		}
		if n, ok := toFloat(bag["max"]); ok {
			v.Max = &n
		}
		if v.Min == nil && v.Max == nil {
			return nil, nil
		}
		return v, nil
	case FieldRating:
		if n, ok := toFloat(bag["maxStars"]); ok {
			return RatingValidation{MaxStars: int(n)}, nil
		}
		return nil, nil
	case FieldFileUpload:
		v := FileValidation{}
		if s, ok := bag["allowedTypes"].(string); ok {
			v.AllowedTypes = s
		}
		if n, ok := toFloat(bag["maxSizeMB"]); ok {
			v.MaxSizeMB = n
		}
		return v, nil
	case FieldScale:
		v := ScaleValidation{}
		if n, ok := toFloat(bag["scale_min"]); ok {
			i := int(n)
			v.ScaleMin = &i
		}
		if n, ok := toFloat(bag["scale_max"]); ok {
			i := int(n)
			v.ScaleMax = &i
		}
		v.LowLabel, _ = bag["low_label"].(string)
		v.HighLabel, _ = bag["high_label"].(string)
		return v, nil
	}

	return nil, nil
}

// RatingOf returns the rating constraints of f with defaults applied.
func RatingOf(f FieldSchema) RatingValidation {
	if v, ok := f.Validation.(RatingValidation); ok && v.MaxStars > 0 {
		return v
	}
	return RatingValidation{MaxStars: DefaultMaxStars}
}

// NumberOf returns the number bounds of f, zero value when unbounded.
func NumberOf(f FieldSchema) NumberValidation {
	if v, ok := f.Validation.(NumberValidation); ok {
		return v
	}
	return NumberValidation{}
}

// FileOf returns the upload constraints of f with defaults applied.
func FileOf(f FieldSchema) FileValidation {
	v, _ := f.Validation.(FileValidation)
	if v.MaxSizeMB <= 0 {
		v.MaxSizeMB = DefaultMaxSizeMB
	}
	return v
}

// ScaleOf returns the scale bounds of f with defaults applied.
func ScaleOf(f FieldSchema) (low, high int, lowLabel, highLabel string) {
	low, high = DefaultScaleMin, DefaultScaleMax
	v, ok := f.Validation.(ScaleValidation)
	if !ok {
		return low, high, "", ""
	}
	if v.ScaleMin != nil {
		low = *v.ScaleMin
	}
	if v.ScaleMax != nil {
		high = *v.ScaleMax
	}
	return low, high, v.LowLabel, v.HighLabel
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
