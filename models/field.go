// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// FieldType is the closed set of input kinds a form field can take.
// It determines which editor properties and which filling control apply.
type FieldType string

const (
	FieldText           FieldType = "text"
	FieldEmail          FieldType = "email"
	FieldPhone          FieldType = "phone"
	FieldNumber         FieldType = "number"
	FieldTextarea       FieldType = "textarea"
	FieldSelect         FieldType = "select"
	FieldMultiSelect    FieldType = "multi_select"
	FieldCheckbox       FieldType = "checkbox"
	FieldRadio          FieldType = "radio"
	FieldDate           FieldType = "date"
	FieldFileUpload     FieldType = "file_upload"
	FieldRating         FieldType = "rating"
	FieldSignature      FieldType = "signature"
	FieldNPS            FieldType = "nps"
	FieldScale          FieldType = "scale"
	FieldTestimonial    FieldType = "testimonial"
	FieldSectionHeading FieldType = "section_heading"
	FieldParagraph      FieldType = "paragraph"
)

// AllFieldTypes lists every known field type in palette order.
var AllFieldTypes = []FieldType{
	FieldText, FieldEmail, FieldPhone, FieldNumber, FieldTextarea,
	FieldSelect, FieldMultiSelect, FieldCheckbox, FieldRadio, FieldDate,
	FieldFileUpload, FieldRating, FieldSignature, FieldNPS, FieldScale,
	FieldTestimonial, FieldSectionHeading, FieldParagraph,
}

// IsChoice reports whether the type carries an options list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldSelect, FieldMultiSelect, FieldRadio, FieldCheckbox:
		return true
	}
	return false
}

// IsLayout reports whether the type is display-only and produces no value.
func (t FieldType) IsLayout() bool {
	return t == FieldSectionHeading || t == FieldParagraph
}

// IsKnown reports whether t is one of [AllFieldTypes].
func (t FieldType) IsKnown() bool {
	for _, known := range AllFieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FieldWidth is a layout hint with no behavioural effect.
type FieldWidth string

const (
	WidthFull FieldWidth = "full"
	WidthHalf FieldWidth = "half"
)

// FieldSchema describes one question or input on a form.
//
// ID is generated once and never changes; it keys submission values and is
// the target of conditional rules. Validation is nil for types that have no
// constraints.
type FieldSchema struct {
	ID          string     `json:"id"`
	Type        FieldType  `json:"type"`
	Label       string     `json:"label"`
	Placeholder string     `json:"placeholder"`
	Required    bool       `json:"required"`
	Options     []string   `json:"options"`
	Validation  Validation `json:"validation"`
	Description string     `json:"description"`
	Width       FieldWidth `json:"width"`
}

// fieldSchemaJSON mirrors FieldSchema with the validation kept raw so that
// the variant can be chosen from Type during decoding.
type fieldSchemaJSON struct {
	ID          string          `json:"id"`
	Type        FieldType       `json:"type"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options"`
	Validation  json.RawMessage `json:"validation"`
	Description string          `json:"description"`
	Width       FieldWidth      `json:"width"`
}

// MarshalJSON writes validation as the flat attribute object the dashboard
// expects, `{}` when the field has none.
func (f FieldSchema) MarshalJSON() ([]byte, error) {
	validation := []byte("{}")
	if f.Validation != nil {
		raw, err := json.Marshal(f.Validation)
		if err != nil {
			return nil, fmt.Errorf("marshal validation of field %s: %w", f.ID, err)
		}
		validation = raw
	}

	options := f.Options
	if options == nil {
		options = []string{}
	}

	return json.Marshal(fieldSchemaJSON{
		ID:          f.ID,
		Type:        f.Type,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Required:    f.Required,
		Options:     options,
		Validation:  validation,
		Description: f.Description,
		Width:       f.Width,
	})
}

// UnmarshalJSON decodes the field and picks the validation variant by Type.
func (f *FieldSchema) UnmarshalJSON(b []byte) error {
	var raw fieldSchemaJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	validation, err := DecodeValidation(raw.Type, raw.Validation)
	if err != nil {
		return fmt.Errorf("decode validation of field %s: %w", raw.ID, err)
	}

	*f = FieldSchema{
		ID:          raw.ID,
		Type:        raw.Type,
		Label:       raw.Label,
		Placeholder: raw.Placeholder,
		Required:    raw.Required,
		Options:     raw.Options,
		Validation:  validation,
		Description: raw.Description,
		Width:       raw.Width,
	}
	if f.Options == nil {
		f.Options = []string{}
	}
	if f.Width == "" {
		f.Width = WidthFull
	}
	return nil
}

// Clone returns a deep copy so that edits to the copy never leak into the
// original's options slice or validation variant.
func (f FieldSchema) Clone() FieldSchema {
	out := f
	out.Options = append([]string{}, f.Options...)
	if f.Validation != nil {
		out.Validation = f.Validation.clone()
	}
	return out
}
