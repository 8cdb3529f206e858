// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"fmt"

	"github.com/MKhiriev/formdesk/models"
	"github.com/google/uuid"
)

// defaultLabel is used for field types missing from defaultLabels.
const defaultLabel = "Field"

var defaultLabels = map[models.FieldType]string{
	models.FieldText:           "Text Field",
	models.FieldEmail:          "Email",
	models.FieldPhone:          "Phone Number",
	models.FieldNumber:         "Number",
	models.FieldTextarea:       "Long Text",
	models.FieldSelect:         "Dropdown",
	models.FieldMultiSelect:    "Multi Select",
	models.FieldCheckbox:       "Checkbox",
	models.FieldRadio:          "Multiple Choice",
	models.FieldDate:           "Date",
	models.FieldFileUpload:     "File Upload",
	models.FieldRating:         "Rating",
	models.FieldSignature:      "Signature",
	models.FieldNPS:            "Net Promoter Score",
	models.FieldScale:          "Linear Scale",
	models.FieldTestimonial:    "Testimonial",
	models.FieldSectionHeading: "Section Heading",
	models.FieldParagraph:      "Paragraph",
}

// DefaultLabel returns the human-readable label a new field of type t gets.
func DefaultLabel(t models.FieldType) string {
	if label, ok := defaultLabels[t]; ok {
		return label
	}
	return defaultLabel
}

// NewField returns a fully populated field of type t with a fresh id.
// Any type string is accepted; unknown types get generic defaults.
func NewField(t models.FieldType) models.FieldSchema {
	field := models.FieldSchema{
		ID:      uuid.NewString(),
		Type:    t,
		Label:   DefaultLabel(t),
		Options: []string{},
		Width:   models.WidthFull,
	}

	if t.IsChoice() {
		field.Options = []string{optionLabel(1), optionLabel(2), optionLabel(3)}
	}
	if t == models.FieldRating {
		field.Validation = models.RatingValidation{MaxStars: models.DefaultMaxStars}
	}

	return field
}

// RegenerateIDs returns a copy of fields where every field has a new id.
// Conditional rules and lead mappings that point at the old ids are not
// rewritten; use RegenerateSchemaIDs for a whole schema.
func RegenerateIDs(fields []models.FieldSchema) []models.FieldSchema {
	out := make([]models.FieldSchema, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
		out[i].ID = uuid.NewString()
	}
	return out
}

// RegenerateSchemaIDs swaps every field id of s for a fresh one and rewrites
// rule and mapping references accordingly.
func RegenerateSchemaIDs(s models.FormSchema) models.FormSchema {
	out := s.Clone()
	renamed := make(map[string]string, len(out.Fields))
	for i := range out.Fields {
		id := uuid.NewString()
		renamed[out.Fields[i].ID] = id
		out.Fields[i].ID = id
	}

	for i, rule := range out.ConditionalRules {
		if id, ok := renamed[rule.FieldID]; ok {
			out.ConditionalRules[i].FieldID = id
		}
		if id, ok := renamed[rule.TargetFieldID]; ok {
			out.ConditionalRules[i].TargetFieldID = id
		}
	}
	for attr, fieldID := range out.LeadFieldMapping {
		if id, ok := renamed[fieldID]; ok {
			out.LeadFieldMapping[attr] = id
		}
	}
	return out
}

func optionLabel(n int) string {
	return fmt.Sprintf("Option %d", n)
}
