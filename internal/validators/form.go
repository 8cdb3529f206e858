// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/formdesk/models"
)

// Field name constants restricting FormValidator to a subset of checks.
const (
	FieldTitle    = "title"
	FieldFields   = "fields"
	FieldStatus   = "status"
	FieldRules    = "conditional_rules"
	FieldMapping  = "lead_field_mapping"
	FieldEmail    = "email"
	FieldName     = "name"
	FieldLogin    = "login"
	FieldPassword = "password"
)

// FormValidator checks the structural integrity of a form schema: field ids
// unique, rules and lead mappings pointing at existing fields, and per-type
// constraints that make sense.
type FormValidator struct {
}

// NewFormValidator constructs a FormValidator.
func NewFormValidator() Validator {
	return &FormValidator{}
}

// Validate accepts models.FormSchema, models.Form and pointers to either.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FormSchema:
		return v.validateSchema(ctx, value, fields...)
	case *models.FormSchema:
		return v.validateSchema(ctx, *value, fields...)
	case models.Form:
		return v.validateSchema(ctx, value.FormSchema, fields...)
	case *models.Form:
		return v.validateSchema(ctx, value.FormSchema, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateSchema(_ context.Context, schema models.FormSchema, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldFields, FieldRules, FieldMapping}
	}

	ids := make(map[string]models.FieldSchema, len(schema.Fields))
	for _, f := range schema.Fields {
		ids[f.ID] = f
	}

	for _, name := range fields {
		switch name {
		case FieldTitle:
			if strings.TrimSpace(schema.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldStatus:
			if !schema.Status.IsKnown() {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, schema.Status)
			}
		case FieldFields:
			seen := make(map[string]struct{}, len(schema.Fields))
			for i, f := range schema.Fields {
				if f.ID == "" {
					return fmt.Errorf("%w at index %d", ErrEmptyFieldID, i)
				}
				if _, dup := seen[f.ID]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateFieldID, f.ID)
				}
				seen[f.ID] = struct{}{}
				if err := validateConstraints(f); err != nil {
					return fmt.Errorf("field %s: %w", f.ID, err)
				}
			}
		case FieldRules:
			for i, rule := range schema.ConditionalRules {
				if err := validateRule(rule, ids); err != nil {
					return fmt.Errorf("rule %d: %w", i, err)
				}
			}
		case FieldMapping:
			for attr, fieldID := range schema.LeadFieldMapping {
				if !knownAttribute(attr) {
					return fmt.Errorf("%w: unknown attribute %q", ErrInvalidMapping, attr)
				}
				if fieldID == "" {
					continue
				}
				if _, ok := ids[fieldID]; !ok {
					return fmt.Errorf("%w: %s points at missing field %s", ErrInvalidMapping, attr, fieldID)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateRule(rule models.ConditionalRule, ids map[string]models.FieldSchema) error {
	if _, ok := ids[rule.FieldID]; !ok {
		return fmt.Errorf("%w: source field %q not found", ErrInvalidRule, rule.FieldID)
	}
	if _, ok := ids[rule.TargetFieldID]; !ok {
		return fmt.Errorf("%w: target field %q not found", ErrInvalidRule, rule.TargetFieldID)
	}
	if rule.FieldID == rule.TargetFieldID {
		return fmt.Errorf("%w: field cannot target itself", ErrInvalidRule)
	}
	if !rule.Operator.IsKnown() {
		return fmt.Errorf("%w: operator %q", ErrInvalidRule, rule.Operator)
	}
	if rule.Action != models.ActionShow && rule.Action != models.ActionHide {
		return fmt.Errorf("%w: action %q", ErrInvalidRule, rule.Action)
	}
	return nil
}

func validateConstraints(f models.FieldSchema) error {
	switch c := f.Validation.(type) {
	case models.NumberValidation:
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return fmt.Errorf("%w: min %v greater than max %v", ErrInvalidConstraints, *c.Min, *c.Max)
		}
	case models.RatingValidation:
		if c.MaxStars < models.MinMaxStars || c.MaxStars > models.MaxMaxStars {
			return fmt.Errorf("%w: maxStars %d outside %d..%d", ErrInvalidConstraints, c.MaxStars, models.MinMaxStars, models.MaxMaxStars)
		}
	case models.FileValidation:
		if c.MaxSizeMB < 0 {
			return fmt.Errorf("%w: negative maxSizeMB", ErrInvalidConstraints)
		}
	case models.ScaleValidation:
		low, high, _, _ := models.ScaleOf(f)
		if low >= high {
			return fmt.Errorf("%w: scale %d..%d", ErrInvalidConstraints, low, high)
		}
	}
	return nil
}

func knownAttribute(attr models.CRMAttribute) bool {
	for _, known := range models.CRMAttributes {
		if attr == known {
			return true
		}
	}
	return false
}
