// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/formdesk/models"
	"github.com/go-playground/validator/v10"
)

// leadInput carries the tag rules applied to a lead.
type leadInput struct {
	Name    string `validate:"required_without=Email,max=200"`
	Email   string `validate:"omitempty,email"`
	Phone   string `validate:"omitempty,max=40"`
	Company string `validate:"omitempty,max=200"`
}

// credentialsInput carries the tag rules applied to register/login payloads.
type credentialsInput struct {
	Login    string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=8,max=72"`
}

// CRMValidator validates leads, lead status moves and operator credentials
// with go-playground struct tags.
type CRMValidator struct {
	tags *validator.Validate
}

// NewCRMValidator constructs a CRMValidator.
func NewCRMValidator() Validator {
	return &CRMValidator{tags: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate accepts models.Lead, models.LeadStatusRequest and models.User,
// as values or pointers.
func (v *CRMValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Lead:
		return v.validateLead(value)
	case *models.Lead:
		return v.validateLead(*value)
	case models.LeadStatusRequest:
		return validateLeadStatus(value.Status)
	case *models.LeadStatusRequest:
		return validateLeadStatus(value.Status)
	case models.User:
		return v.validateUser(value)
	case *models.User:
		return v.validateUser(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *CRMValidator) validateLead(lead models.Lead) error {
	err := v.tags.Struct(leadInput{Name: lead.Name, Email: lead.Email, Phone: lead.Phone, Company: lead.Company})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLead, err)
	}
	if lead.Status != "" {
		return validateLeadStatus(lead.Status)
	}
	return nil
}

func (v *CRMValidator) validateUser(user models.User) error {
	if err := v.tags.Struct(credentialsInput{Login: user.Login, Password: user.Password}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return nil
}

func validateLeadStatus(status models.LeadStatus) error {
	if !status.IsKnown() {
		return fmt.Errorf("%w: %q", ErrInvalidLeadStatus, status)
	}
	return nil
}
