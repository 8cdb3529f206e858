// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FormStatus gates public availability of a form.
type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusPublished FormStatus = "published"
	StatusClosed    FormStatus = "closed"
	StatusArchived  FormStatus = "archived"
)

// IsKnown reports whether s is one of the four lifecycle states.
func (s FormStatus) IsKnown() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusClosed, StatusArchived:
		return true
	}
	return false
}

// FormSettings holds optional presentation toggles of a form.
type FormSettings struct {
	SubmitButtonText         string `json:"submit_button_text,omitempty"`
	ShowProgressBar          bool   `json:"show_progress_bar"`
	AllowMultipleSubmissions bool   `json:"allow_multiple_submissions"`
}

// CRMAttribute names a lead/contact attribute that a form field can feed.
type CRMAttribute string

const (
	CRMName    CRMAttribute = "name"
	CRMEmail   CRMAttribute = "email"
	CRMPhone   CRMAttribute = "phone"
	CRMCompany CRMAttribute = "company"
)

// CRMAttributes lists every attribute accepted in a lead field mapping.
var CRMAttributes = []CRMAttribute{CRMName, CRMEmail, CRMPhone, CRMCompany}

// LeadFieldMapping maps a CRM attribute to the id of the field supplying it.
type LeadFieldMapping map[CRMAttribute]string

// RuleOperator is the comparison a conditional rule applies to its source value.
type RuleOperator string

const (
	OpEquals    RuleOperator = "equals"
	OpNotEquals RuleOperator = "not_equals"
	OpContains  RuleOperator = "contains"
	OpNotEmpty  RuleOperator = "not_empty"
	OpEmpty     RuleOperator = "empty"
)

// IsKnown reports whether op is a supported operator.
func (op RuleOperator) IsKnown() bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpNotEmpty, OpEmpty:
		return true
	}
	return false
}

// RuleAction is applied to the target field when a rule matches.
type RuleAction string

const (
	ActionShow RuleAction = "show"
	ActionHide RuleAction = "hide"
)

// ConditionalRule links the value of one field to the visibility of another.
type ConditionalRule struct {
	FieldID       string       `json:"field_id" yaml:"field_id"`
	Operator      RuleOperator `json:"operator" yaml:"operator"`
	Value         string       `json:"value" yaml:"value"`
	TargetFieldID string       `json:"target_field_id" yaml:"target_field_id"`
	Action        RuleAction   `json:"action" yaml:"action"`
}

// FormSchema is the editable definition of a form: its ordered fields plus
// form-level metadata. Field order defines render and fill order.
type FormSchema struct {
	Fields              []FieldSchema     `json:"fields"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Status              FormStatus        `json:"status"`
	Settings            FormSettings      `json:"settings"`
	ThankYouTitle       string            `json:"thank_you_title,omitempty"`
	ThankYouMessage     string            `json:"thank_you_message,omitempty"`
	ThankYouRedirectURL string            `json:"thank_you_redirect_url,omitempty"`
	AutoCreateLead      bool              `json:"auto_create_lead"`
	AutoCreateContact   bool              `json:"auto_create_contact"`
	LeadFieldMapping    LeadFieldMapping  `json:"lead_field_mapping"`
	ConditionalRules    []ConditionalRule `json:"conditional_rules"`
}

// Field returns the field with the given id.
func (s FormSchema) Field(id string) (FieldSchema, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// Clone deep-copies the schema so that the copy can be edited independently.
func (s FormSchema) Clone() FormSchema {
	out := s
	out.Fields = make([]FieldSchema, len(s.Fields))
	for i, f := range s.Fields {
		out.Fields[i] = f.Clone()
	}
	out.ConditionalRules = append([]ConditionalRule{}, s.ConditionalRules...)
	out.LeadFieldMapping = make(LeadFieldMapping, len(s.LeadFieldMapping))
	for k, v := range s.LeadFieldMapping {
		out.LeadFieldMapping[k] = v
	}
	return out
}

// Form is a persisted FormSchema.
type Form struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	OwnerID          int64     `json:"-"`
	SubmissionsCount int       `json:"submissions_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	FormSchema
}

// TableName returns the name of the database table backing Form.
func (f Form) TableName() string {
	return "forms"
}

// FormPatch is a partial update of a form. Nil members are left untouched,
// so a status toggle only carries Status.
type FormPatch struct {
	Fields              *[]FieldSchema     `json:"fields,omitempty"`
	Title               *string            `json:"title,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Status              *FormStatus        `json:"status,omitempty"`
	Settings            *FormSettings      `json:"settings,omitempty"`
	ThankYouTitle       *string            `json:"thank_you_title,omitempty"`
	ThankYouMessage     *string            `json:"thank_you_message,omitempty"`
	ThankYouRedirectURL *string            `json:"thank_you_redirect_url,omitempty"`
	AutoCreateLead      *bool              `json:"auto_create_lead,omitempty"`
	AutoCreateContact   *bool              `json:"auto_create_contact,omitempty"`
	LeadFieldMapping    *LeadFieldMapping  `json:"lead_field_mapping,omitempty"`
	ConditionalRules    *[]ConditionalRule `json:"conditional_rules,omitempty"`
}

// PatchFrom builds a patch that overwrites every member with s, used when
// the builder re-saves a whole form.
func PatchFrom(s FormSchema) FormPatch {
	return FormPatch{
		Fields:              &s.Fields,
		Title:               &s.Title,
		Description:         &s.Description,
		Status:              &s.Status,
		Settings:            &s.Settings,
		ThankYouTitle:       &s.ThankYouTitle,
		ThankYouMessage:     &s.ThankYouMessage,
		ThankYouRedirectURL: &s.ThankYouRedirectURL,
		AutoCreateLead:      &s.AutoCreateLead,
		AutoCreateContact:   &s.AutoCreateContact,
		LeadFieldMapping:    &s.LeadFieldMapping,
		ConditionalRules:    &s.ConditionalRules,
	}
}

// Apply writes every non-nil member of p onto s.
func (p FormPatch) Apply(s FormSchema) FormSchema {
	if p.Fields != nil {
		s.Fields = *p.Fields
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Settings != nil {
		s.Settings = *p.Settings
	}
	if p.ThankYouTitle != nil {
		s.ThankYouTitle = *p.ThankYouTitle
	}
	if p.ThankYouMessage != nil {
		s.ThankYouMessage = *p.ThankYouMessage
	}
	if p.ThankYouRedirectURL != nil {
		s.ThankYouRedirectURL = *p.ThankYouRedirectURL
	}
	if p.AutoCreateLead != nil {
		s.AutoCreateLead = *p.AutoCreateLead
	}
	if p.AutoCreateContact != nil {
		s.AutoCreateContact = *p.AutoCreateContact
	}
	if p.LeadFieldMapping != nil {
		s.LeadFieldMapping = *p.LeadFieldMapping
	}
	if p.ConditionalRules != nil {
		s.ConditionalRules = *p.ConditionalRules
	}
	return s
}

// FormResponse is the envelope of single-form endpoints.
type FormResponse struct {
	Form Form `json:"form"`
}

// FormsResponse is the envelope of the forms list endpoint.
type FormsResponse struct {
	Forms []Form `json:"forms"`
}

// EmbedResponse carries the iframe snippet of a published form.
type EmbedResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}
