// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SubmissionData is the value map of one filled form, keyed by field id.
// Value shapes depend on the field type: string, []any of strings, float64,
// bool, or a testimonial object.
type SubmissionData map[string]any

// FormSubmission is one completed fill of a form.
//
// IsRead is a one-way latch: once true it is never reset.
type FormSubmission struct {
	ID             string         `json:"id"`
	FormID         string         `json:"form_id"`
	Data           SubmissionData `json:"data"`
	SubmitterEmail string         `json:"submitter_email"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TableName returns the name of the database table backing FormSubmission.
func (s FormSubmission) TableName() string {
	return "form_submissions"
}

// TestimonialValue is the compound value of a testimonial field.
type TestimonialValue struct {
	Text       string `json:"text"`
	Permission bool   `json:"permission"`
}

// FileValue is the metadata the server keeps for a file_upload answer.
// File contents are never stored.
type FileValue struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// SubmissionsResponse is returned by the submissions list endpoint: the
// submissions together with the field list needed to render them.
type SubmissionsResponse struct {
	Submissions []FormSubmission `json:"submissions"`
	Fields      []FieldSchema    `json:"fields"`
}

// SubmitRequest is the body of a public form submission.
type SubmitRequest struct {
	Data           SubmissionData `json:"data"`
	SubmitterEmail string         `json:"submitter_email"`
}

// SubmitResponse acknowledges a public submission with the thank-you
// behaviour of the form.
type SubmitResponse struct {
	ID                  string `json:"id"`
	ThankYouTitle       string `json:"thank_you_title,omitempty"`
	ThankYouMessage     string `json:"thank_you_message,omitempty"`
	ThankYouRedirectURL string `json:"thank_you_redirect_url,omitempty"`
}
