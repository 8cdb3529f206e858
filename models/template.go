// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FormTemplate is a ready-made field list a new form can start from.
type FormTemplate struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Category    string        `json:"category" yaml:"category"`
	Description string        `json:"description" yaml:"description"`
	Fields      []FieldSchema `json:"fields" yaml:"-"`
}

// TemplatesResponse is the envelope of the templates list endpoint.
type TemplatesResponse struct {
	Templates []FormTemplate `json:"templates"`
}
