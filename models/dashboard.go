// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DashboardStats are the counters shown on the dashboard cards.
type DashboardStats struct {
	Forms             int                `json:"forms"`
	PublishedForms    int                `json:"published_forms"`
	Submissions       int                `json:"submissions"`
	UnreadSubmissions int                `json:"unread_submissions"`
	Leads             int                `json:"leads"`
	LeadsByStatus     map[LeadStatus]int `json:"leads_by_status"`
}

// ErrorResponse is the body of every non-2xx API response.
// Fields is set on submission validation failures and maps field ids to
// their messages.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
