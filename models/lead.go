// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LeadStatus is a column of the sales pipeline.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadProposal  LeadStatus = "proposal"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// PipelineStatuses lists lead statuses in board order.
var PipelineStatuses = []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadWon, LeadLost}

// IsKnown reports whether s is a pipeline status.
func (s LeadStatus) IsKnown() bool {
	for _, known := range PipelineStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is a CRM sales opportunity, created by hand or from a form submission.
type Lead struct {
	ID           string     `json:"id"`
	OwnerID      int64      `json:"-"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company"`
	Status       LeadStatus `json:"status"`
	Source       string     `json:"source"`
	FormID       string     `json:"form_id,omitempty"`
	SubmissionID string     `json:"submission_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the name of the database table backing Lead.
func (l Lead) TableName() string {
	return "leads"
}

// Contact is a CRM address-book entry.
type Contact struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table backing Contact.
func (c Contact) TableName() string {
	return "contacts"
}

// LeadsResponse is the envelope of the leads list endpoint.
type LeadsResponse struct {
	Leads []Lead `json:"leads"`
}

// LeadResponse is the envelope of single-lead endpoints.
type LeadResponse struct {
	Lead Lead `json:"lead"`
}

// LeadStatusRequest moves a lead to another pipeline column.
type LeadStatusRequest struct {
	Status LeadStatus `json:"status"`
}
