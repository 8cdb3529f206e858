// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/formdesk/internal/logger"

// Repositories bundles every repository sharing one connection.
type Repositories struct {
	UserRepository       UserRepository
	FormRepository       FormRepository
	SubmissionRepository SubmissionRepository
	LeadRepository       LeadRepository
	ContactRepository    ContactRepository
}

// NewRepositories wires all repositories to db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, log),
		FormRepository:       NewFormRepository(db, log),
		SubmissionRepository: NewSubmissionRepository(db, log),
		LeadRepository:       NewLeadRepository(db, log),
		ContactRepository:    NewContactRepository(db, log),
	}
}
