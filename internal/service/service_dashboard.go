// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/models"
)

type dashboardService struct {
	formRepository       store.FormRepository
	submissionRepository store.SubmissionRepository
	leadRepository       store.LeadRepository

	logger *logger.Logger
}

func NewDashboardService(repos *store.Repositories, logger *logger.Logger) DashboardService {
	return &dashboardService{
		formRepository:       repos.FormRepository,
		submissionRepository: repos.SubmissionRepository,
		leadRepository:       repos.LeadRepository,
		logger:               logger,
	}
}

// Stats runs the three counters concurrently; the first failure cancels
// the others.
func (s *dashboardService) Stats(ctx context.Context, ownerID int64) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.Forms, stats.PublishedForms, err = s.formRepository.Count(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Submissions, stats.UnreadSubmissions, err = s.submissionRepository.Count(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		byStatus, err := s.leadRepository.CountByStatus(gctx, ownerID)
		if err != nil {
			return err
		}
		stats.LeadsByStatus = byStatus
		for _, n := range byStatus {
			stats.Leads += n
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("error collecting dashboard stats: %w", err)
	}

	return stats, nil
}
