// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/models"
)

type leadRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLeadRepository constructs a [LeadRepository] over the "leads" table.
func NewLeadRepository(db *DB, logger *logger.Logger) LeadRepository {
	logger.Debug().Msg("creating lead repository")
	return &leadRepository{
		db:     db,
		logger: logger,
	}
}

func (r *leadRepository) Create(ctx context.Context, lead models.Lead) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("leads").
		Columns(leadColumns...).
		Values(
			lead.ID, lead.OwnerID, lead.Name, lead.Email, lead.Phone, lead.Company,
			string(lead.Status), lead.Source, nullable(lead.FormID), nullable(lead.SubmissionID),
			lead.CreatedAt, lead.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*leadRepository.Create").Msg("error inserting lead")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *leadRepository) Get(ctx context.Context, ownerID int64, id string) (models.Lead, error) {
	query, args, err := r.db.builder.
		Select(leadColumns...).
		From("leads").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return models.Lead{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	lead, err := scanLead(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Lead{}, ErrLeadNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*leadRepository.Get").Msg("error selecting lead")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return lead, nil
}

// List returns the owner's leads, newest first.
func (r *leadRepository) List(ctx context.Context, ownerID int64) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(leadColumns...).
		From("leads").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*leadRepository.List").Msg("error selecting leads")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		leads = append(leads, lead)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return leads, nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, ownerID int64, id string, status models.LeadStatus) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("leads").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*leadRepository.UpdateStatus").Msg("error updating lead")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrLeadNotFound)
}

func (r *leadRepository) Delete(ctx context.Context, ownerID int64, id string) error {
	query, args, err := r.db.builder.
		Delete("leads").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*leadRepository.Delete").Msg("error deleting lead")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrLeadNotFound)
}

// CountByStatus groups the owner's leads by pipeline column. Every status is
// present in the result, zero when the column is empty.
func (r *leadRepository) CountByStatus(ctx context.Context, ownerID int64) (map[models.LeadStatus]int, error) {
	query, args, err := r.db.builder.
		Select("status", "COUNT(*)").
		From("leads").
		Where(sq.Eq{"owner_id": ownerID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*leadRepository.CountByStatus").Msg("error counting leads")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[models.LeadStatus]int, len(models.PipelineStatuses))
	for _, s := range models.PipelineStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err = rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		counts[models.LeadStatus(status)] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}
