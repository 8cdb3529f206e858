// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/models"
)

type submissionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSubmissionRepository constructs a [SubmissionRepository] over the
// "form_submissions" table.
func NewSubmissionRepository(db *DB, logger *logger.Logger) SubmissionRepository {
	logger.Debug().Msg("creating submission repository")
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission models.FormSubmission) error {
	log := logger.FromContext(ctx)

	data := submission.Data
	if data == nil {
		data = models.SubmissionData{}
	}
	dataJSON, err := encodeJSON(data)
	if err != nil {
		return err
	}

	query, args, err := r.db.builder.
		Insert("form_submissions").
		Columns(submissionColumns...).
		Values(submission.ID, submission.FormID, dataJSON, submission.SubmitterEmail, false, submission.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.Create").Msg("error inserting submission")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// List returns the form's submissions, newest first.
func (r *submissionRepository) List(ctx context.Context, formID string) ([]models.FormSubmission, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(submissionColumns...).
		From("form_submissions").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.List").Msg("error selecting submissions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	submissions := make([]models.FormSubmission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			log.Err(err).Str("func", "*submissionRepository.List").Msg("error scanning submission")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return submissions, nil
}

// HasSubmitter reports whether email already answered the form.
func (r *submissionRepository) HasSubmitter(ctx context.Context, formID, email string) (bool, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("form_submissions").
		Where(sq.Eq{"form_id": formID, "submitter_email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*submissionRepository.HasSubmitter").Msg("error counting submitter answers")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n > 0, nil
}

// MarkRead latches is_read to true. There is no way back to unread.
func (r *submissionRepository) MarkRead(ctx context.Context, formID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("form_submissions").
		Set("is_read", true).
		Where(sq.Eq{"id": id, "form_id": formID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.MarkRead").Msg("error updating submission")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrSubmissionNotFound)
}

func (r *submissionRepository) Delete(ctx context.Context, formID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("form_submissions").
		Where(sq.Eq{"id": id, "form_id": formID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.Delete").Msg("error deleting submission")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrSubmissionNotFound)
}

// Count returns the number of submissions across the owner's forms and how
// many of them are still unread.
func (r *submissionRepository) Count(ctx context.Context, ownerID int64) (total, unread int, err error) {
	query, args, err := r.db.builder.
		Select("COUNT(s.id)").
		Column(sq.Expr("COALESCE(SUM(CASE WHEN s.is_read THEN 0 ELSE 1 END), 0)")).
		From("form_submissions s").
		Join("forms f ON f.id = s.form_id").
		Where(sq.Eq{"f.owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total, &unread); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*submissionRepository.Count").Msg("error counting submissions")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, unread, nil
}
