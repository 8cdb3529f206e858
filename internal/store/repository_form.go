// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/models"
)

type formRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFormRepository constructs a [FormRepository] over the "forms" table.
// Fields, settings, rules and the lead mapping live in JSON columns.
func NewFormRepository(db *DB, logger *logger.Logger) FormRepository {
	logger.Debug().Msg("creating form repository")
	return &formRepository{
		db:     db,
		logger: logger,
	}
}

func (r *formRepository) Create(ctx context.Context, form models.Form) error {
	log := logger.FromContext(ctx)

	values, err := formValues(form)
	if err != nil {
		return err
	}

	query, args, err := r.db.builder.
		Insert("forms").
		Columns(formColumns...).
		Values(values...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*formRepository.Create").Msg("error inserting form")
		if isUniqueViolation(err) {
			return ErrSlugAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *formRepository) Get(ctx context.Context, ownerID int64, id string) (models.Form, error) {
	return r.getOne(ctx, sq.Eq{"forms.id": id, "forms.owner_id": ownerID})
}

// GetBySlug looks a form up by its public slug regardless of owner or
// status; the caller decides what is publicly visible.
func (r *formRepository) GetBySlug(ctx context.Context, slug string) (models.Form, error) {
	return r.getOne(ctx, sq.Eq{"forms.slug": slug})
}

func (r *formRepository) getOne(ctx context.Context, where sq.Eq) (models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectForms().Where(where).ToSql()
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	form, err := scanForm(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Form{}, ErrFormNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*formRepository.getOne").Msg("error selecting form")
		return models.Form{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return form, nil
}

// List returns the owner's forms, most recently updated first.
func (r *formRepository) List(ctx context.Context, ownerID int64) ([]models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectForms().
		Where(sq.Eq{"forms.owner_id": ownerID}).
		OrderBy("forms.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.List").Msg("error selecting forms")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	forms := make([]models.Form, 0)
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			log.Err(err).Str("func", "*formRepository.List").Msg("error scanning form")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		forms = append(forms, form)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return forms, nil
}

// Update overwrites every editable column of the form. Slug, owner and
// creation time are immutable.
func (r *formRepository) Update(ctx context.Context, form models.Form) error {
	log := logger.FromContext(ctx)

	values, err := formValues(form)
	if err != nil {
		return err
	}

	set := make(map[string]any, len(formColumns))
	for i, column := range formColumns {
		switch column {
		case "id", "owner_id", "slug", "created_at":
			continue
		}
		set[column] = values[i]
	}

	query, args, err := r.db.builder.
		Update("forms").
		SetMap(set).
		Where(sq.Eq{"id": form.ID, "owner_id": form.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.retry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*formRepository.Update").Msg("error updating form")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrFormNotFound)
}

// Delete removes the form; its submissions go with it through the foreign
// key cascade.
func (r *formRepository) Delete(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("forms").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.Delete").Msg("error deleting form")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrFormNotFound)
}

// Count returns how many forms the owner has and how many are published.
func (r *formRepository) Count(ctx context.Context, ownerID int64) (total, published int, err error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		Column(sq.Expr("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)", string(models.StatusPublished))).
		From("forms").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total, &published); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*formRepository.Count").Msg("error counting forms")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, published, nil
}

// expectAffected turns a statement that touched no row into notFound.
func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
