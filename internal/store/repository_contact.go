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

type contactRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewContactRepository constructs a [ContactRepository] over the
// "contacts" table.
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contactRepository) Create(ctx context.Context, contact models.Contact) error {
	query, args, err := r.db.builder.
		Insert("contacts").
		Columns(contactColumns...).
		Values(contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone, contact.Company, contact.Source, contact.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactRepository.Create").Msg("error inserting contact")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindByEmail reports whether the owner already has a contact with email.
func (r *contactRepository) FindByEmail(ctx context.Context, ownerID int64, email string) (models.Contact, bool, error) {
	query, args, err := r.db.builder.
		Select(contactColumns...).
		From("contacts").
		Where(sq.Eq{"owner_id": ownerID, "email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.Contact{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactRepository.FindByEmail").Msg("error selecting contact")
		return models.Contact{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contact, true, nil
}

func (r *contactRepository) List(ctx context.Context, ownerID int64) ([]models.Contact, error) {
	query, args, err := r.db.builder.
		Select(contactColumns...).
		From("contacts").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return contacts, nil
}
