package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a login that is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no user matches the given login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSlugAlreadyExists is returned when a form's public slug collides
	// with an existing one.
	ErrSlugAlreadyExists = errors.New("slug already exists")

	// ErrFormNotFound is returned when a form does not exist or belongs to
	// another operator.
	ErrFormNotFound = errors.New("form was not found")

	// ErrSubmissionNotFound is returned when a submission does not exist
	// under the given form.
	ErrSubmissionNotFound = errors.New("submission was not found")

	// ErrLeadNotFound is returned when a lead does not exist or belongs to
	// another operator.
	ErrLeadNotFound = errors.New("lead was not found")
)

// Low-level database operation errors, wrapped together with the driver
// error.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
	ErrEncodingColumn     = errors.New("failed to encode json column")
	ErrDecodingColumn     = errors.New("failed to decode json column")
)
