package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle         = errors.New("title is required")
	ErrEmptyFieldID       = errors.New("field id is required")
	ErrDuplicateFieldID   = errors.New("duplicate field id")
	ErrInvalidStatus      = errors.New("invalid form status")
	ErrInvalidRule        = errors.New("invalid conditional rule")
	ErrInvalidMapping     = errors.New("invalid lead field mapping")
	ErrInvalidConstraints = errors.New("invalid field validation")
	ErrInvalidSubmission  = errors.New("submission is invalid")
	ErrInvalidLead        = errors.New("invalid lead")
	ErrInvalidLeadStatus  = errors.New("invalid lead status")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
