// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import "errors"

var (
	ErrIndexOutOfRange  = errors.New("field index out of range")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidBool      = errors.New("invalid boolean")
	ErrPropertyNotFound = errors.New("property does not apply to field type")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrFileTypeDenied   = errors.New("file type is not allowed")
)
