// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package formschema holds the pure editing and filling semantics of a form:
// the default field factory, the field list editor, the per-type property
// editor, fill-time value helpers and the conditional visibility evaluator.
//
// Nothing in this package performs I/O. Every operation returns new values
// and leaves its inputs untouched, so callers can keep the previous state
// around for rollback.
package formschema
