// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"fmt"

	"github.com/MKhiriev/formdesk/models"
)

// Direction is the way MoveField swaps a field.
type Direction int

const (
	Up Direction = iota
	Down
)

// AddField appends a default field of type t and returns the new list along
// with the index of the added field.
func AddField(fields []models.FieldSchema, t models.FieldType) ([]models.FieldSchema, int) {
	out := make([]models.FieldSchema, len(fields), len(fields)+1)
	copy(out, fields)
	out = append(out, NewField(t))
	return out, len(out) - 1
}

// UpdateField replaces the field at index with field in full.
func UpdateField(fields []models.FieldSchema, index int, field models.FieldSchema) ([]models.FieldSchema, error) {
	if err := checkIndex(fields, index); err != nil {
		return nil, err
	}
	out := make([]models.FieldSchema, len(fields))
	copy(out, fields)
	out[index] = field
	return out, nil
}

// DeleteField removes the field at index.
func DeleteField(fields []models.FieldSchema, index int) ([]models.FieldSchema, error) {
	if err := checkIndex(fields, index); err != nil {
		return nil, err
	}
	out := make([]models.FieldSchema, 0, len(fields)-1)
	out = append(out, fields[:index]...)
	out = append(out, fields[index+1:]...)
	return out, nil
}

// MoveField swaps the field at index with its neighbour in direction dir.
// It returns an unchanged copy when no such neighbour exists.
func MoveField(fields []models.FieldSchema, index int, dir Direction) []models.FieldSchema {
	out := make([]models.FieldSchema, len(fields))
	copy(out, fields)

	target := neighbour(index, dir)
	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out
	}
	out[index], out[target] = out[target], out[index]
	return out
}

func neighbour(index int, dir Direction) int {
	if dir == Up {
		return index - 1
	}
	return index + 1
}

func checkIndex(fields []models.FieldSchema, index int) error {
	if index < 0 || index >= len(fields) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(fields))
	}
	return nil
}
