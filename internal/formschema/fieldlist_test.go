// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"testing"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() []models.FieldSchema {
	return []models.FieldSchema{
		NewField(models.FieldText),
		NewField(models.FieldEmail),
		NewField(models.FieldSelect),
		NewField(models.FieldRating),
	}
}

func TestAddField(t *testing.T) {
	fields := sampleFields()

	out, idx := AddField(fields, models.FieldNPS)

	require.Len(t, out, 5)
	assert.Equal(t, 4, idx)
	assert.Equal(t, models.FieldNPS, out[idx].Type)
	assert.Len(t, fields, 4)
}

func TestUpdateField(t *testing.T) {
	fields := sampleFields()
	replacement := WithLabel(fields[1], "Work email")

	out, err := UpdateField(fields, 1, replacement)

	require.NoError(t, err)
	assert.Equal(t, "Work email", out[1].Label)
	assert.Equal(t, "Email", fields[1].Label)

	_, err = UpdateField(fields, 9, replacement)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeleteField_ReinsertRestores(t *testing.T) {
	fields := sampleFields()
	removed := fields[2]

	out, err := DeleteField(fields, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	restored := append(append(append([]models.FieldSchema{}, out[:2]...), removed), out[2:]...)
	assert.Equal(t, fields, restored)

	_, err = DeleteField(fields, -1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveField(t *testing.T) {
	fields := sampleFields()

	t.Run("up then down is identity", func(t *testing.T) {
		for i := 1; i < len(fields); i++ {
			out := MoveField(MoveField(fields, i, Up), i-1, Down)
			assert.Equal(t, fields, out)
		}
	})

	t.Run("swaps neighbours", func(t *testing.T) {
		out := MoveField(fields, 1, Down)
		assert.Equal(t, fields[2].ID, out[1].ID)
		assert.Equal(t, fields[1].ID, out[2].ID)
	})

	t.Run("boundaries are no-ops", func(t *testing.T) {
		assert.Equal(t, fields, MoveField(fields, 0, Up))
		assert.Equal(t, fields, MoveField(fields, len(fields)-1, Down))
		assert.Equal(t, fields, MoveField(fields, 42, Up))
	})

	t.Run("input not mutated", func(t *testing.T) {
		before := append([]models.FieldSchema{}, fields...)
		_ = MoveField(fields, 2, Up)
		assert.Equal(t, before, fields)
	})
}

func TestSession(t *testing.T) {
	s := NewSession(sampleFields())
	assert.Equal(t, NoSelection, s.Selected())

	added := s.Add(models.FieldDate)
	assert.Equal(t, 4, s.Selected())
	sel, ok := s.SelectedField()
	require.True(t, ok)
	assert.Equal(t, added.ID, sel.ID)

	t.Run("move keeps selection on field", func(t *testing.T) {
		s.Move(4, Up)
		assert.Equal(t, 3, s.Selected())
		sel, _ := s.SelectedField()
		assert.Equal(t, added.ID, sel.ID)
	})

	t.Run("delete before selection keeps it", func(t *testing.T) {
		s.Select(0)
		require.NoError(t, s.Delete(1))
		assert.Equal(t, 0, s.Selected())
	})

	t.Run("delete at or before selected index clears it", func(t *testing.T) {
		s.Select(2)
		require.NoError(t, s.Delete(2))
		assert.Equal(t, NoSelection, s.Selected())

		s.Select(2)
		require.NoError(t, s.Delete(1))
		assert.Equal(t, NoSelection, s.Selected())
	})

	t.Run("update replaces in full", func(t *testing.T) {
		f := s.Fields()[0]
		require.NoError(t, s.Update(0, WithRequired(f, true)))
		assert.True(t, s.Fields()[0].Required)
		require.ErrorIs(t, s.Update(99, f), ErrIndexOutOfRange)
	})
}
