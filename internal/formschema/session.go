// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import "github.com/MKhiriev/formdesk/models"

// NoSelection is the selected index of a Session with nothing selected.
const NoSelection = -1

// Session is an in-memory editing session over a field list with a
// "currently selected field" pointer. Each mutation replaces the list
// wholesale; the previous slice handed out by Fields is never modified.
type Session struct {
	fields   []models.FieldSchema
	selected int
}

// NewSession starts a session over a copy of fields with nothing selected.
func NewSession(fields []models.FieldSchema) *Session {
	return &Session{
		fields:   append([]models.FieldSchema{}, fields...),
		selected: NoSelection,
	}
}

// Fields returns the current field list.
func (s *Session) Fields() []models.FieldSchema {
	return s.fields
}

// Selected returns the selected index, or NoSelection.
func (s *Session) Selected() int {
	return s.selected
}

// SelectedField returns the selected field if any.
func (s *Session) SelectedField() (models.FieldSchema, bool) {
	if s.selected == NoSelection {
		return models.FieldSchema{}, false
	}
	return s.fields[s.selected], true
}

// Select points the session at index. Out of range indices clear it.
func (s *Session) Select(index int) {
	if index < 0 || index >= len(s.fields) {
		s.selected = NoSelection
		return
	}
	s.selected = index
}

// Add appends a default field of type t and selects it.
func (s *Session) Add(t models.FieldType) models.FieldSchema {
	s.fields, s.selected = AddField(s.fields, t)
	return s.fields[s.selected]
}

// Update replaces the field at index.
func (s *Session) Update(index int, field models.FieldSchema) error {
	fields, err := UpdateField(s.fields, index, field)
	if err != nil {
		return err
	}
	s.fields = fields
	return nil
}

// Delete removes the field at index. The selection is cleared when it
// pointed at the removed field or any field after it.
func (s *Session) Delete(index int) error {
	fields, err := DeleteField(s.fields, index)
	if err != nil {
		return err
	}
	s.fields = fields
	if s.selected >= index {
		s.selected = NoSelection
	}
	return nil
}

// Move swaps the field at index with its neighbour. A selection on either
// of the swapped fields follows its field.
func (s *Session) Move(index int, dir Direction) {
	s.fields = MoveField(s.fields, index, dir)

	target := neighbour(index, dir)
	if target < 0 || target >= len(s.fields) || index < 0 || index >= len(s.fields) {
		return
	}
	switch s.selected {
	case index:
		s.selected = target
	case target:
		s.selected = index
	}
}
