// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/formdesk/models"
)

// Visibility maps a field id to whether it is rendered. Fields absent from
// the map are visible.
type Visibility map[string]bool

// Visible reports whether the field with id is rendered.
func (v Visibility) Visible(id string) bool {
	visible, ok := v[id]
	return !ok || visible
}

// Evaluate applies rules in list order against data and returns the
// visibility of every field. A matching show rule forces its target
// visible; a matching hide rule hides it unless some show rule on the same
// target also matched. Rules pointing at unknown fields are ignored.
//
// Evaluate is pure: the same inputs always produce the same result.
func Evaluate(fields []models.FieldSchema, rules []models.ConditionalRule, data models.SubmissionData) Visibility {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.ID] = struct{}{}
	}

	shown := map[string]bool{}
	hidden := map[string]bool{}
	for _, rule := range rules {
		if _, ok := known[rule.TargetFieldID]; !ok {
			continue
		}
		if !Match(rule, data) {
			continue
		}
		switch rule.Action {
		case models.ActionShow:
			shown[rule.TargetFieldID] = true
		case models.ActionHide:
			hidden[rule.TargetFieldID] = true
		}
	}

	vis := make(Visibility, len(fields))
	for _, f := range fields {
		vis[f.ID] = shown[f.ID] || !hidden[f.ID]
	}
	return vis
}

// Match reports whether rule's condition holds for data.
//
// equals, not_equals and contains compare the rule text of the source
// value (see ruleText). contains on a list checks each element. empty and
// not_empty treat only nil, "" and empty lists as empty, so whitespace is an
// answer here, unlike in required checks.
func Match(rule models.ConditionalRule, data models.SubmissionData) bool {
	value := data[rule.FieldID]

	switch rule.Operator {
	case models.OpEquals:
		return ruleText(value) == rule.Value
	case models.OpNotEquals:
		return ruleText(value) != rule.Value
	case models.OpContains:
		switch value.(type) {
		case []string, []any:
			for _, item := range Strings(value) {
				if strings.Contains(item, rule.Value) {
					return true
				}
			}
			return false
		}
		return strings.Contains(ruleText(value), rule.Value)
	case models.OpEmpty:
		return unanswered(value)
	case models.OpNotEmpty:
		return !unanswered(value)
	}
	return false
}

// ruleText is the string a rule value is compared with. It differs from
// FormatValue only for booleans, which read "true" and "false".
func ruleText(value any) string {
	if b, ok := value.(bool); ok {
		return strconv.FormatBool(b)
	}
	return FormatValue(value)
}

func unanswered(value any) bool {
	if s, ok := value.(string); ok {
		return s == ""
	}
	return IsEmpty(value)
}

// VisibleFields returns the fields of fields that vis renders, in order.
func VisibleFields(fields []models.FieldSchema, vis Visibility) []models.FieldSchema {
	out := make([]models.FieldSchema, 0, len(fields))
	for _, f := range fields {
		if vis.Visible(f.ID) {
			out = append(out, f)
		}
	}
	return out
}

// DropHidden returns a copy of data without the values of hidden fields and
// without layout fields, which never carry a value.
func DropHidden(fields []models.FieldSchema, data models.SubmissionData, vis Visibility) models.SubmissionData {
	layout := map[string]bool{}
	for _, f := range fields {
		if f.Type.IsLayout() {
			layout[f.ID] = true
		}
	}

	out := make(models.SubmissionData, len(data))
	for id, value := range data {
		if !vis.Visible(id) || layout[id] {
			continue
		}
		out[id] = value
	}
	return out
}
