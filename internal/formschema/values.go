// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package formschema

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/formdesk/models"
)

// IsEmpty reports whether a submission value counts as "no answer":
// nil, an empty or blank string, or an empty list.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// Strings returns the list form of a multi-value answer. A single string is
// treated as a one-element list.
func Strings(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, FormatValue(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	}
	return []string{}
}

// ToggleOption adds option to a multi-value answer or removes it when
// already present. Membership is by value, not by index.
func ToggleOption(value any, option string) []string {
	current := Strings(value)
	if i := slices.Index(current, option); i >= 0 {
		return slices.Delete(current, i, i+1)
	}
	return append(current, option)
}

// CheckboxIsGroup reports whether a checkbox field behaves as a multi-select.
// Without options it is a single boolean toggle labelled by the field label.
func CheckboxIsGroup(f models.FieldSchema) bool {
	return len(f.Options) > 0
}

// Band is the NPS category of a score.
type Band struct {
	Name  string
	Color string
}

var (
	Detractor = Band{Name: "Detractor", Color: "red"}
	Passive   = Band{Name: "Passive", Color: "amber"}
	Promoter  = Band{Name: "Promoter", Color: "green"}
)

// NPSScores are the eleven selectable NPS values.
var NPSScores = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// NPSBand classifies an NPS score: 0-6 detractor, 7-8 passive, 9-10 promoter.
func NPSBand(score int) Band {
	switch {
	case score >= 9:
		return Promoter
	case score >= 7:
		return Passive
	default:
		return Detractor
	}
}

// ScaleRange returns the selectable values of a scale field, low to high.
func ScaleRange(f models.FieldSchema) []int {
	low, high, _, _ := models.ScaleOf(f)
	if high < low {
		return []int{}
	}
	out := make([]int, 0, high-low+1)
	for i := low; i <= high; i++ {
		out = append(out, i)
	}
	return out
}

// StarCount returns the number of stars a rating field shows.
func StarCount(f models.FieldSchema) int {
	return models.RatingOf(f).MaxStars
}

// MaxFileBytes is the byte limit of a file_upload field.
func MaxFileBytes(f models.FieldSchema) int64 {
	return int64(models.FileOf(f).MaxSizeMB * 1024 * 1024)
}

// CheckFileSize rejects files larger than the field's maxSizeMB. A file
// exactly at the limit is accepted.
func CheckFileSize(f models.FieldSchema, size int64) error {
	if limit := MaxFileBytes(f); size > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, size, limit)
	}
	return nil
}

// CheckFileType rejects files whose extension is not listed in allowedTypes.
// An empty list allows everything.
func CheckFileType(f models.FieldSchema, name string) error {
	allowed := models.FileOf(f).Extensions()
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: %q", ErrFileTypeDenied, name)
	}
	return nil
}

// Testimonial reads a testimonial answer. Both the typed value and its
// decoded JSON object form are accepted.
func Testimonial(value any) models.TestimonialValue {
	switch v := value.(type) {
	case models.TestimonialValue:
		return v
	case *models.TestimonialValue:
		if v != nil {
			return *v
		}
	case map[string]any:
		out := models.TestimonialValue{}
		out.Text, _ = v["text"].(string)
		out.Permission, _ = v["permission"].(bool)
		return out
	}
	return models.TestimonialValue{}
}

// Number reads a numeric answer. Strings are parsed; anything else fails.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}

// FormatValue renders an answer as display text: lists joined with ", ",
// whole numbers without a fraction, booleans as Yes/No.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []string, []any:
		return strings.Join(Strings(v), ", ")
	case models.TestimonialValue, *models.TestimonialValue:
		return Testimonial(v).Text
	case models.FileValue:
		return v.Name
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
		if name, ok := v["name"].(string); ok {
			return name
		}
	}
	return fmt.Sprint(value)
}
