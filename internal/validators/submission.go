// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/signature"
	"github.com/MKhiriev/formdesk/models"
	"github.com/go-playground/validator/v10"
)

// Messages attached to FieldErrors.
const (
	MsgRequired        = "This field is required"
	MsgInvalidEmail    = "Enter a valid email address"
	MsgInvalidPhone    = "Enter a valid phone number"
	MsgInvalidNumber   = "Enter a number"
	MsgBelowMin        = "Must be at least %s"
	MsgAboveMax        = "Must be at most %s"
	MsgInvalidChoice   = "Choose one of the listed options"
	MsgInvalidDate     = "Enter a date as YYYY-MM-DD"
	MsgInvalidRating   = "Choose between 1 and %d stars"
	MsgInvalidNPS      = "Choose a score from 0 to 10"
	MsgInvalidScale    = "Choose a value from %d to %d"
	MsgInvalidFile     = "Attach a valid file"
	MsgFileTooLarge    = "File is larger than %s MB"
	MsgFileTypeDenied  = "File type is not allowed"
	MsgInvalidSign     = "Signature is not a valid image"
	MsgInvalidTestim   = "Testimonial text is invalid"
	MsgInvalidCheckbox = "Invalid checkbox value"
)

// DateLayout is the wire format of date answers.
const DateLayout = "2006-01-02"

// FieldErrors maps field ids to a human readable problem. It satisfies
// error and matches ErrInvalidSubmission with errors.Is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id+": "+e[id])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission, strings.Join(parts, "; "))
}

func (e FieldErrors) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// Submission is the unit SubmissionValidator checks: the answers together
// with the form they answer.
type Submission struct {
	Fields []models.FieldSchema
	Rules  []models.ConditionalRule
	Data   models.SubmissionData
}

// SubmissionValidator checks a value map against its form: required answers
// on visible, non-layout fields and the value shape each field type expects.
// Hidden fields are skipped entirely.
type SubmissionValidator struct {
	tags *validator.Validate
}

// NewSubmissionValidator constructs a SubmissionValidator.
func NewSubmissionValidator() Validator {
	return &SubmissionValidator{tags: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate accepts Submission or *Submission and returns FieldErrors when any
// answer is rejected.
func (v *SubmissionValidator) Validate(ctx context.Context, obj any, _ ...string) error {
	switch value := obj.(type) {
	case Submission:
		return v.check(value)
	case *Submission:
		return v.check(*value)
	default:
		return ErrUnsupportedType
	}
}

// Check validates data against fields and rules without going through the
// Validator interface. It returns nil when every answer is acceptable.
func Check(fields []models.FieldSchema, rules []models.ConditionalRule, data models.SubmissionData) FieldErrors {
	v := &SubmissionValidator{tags: validator.New()}
	if err := v.check(Submission{Fields: fields, Rules: rules, Data: data}); err != nil {
		return err.(FieldErrors)
	}
	return nil
}

func (v *SubmissionValidator) check(s Submission) error {
	vis := formschema.Evaluate(s.Fields, s.Rules, s.Data)
	errs := FieldErrors{}

	for _, f := range s.Fields {
		if f.Type.IsLayout() || !vis.Visible(f.ID) {
			continue
		}

		value := s.Data[f.ID]
		if isBlank(f, value) {
			if f.Required {
				errs[f.ID] = MsgRequired
			}
			continue
		}

		if msg := v.checkShape(f, value); msg != "" {
			errs[f.ID] = msg
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// isBlank extends formschema.IsEmpty with the single-checkbox rule: an
// unticked box is no answer.
func isBlank(f models.FieldSchema, value any) bool {
	if f.Type == models.FieldCheckbox && !formschema.CheckboxIsGroup(f) {
		ticked, _ := value.(bool)
		return !ticked
	}
	if f.Type == models.FieldTestimonial {
		if _, ok := value.(string); !ok && value != nil {
			return strings.TrimSpace(formschema.Testimonial(value).Text) == ""
		}
	}
	return formschema.IsEmpty(value)
}

func (v *SubmissionValidator) checkShape(f models.FieldSchema, value any) string {
	switch f.Type {
	case models.FieldEmail:
		s, ok := value.(string)
		if !ok || v.tags.Var(s, "email") != nil {
			return MsgInvalidEmail
		}
	case models.FieldPhone:
		s, ok := value.(string)
		if !ok || !validPhone(s) {
			return MsgInvalidPhone
		}
	case models.FieldNumber:
		return checkNumber(f, value)
	case models.FieldSelect, models.FieldRadio:
		s, ok := value.(string)
		if !ok || !slices.Contains(f.Options, s) {
			return MsgInvalidChoice
		}
	case models.FieldMultiSelect:
		return checkChoices(f, value)
	case models.FieldCheckbox:
		if formschema.CheckboxIsGroup(f) {
			return checkChoices(f, value)
		}
		if _, ok := value.(bool); !ok {
			return MsgInvalidCheckbox
		}
	case models.FieldDate:
		s, ok := value.(string)
		if !ok {
			return MsgInvalidDate
		}
		if _, err := time.Parse(DateLayout, s); err != nil {
			return MsgInvalidDate
		}
	case models.FieldRating:
		stars := formschema.StarCount(f)
		if n, ok := wholeNumber(value); !ok || n < 1 || n > stars {
			return fmt.Sprintf(MsgInvalidRating, stars)
		}
	case models.FieldNPS:
		if n, ok := wholeNumber(value); !ok || n < 0 || n > 10 {
			return MsgInvalidNPS
		}
	case models.FieldScale:
		low, high, _, _ := models.ScaleOf(f)
		if n, ok := wholeNumber(value); !ok || n < low || n > high {
			return fmt.Sprintf(MsgInvalidScale, low, high)
		}
	case models.FieldSignature:
		s, ok := value.(string)
		if !ok || !strings.HasPrefix(s, signature.DataURLPrefix) {
			return MsgInvalidSign
		}
	case models.FieldTestimonial:
		switch value.(type) {
		case models.TestimonialValue, *models.TestimonialValue, map[string]any:
		default:
			return MsgInvalidTestim
		}
	case models.FieldFileUpload:
		return checkFile(f, value)
	}
	return ""
}

func checkNumber(f models.FieldSchema, value any) string {
	n, ok := formschema.Number(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return MsgInvalidNumber
	}
	bounds := models.NumberOf(f)
	if bounds.Min != nil && n < *bounds.Min {
		return fmt.Sprintf(MsgBelowMin, formschema.FormatValue(*bounds.Min))
	}
	if bounds.Max != nil && n > *bounds.Max {
		return fmt.Sprintf(MsgAboveMax, formschema.FormatValue(*bounds.Max))
	}
	return ""
}

func checkChoices(f models.FieldSchema, value any) string {
	switch value.(type) {
	case []string, []any:
	default:
		return MsgInvalidChoice
	}
	for _, choice := range formschema.Strings(value) {
		if !slices.Contains(f.Options, choice) {
			return MsgInvalidChoice
		}
	}
	return ""
}

func checkFile(f models.FieldSchema, value any) string {
	var file models.FileValue
	switch v := value.(type) {
	case models.FileValue:
		file = v
	case map[string]any:
		file.Name, _ = v["name"].(string)
		size, _ := formschema.Number(v["size"])
		file.Size = int64(size)
	default:
		return MsgInvalidFile
	}
	if file.Name == "" || file.Size < 0 {
		return MsgInvalidFile
	}
	if formschema.CheckFileSize(f, file.Size) != nil {
		return fmt.Sprintf(MsgFileTooLarge, formschema.FormatValue(models.FileOf(f).MaxSizeMB))
	}
	if formschema.CheckFileType(f, file.Name) != nil {
		return MsgFileTypeDenied
	}
	return ""
}

func wholeNumber(value any) (int, bool) {
	n, ok := formschema.Number(value)
	if !ok || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(" +-().", r):
		default:
			return false
		}
	}
	return digits >= 5 && digits <= 15
}
