// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package export renders form submissions for use outside the dashboard:
// a CSV table and the iframe snippet that embeds a public form.
package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/models"
)

// ContentType is the media type of SubmissionsCSV output.
const ContentType = "text/csv; charset=utf-8"

var fixedHeader = []string{"Email", "Submitted", "Read"}

// SubmissionsCSV writes one header row and one row per submission. The fixed
// columns are the submitter email, the submission time in RFC 3339 and the
// read flag as Yes/No; then one column per non-layout field, in field order,
// headed by its label. Every cell is quoted and embedded quotes are doubled.
// Rows end with a bare newline.
func SubmissionsCSV(w io.Writer, fields []models.FieldSchema, submissions []models.FormSubmission) error {
	columns := valueFields(fields)

	bw := bufio.NewWriter(w)
	header := append([]string{}, fixedHeader...)
	for _, f := range columns {
		header = append(header, f.Label)
	}
	if err := writeRow(bw, header); err != nil {
		return err
	}

	for _, s := range submissions {
		row := []string{
			s.SubmitterEmail,
			s.CreatedAt.UTC().Format(time.RFC3339),
			yesNo(s.IsRead),
		}
		for _, f := range columns {
			row = append(row, formschema.FormatValue(s.Data[f.ID]))
		}
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SubmissionsCSVBytes is SubmissionsCSV into memory.
func SubmissionsCSVBytes(fields []models.FieldSchema, submissions []models.FormSubmission) ([]byte, error) {
	var buf bytes.Buffer
	if err := SubmissionsCSV(&buf, fields, submissions); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the download name of a form's export.
func FileName(slug string) string {
	if slug == "" {
		slug = "form"
	}
	return slug + "-submissions.csv"
}

// Quote wraps s in double quotes, doubling any quote inside.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(w *bufio.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if _, err := w.WriteString(Quote(cell)); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func valueFields(fields []models.FieldSchema) []models.FieldSchema {
	out := make([]models.FieldSchema, 0, len(fields))
	for _, f := range fields {
		if !f.Type.IsLayout() {
			out = append(out, f)
		}
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
