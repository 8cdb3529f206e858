// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/formdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submittedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestSubmissionsCSV_Basic(t *testing.T) {
	fields := []models.FieldSchema{{ID: "f1", Label: "Name", Type: models.FieldText}}
	subs := []models.FormSubmission{{
		Data:           models.SubmissionData{"f1": "a"},
		SubmitterEmail: "x@y.com",
		CreatedAt:      submittedAt,
		IsRead:         true,
	}}

	out, err := SubmissionsCSVBytes(fields, subs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Email","Submitted","Read","Name"`, lines[0])
	assert.Equal(t, `"x@y.com","2026-03-14T09:26:53Z","Yes","a"`, lines[1])
}

func TestSubmissionsCSV_ValuesAndLayout(t *testing.T) {
	fields := []models.FieldSchema{
		{ID: "h", Label: "About you", Type: models.FieldSectionHeading},
		{ID: "quote", Label: `Say "something"`, Type: models.FieldTextarea},
		{ID: "tags", Label: "Tags", Type: models.FieldMultiSelect},
		{ID: "score", Label: "Score", Type: models.FieldNPS},
		{ID: "missing", Label: "Missing", Type: models.FieldText},
	}
	subs := []models.FormSubmission{{
		Data: models.SubmissionData{
			"quote": `He said "hi"`,
			"tags":  []any{"a", "b"},
			"score": float64(9),
		},
		CreatedAt: submittedAt,
	}}

	out, err := SubmissionsCSVBytes(fields, subs)
	require.NoError(t, err)

	assert.Equal(t,
		`"Email","Submitted","Read","Say ""something""","Tags","Score","Missing"`+"\n"+
			`"","2026-03-14T09:26:53Z","No","He said ""hi""","a, b","9",""`+"\n",
		string(out))
}

func TestSubmissionsCSV_NoSubmissions(t *testing.T) {
	out, err := SubmissionsCSVBytes(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `"Email","Submitted","Read"`+"\n", string(out))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSubmissionsCSV_WriteError(t *testing.T) {
	err := SubmissionsCSV(failingWriter{}, nil, nil)
	require.Error(t, err)
}

func TestEmbedCode(t *testing.T) {
	assert.Equal(t,
		`<iframe src="https://crm.example.com/form/contact-us-x1y2" width="100%" height="600" frameborder="0" style="border:none;"></iframe>`,
		EmbedCode("https://crm.example.com/", "contact-us-x1y2"))
	assert.Equal(t, "contact-submissions.csv", FileName("contact"))
	assert.Equal(t, "form-submissions.csv", FileName(""))
}
