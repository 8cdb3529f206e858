// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/formdesk/models"
)

func builderForm() models.Form {
	return models.Form{
		ID:   "f1",
		Slug: "contact",
		FormSchema: models.FormSchema{
			Title:  "Contact",
			Status: models.StatusDraft,
			Fields: []models.FieldSchema{
				{ID: "plan", Type: models.FieldSelect, Label: "Plan", Options: []string{"Free", "Pro"}},
				{ID: "email", Type: models.FieldEmail, Label: "Email"},
				{ID: "company", Type: models.FieldText, Label: "Company"},
			},
			ConditionalRules: []models.ConditionalRule{
				{FieldID: "plan", Operator: models.OpEquals, Value: "Pro", TargetFieldID: "company", Action: models.ActionShow},
			},
			LeadFieldMapping: models.LeadFieldMapping{models.CRMEmail: "email", models.CRMCompany: "company"},
		},
	}
}

func fieldOrder(s *builderScreen) []string {
	return fieldIDs(s.session.Fields())
}

// ─────────────────────────────────────────────
// field list
// ─────────────────────────────────────────────

func TestBuilder_AddField(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	s.Update(runes("n"))
	require.True(t, s.picking)
	s.Update(special(tea.KeyDown))
	s.Update(special(tea.KeyEnter))

	fields := s.session.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, models.AllFieldTypes[1], fields[3].Type)
	assert.False(t, s.picking)
	assert.True(t, s.dirty)
}

func TestBuilder_MoveField(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	s.Update(runes("J"))
	assert.Equal(t, []string{"email", "plan", "company"}, fieldOrder(s))
	assert.Equal(t, 1, s.session.Selected(), "selection follows the moved field")

	s.Update(runes("K"))
	assert.Equal(t, []string{"plan", "email", "company"}, fieldOrder(s))
}

func TestBuilder_DeleteFieldPrunesReferences(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	s.Update(runes("j"))
	s.Update(runes("j"))
	s.Update(runes("d"))
	require.NotNil(t, s.confirm)
	s.Update(runes("y"))

	assert.Equal(t, []string{"plan", "email"}, fieldOrder(s))
	assert.Empty(t, s.form.ConditionalRules)
	assert.Equal(t, models.LeadFieldMapping{models.CRMEmail: "email"}, s.form.LeadFieldMapping)
	assert.Equal(t, 1, s.session.Selected())
}

func TestPruneReferences_KeepsUnrelated(t *testing.T) {
	form := builderForm()
	pruneReferences(&form.FormSchema, "email")

	assert.Len(t, form.ConditionalRules, 1)
	assert.Equal(t, models.LeadFieldMapping{models.CRMCompany: "company"}, form.LeadFieldMapping)
}

// ─────────────────────────────────────────────
// settings and rules
// ─────────────────────────────────────────────

func TestBuilder_SettingsToggleAndMapping(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	s.Update(runes("g"))
	require.Equal(t, paneSettings, s.pane)

	for i, row := range settingRows {
		if row.label == "Progress bar" {
			s.rowIdx = i
		}
	}
	s.Update(runes(" "))
	assert.True(t, s.form.Settings.ShowProgressBar)

	for i, row := range settingRows {
		if row.kind == rowMapping && row.attr == models.CRMName {
			s.rowIdx = i
		}
	}
	s.Update(special(tea.KeyEnter))
	assert.Equal(t, "plan", s.form.LeadFieldMapping[models.CRMName])
	s.Update(special(tea.KeyEnter))
	assert.Equal(t, "email", s.form.LeadFieldMapping[models.CRMName])

	s.Update(special(tea.KeyEsc))
	assert.Equal(t, paneFields, s.pane)
}

func TestBuilder_AddAndDeleteRule(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	s.Update(runes("R"))
	s.Update(runes("n"))
	require.Len(t, s.form.ConditionalRules, 2)
	added := s.form.ConditionalRules[1]
	assert.Equal(t, "plan", added.FieldID)
	assert.NotEqual(t, added.FieldID, added.TargetFieldID)

	s.Update(runes("d"))
	assert.Len(t, s.form.ConditionalRules, 1)
}

func TestBuilder_RuleValuePromptForCheckbox(t *testing.T) {
	e, _ := newTestEnv(t)
	form := builderForm()
	form.Fields = append(form.Fields, models.FieldSchema{ID: "agree", Type: models.FieldCheckbox, Label: "Agree"})
	s := newBuilderScreen(e, form)

	assert.Equal(t, "Rule value (true or false)", s.ruleValuePrompt("agree"))
	assert.Equal(t, "Rule value", s.ruleValuePrompt("plan"))
	assert.Equal(t, "Rule value", s.ruleValuePrompt("missing"))
}

// ─────────────────────────────────────────────
// save and leave
// ─────────────────────────────────────────────

func TestBuilder_Save(t *testing.T) {
	e, a := newTestEnv(t)
	a.EXPECT().ListForms(gomock.Any()).Return([]models.Form{builderForm()}, nil)
	require.NoError(t, e.board.LoadForms(e.ctx))

	s := newBuilderScreen(e, builderForm())
	s.Update(runes("J"))

	a.EXPECT().UpdateForm(gomock.Any(), "f1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch models.FormPatch) (models.Form, error) {
			require.NotNil(t, patch.Fields)
			saved := builderForm()
			saved.Fields = *patch.Fields
			return saved, nil
		})

	_, cmd := s.Update(special(tea.KeyCtrlS))
	require.True(t, s.saving)
	s.Update(run(cmd))

	assert.False(t, s.saving)
	assert.False(t, s.dirty)
	assert.Equal(t, "Saved", s.notice)
	saved, _ := e.board.Form("f1")
	assert.Equal(t, "email", saved.Fields[0].ID)
}

func TestBuilder_EscWithChangesAsks(t *testing.T) {
	e, _ := newTestEnv(t)
	s := newBuilderScreen(e, builderForm())

	_, cmd := s.Update(special(tea.KeyEsc))
	assert.IsType(t, popScreen{}, run(cmd), "nothing to lose")

	s.Update(runes("J"))
	_, cmd = s.Update(special(tea.KeyEsc))
	assert.Nil(t, cmd)
	require.NotNil(t, s.confirm)

	_, cmd = s.Update(runes("y"))
	assert.IsType(t, popScreen{}, run(cmd))
}
