// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

const (
	builderLeftWidth  = 38
	builderRightWidth = 58
)

type builderPane int

const (
	paneFields builderPane = iota
	paneProps
	paneSettings
	paneRules
)

// builderScreen edits one form: the field list on the left, the property
// panel of the selected field, the form settings or the conditional rules
// on the right. Nothing reaches the server until ctrl+s.
type builderScreen struct {
	env *env

	form      models.Form
	session   *formschema.Session
	validator validators.Validator

	pane    builderPane
	propIdx int
	rowIdx  int
	ruleIdx int
	ruleCol int

	picking bool
	pickIdx int

	editing   bool
	multiline bool
	editLabel string
	input     textinput.Model
	area      textarea.Model
	apply     func(string) error

	dirty   bool
	saving  bool
	err     string
	notice  string
	confirm *confirmModel
}

func newBuilderScreen(e *env, form models.Form) *builderScreen {
	form.FormSchema = form.FormSchema.Clone()
	session := formschema.NewSession(form.Fields)
	session.Select(0)

	return &builderScreen{
		env:       e,
		form:      form,
		session:   session,
		validator: validators.NewFormValidator(),
	}
}

func (s *builderScreen) Init() tea.Cmd { return nil }

func (s *builderScreen) typing() bool { return s.editing }

// current is the form as edited so far.
func (s *builderScreen) current() models.Form {
	f := s.form
	f.FormSchema = f.FormSchema.Clone()
	f.Fields = slices.Clone(s.session.Fields())
	return f
}

func (s *builderScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationDoneMsg:
		if !s.saving {
			return s, nil
		}
		s.saving = false
		if msg.err != nil {
			s.err = errorText(msg.err)
			return s, nil
		}
		s.dirty = false
		s.notice = "Saved"
		if saved, ok := s.env.board.Form(s.form.ID); ok {
			s.form.Slug, s.form.UpdatedAt = saved.Slug, saved.UpdatedAt
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editing {
		return s, s.updateEditor(msg)
	}
	return s, nil
}

func (s *builderScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.confirm != nil {
		done, cmd := s.confirm.update(msg)
		if done {
			s.confirm = nil
		}
		return s, cmd
	}
	if s.editing {
		return s, s.handleEditKey(msg)
	}
	if s.picking {
		s.handlePickKey(msg)
		return s, nil
	}

	s.notice = ""
	switch {
	case key.Matches(msg, keys.esc):
		if s.pane != paneFields {
			s.pane = paneFields
			return s, nil
		}
		if s.dirty {
			s.confirm = newConfirm("Discard unsaved changes", func() tea.Cmd { return pop })
			return s, nil
		}
		return s, pop
	case key.Matches(msg, keys.save):
		return s, s.save()
	case key.Matches(msg, keys.tab):
		if s.pane == paneFields {
			s.pane = paneProps
		} else {
			s.pane = paneFields
		}
		return s, nil
	case key.Matches(msg, keys.settings):
		s.pane = paneSettings
		return s, nil
	case key.Matches(msg, keys.rules):
		s.pane = paneRules
		return s, nil
	case key.Matches(msg, keys.fill):
		return s, push(newPreviewScreen(s.env, s.current()))
	}

	switch s.pane {
	case paneProps:
		s.handlePropsKey(msg)
	case paneSettings:
		s.handleSettingsKey(msg)
	case paneRules:
		s.handleRulesKey(msg)
	default:
		return s, s.handleFieldsKey(msg)
	}
	return s, nil
}

func (s *builderScreen) save() tea.Cmd {
	if s.saving {
		return nil
	}
	form := s.current()
	if err := s.validator.Validate(s.env.ctx, form); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	s.saving = true
	mut, err := s.env.board.SaveForm(form)
	return s.env.commit(mut, err, fmt.Sprintf("%q saved", form.Title))
}

func (s *builderScreen) changed() {
	s.dirty = true
	s.err = ""
}

// ─────────────────────────────────────────────
// field list
// ─────────────────────────────────────────────

func (s *builderScreen) handleFieldsKey(msg tea.KeyMsg) tea.Cmd {
	sel := s.session.Selected()
	n := len(s.session.Fields())

	switch {
	case key.Matches(msg, keys.up):
		if sel > 0 {
			s.session.Select(sel - 1)
		}
	case key.Matches(msg, keys.down):
		if sel < n-1 {
			s.session.Select(sel + 1)
		}
	case key.Matches(msg, keys.moveUp):
		if sel > 0 {
			s.session.Move(sel, formschema.Up)
			s.changed()
		}
	case key.Matches(msg, keys.moveDown):
		if sel >= 0 && sel < n-1 {
			s.session.Move(sel, formschema.Down)
			s.changed()
		}
	case key.Matches(msg, keys.newItem):
		s.picking = true
	case key.Matches(msg, keys.enter):
		if sel >= 0 {
			s.pane = paneProps
			s.propIdx = 0
		}
	case key.Matches(msg, keys.delete):
		f, ok := s.session.SelectedField()
		if !ok {
			return nil
		}
		s.confirm = newConfirm(fmt.Sprintf("Remove field %q", f.Label), func() tea.Cmd {
			s.deleteField(sel, f.ID)
			return nil
		})
	}
	return nil
}

func (s *builderScreen) deleteField(index int, id string) {
	if err := s.session.Delete(index); err != nil {
		s.err = err.Error()
		return
	}
	pruneReferences(&s.form.FormSchema, id)
	s.session.Select(min(index, len(s.session.Fields())-1))
	s.changed()
}

// pruneReferences drops rules and lead mappings that point at a removed
// field.
func pruneReferences(schema *models.FormSchema, id string) {
	schema.ConditionalRules = slices.DeleteFunc(slices.Clone(schema.ConditionalRules), func(r models.ConditionalRule) bool {
		return r.FieldID == id || r.TargetFieldID == id
	})
	for attr, fieldID := range schema.LeadFieldMapping {
		if fieldID == id {
			delete(schema.LeadFieldMapping, attr)
		}
	}
}

func (s *builderScreen) handlePickKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.esc):
		s.picking = false
	case key.Matches(msg, keys.up):
		if s.pickIdx > 0 {
			s.pickIdx--
		}
	case key.Matches(msg, keys.down):
		if s.pickIdx < len(models.AllFieldTypes)-1 {
			s.pickIdx++
		}
	case key.Matches(msg, keys.enter):
		s.session.Add(models.AllFieldTypes[s.pickIdx])
		s.picking = false
		s.changed()
	}
}

// ─────────────────────────────────────────────
// property panel
// ─────────────────────────────────────────────

func (s *builderScreen) handlePropsKey(msg tea.KeyMsg) {
	f, ok := s.session.SelectedField()
	if !ok {
		s.pane = paneFields
		return
	}
	props := formschema.Properties(f.Type)
	s.propIdx = clampIndex(s.propIdx, len(props))
	p := props[s.propIdx]

	switch {
	case key.Matches(msg, keys.up):
		if s.propIdx > 0 {
			s.propIdx--
		}
	case key.Matches(msg, keys.down):
		if s.propIdx < len(props)-1 {
			s.propIdx++
		}
	case key.Matches(msg, keys.option):
		if formschema.HasProperty(f.Type, formschema.PropOptions) {
			s.updateField(formschema.AddOption(f))
		}
	case key.Matches(msg, keys.enter), key.Matches(msg, keys.space):
		switch p {
		case formschema.PropRequired:
			s.updateField(formschema.WithRequired(f, !f.Required))
		case formschema.PropWidth:
			width := models.WidthHalf
			if f.Width == models.WidthHalf {
				width = models.WidthFull
			}
			s.updateField(formschema.WithWidth(f, width))
		default:
			idx := s.session.Selected()
			s.startEdit(propertyLabel(p), formschema.Get(f, p), p == formschema.PropOptions, func(input string) error {
				current := s.session.Fields()[idx]
				updated, err := formschema.Set(current, p, input)
				if err != nil {
					return err
				}
				return s.session.Update(idx, updated)
			})
		}
	}
}

func (s *builderScreen) updateField(f models.FieldSchema) {
	if err := s.session.Update(s.session.Selected(), f); err != nil {
		s.err = err.Error()
		return
	}
	s.changed()
}

func propertyLabel(p formschema.Property) string {
	switch p {
	case formschema.PropAllowedTypes:
		return "Allowed types"
	case formschema.PropMaxSizeMB:
		return "Max size (MB)"
	case formschema.PropMaxStars:
		return "Stars"
	case formschema.PropScaleMin:
		return "Scale from"
	case formschema.PropScaleMax:
		return "Scale to"
	case formschema.PropLowLabel:
		return "Low label"
	case formschema.PropHighLabel:
		return "High label"
	}
	name := string(p)
	return strings.ToUpper(name[:1]) + name[1:]
}

// ─────────────────────────────────────────────
// form settings
// ─────────────────────────────────────────────

type rowKind int

const (
	rowText rowKind = iota
	rowToggle
	rowMapping
)

type settingRow struct {
	label string
	kind  rowKind
	get   func(*models.FormSchema) string
	set   func(*models.FormSchema, string)
	flip  func(*models.FormSchema)
	attr  models.CRMAttribute
}

func textRow(label string, field func(*models.FormSchema) *string) settingRow {
	return settingRow{
		label: label,
		kind:  rowText,
		get:   func(s *models.FormSchema) string { return *field(s) },
		set:   func(s *models.FormSchema, v string) { *field(s) = v },
	}
}

func toggleRow(label string, field func(*models.FormSchema) *bool) settingRow {
	return settingRow{
		label: label,
		kind:  rowToggle,
		get:   func(s *models.FormSchema) string { return checkbox(*field(s)) },
		flip:  func(s *models.FormSchema) { *field(s) = !*field(s) },
	}
}

func mappingRow(attr models.CRMAttribute) settingRow {
	return settingRow{label: "Lead " + string(attr), kind: rowMapping, attr: attr}
}

var settingRows = []settingRow{
	textRow("Title", func(s *models.FormSchema) *string { return &s.Title }),
	textRow("Description", func(s *models.FormSchema) *string { return &s.Description }),
	textRow("Submit button", func(s *models.FormSchema) *string { return &s.Settings.SubmitButtonText }),
	toggleRow("Progress bar", func(s *models.FormSchema) *bool { return &s.Settings.ShowProgressBar }),
	toggleRow("Multiple answers", func(s *models.FormSchema) *bool { return &s.Settings.AllowMultipleSubmissions }),
	textRow("Thank-you title", func(s *models.FormSchema) *string { return &s.ThankYouTitle }),
	textRow("Thank-you message", func(s *models.FormSchema) *string { return &s.ThankYouMessage }),
	textRow("Redirect URL", func(s *models.FormSchema) *string { return &s.ThankYouRedirectURL }),
	toggleRow("Create lead", func(s *models.FormSchema) *bool { return &s.AutoCreateLead }),
	toggleRow("Create contact", func(s *models.FormSchema) *bool { return &s.AutoCreateContact }),
	mappingRow(models.CRMName),
	mappingRow(models.CRMEmail),
	mappingRow(models.CRMPhone),
	mappingRow(models.CRMCompany),
}

func (s *builderScreen) handleSettingsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.up):
		if s.rowIdx > 0 {
			s.rowIdx--
		}
	case key.Matches(msg, keys.down):
		if s.rowIdx < len(settingRows)-1 {
			s.rowIdx++
		}
	case key.Matches(msg, keys.enter), key.Matches(msg, keys.space):
		row := settingRows[s.rowIdx]
		switch row.kind {
		case rowToggle:
			row.flip(&s.form.FormSchema)
			s.changed()
		case rowMapping:
			s.cycleMapping(row.attr)
		default:
			s.startEdit(row.label, row.get(&s.form.FormSchema), false, func(input string) error {
				row.set(&s.form.FormSchema, input)
				return nil
			})
		}
	}
}

// cycleMapping points a CRM attribute at the next answer field, wrapping
// through "not mapped".
func (s *builderScreen) cycleMapping(attr models.CRMAttribute) {
	ids := append([]string{""}, answerFieldIDs(s.session.Fields())...)
	current := s.form.LeadFieldMapping[attr]
	next := ids[(slices.Index(ids, current)+1)%len(ids)]

	if s.form.LeadFieldMapping == nil {
		s.form.LeadFieldMapping = models.LeadFieldMapping{}
	}
	if next == "" {
		delete(s.form.LeadFieldMapping, attr)
	} else {
		s.form.LeadFieldMapping[attr] = next
	}
	s.changed()
}

func answerFieldIDs(fields []models.FieldSchema) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Type.IsLayout() {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func fieldIDs(fields []models.FieldSchema) []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}

// ─────────────────────────────────────────────
// conditional rules
// ─────────────────────────────────────────────

const (
	ruleColSource = iota
	ruleColOperator
	ruleColValue
	ruleColTarget
	ruleColAction
	ruleCols
)

var ruleOperators = []models.RuleOperator{
	models.OpEquals, models.OpNotEquals, models.OpContains, models.OpNotEmpty, models.OpEmpty,
}

func (s *builderScreen) handleRulesKey(msg tea.KeyMsg) {
	rules := s.form.ConditionalRules

	switch {
	case key.Matches(msg, keys.up):
		if s.ruleIdx > 0 {
			s.ruleIdx--
		}
	case key.Matches(msg, keys.down):
		if s.ruleIdx < len(rules)-1 {
			s.ruleIdx++
		}
	case key.Matches(msg, keys.left):
		s.ruleCol = (s.ruleCol - 1 + ruleCols) % ruleCols
	case key.Matches(msg, keys.right):
		s.ruleCol = (s.ruleCol + 1) % ruleCols
	case key.Matches(msg, keys.newItem):
		s.addRule()
	case key.Matches(msg, keys.delete):
		if len(rules) > 0 {
			s.form.ConditionalRules = slices.Delete(slices.Clone(rules), s.ruleIdx, s.ruleIdx+1)
			s.ruleIdx = clampIndex(s.ruleIdx, len(s.form.ConditionalRules))
			s.changed()
		}
	case key.Matches(msg, keys.enter), key.Matches(msg, keys.space):
		if len(rules) > 0 {
			s.editRule(s.ruleIdx)
		}
	}
}

func (s *builderScreen) addRule() {
	fields := s.session.Fields()
	sources := answerFieldIDs(fields)
	if len(sources) == 0 || len(fields) < 2 {
		s.err = "Add at least two fields before adding rules"
		return
	}
	target := ""
	for _, id := range fieldIDs(fields) {
		if id != sources[0] {
			target = id
			break
		}
	}

	s.form.ConditionalRules = append(slices.Clone(s.form.ConditionalRules), models.ConditionalRule{
		FieldID:       sources[0],
		Operator:      models.OpEquals,
		TargetFieldID: target,
		Action:        models.ActionShow,
	})
	s.ruleIdx = len(s.form.ConditionalRules) - 1
	s.ruleCol = ruleColSource
	s.changed()
}

func (s *builderScreen) editRule(i int) {
	rules := slices.Clone(s.form.ConditionalRules)
	rule := &rules[i]
	fields := s.session.Fields()

	switch s.ruleCol {
	case ruleColSource:
		rule.FieldID = nextOf(answerFieldIDs(fields), rule.FieldID)
	case ruleColOperator:
		rule.Operator = nextOf(ruleOperators, rule.Operator)
	case ruleColTarget:
		targets := slices.DeleteFunc(fieldIDs(fields), func(id string) bool { return id == rule.FieldID })
		rule.TargetFieldID = nextOf(targets, rule.TargetFieldID)
	case ruleColAction:
		if rule.Action == models.ActionShow {
			rule.Action = models.ActionHide
		} else {
			rule.Action = models.ActionShow
		}
	case ruleColValue:
		s.startEdit(s.ruleValuePrompt(rule.FieldID), rule.Value, false, func(input string) error {
			rules := slices.Clone(s.form.ConditionalRules)
			rules[i].Value = input
			s.form.ConditionalRules = rules
			return nil
		})
		return
	}
	s.form.ConditionalRules = rules
	s.changed()
}

// ruleValuePrompt names the accepted values when the source is a single
// checkbox, whose answer compares as "true" or "false".
func (s *builderScreen) ruleValuePrompt(sourceID string) string {
	i := slices.IndexFunc(s.form.Fields, func(f models.FieldSchema) bool { return f.ID == sourceID })
	if i >= 0 && s.form.Fields[i].Type == models.FieldCheckbox && !formschema.CheckboxIsGroup(s.form.Fields[i]) {
		return "Rule value (true or false)"
	}
	return "Rule value"
}

// nextOf returns the element after current, wrapping around. An unknown
// current yields the first element.
func nextOf[T comparable](items []T, current T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[(slices.Index(items, current)+1)%len(items)]
}

// ─────────────────────────────────────────────
// text editor
// ─────────────────────────────────────────────

func (s *builderScreen) startEdit(label, value string, multiline bool, apply func(string) error) {
	s.editing = true
	s.multiline = multiline
	s.editLabel = label
	s.apply = apply
	s.err = ""

	if multiline {
		s.area = textarea.New()
		s.area.SetWidth(builderRightWidth)
		s.area.SetHeight(6)
		s.area.ShowLineNumbers = false
		s.area.SetValue(value)
		s.area.Focus()
		return
	}
	s.input = textinput.New()
	s.input.Width = builderRightWidth - 4
	s.input.SetValue(value)
	s.input.CursorEnd()
	s.input.Focus()
}

func (s *builderScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.esc):
		s.editing = false
		s.err = ""
		return nil
	case s.multiline && key.Matches(msg, keys.save), !s.multiline && key.Matches(msg, keys.enter):
		value := s.input.Value()
		if s.multiline {
			value = s.area.Value()
		}
		if err := s.apply(value); err != nil {
			s.err = err.Error()
			return nil
		}
		s.editing = false
		s.changed()
		return nil
	}
	return s.updateEditor(msg)
}

func (s *builderScreen) updateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.multiline {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return cmd
}

// ─────────────────────────────────────────────
// view
// ─────────────────────────────────────────────

func (s *builderScreen) View() string {
	if s.confirm != nil {
		return s.confirm.View()
	}

	left := panelStyle.Width(builderLeftWidth).Render(s.fieldsView())

	var right string
	switch {
	case s.picking:
		right = s.pickerView()
	case s.pane == paneSettings:
		right = s.settingsView()
	case s.pane == paneRules:
		right = s.rulesView()
	default:
		right = s.propsView()
	}
	right = panelStyle.Width(builderRightWidth).Render(right)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Status: %s   Address: /form/%s", s.form.Status, valueOrDash(s.form.Slug)))
	if s.dirty {
		b.WriteString("   " + unreadStyle.Render("● unsaved"))
	}
	if s.saving {
		b.WriteString("   saving...")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	if s.editing {
		b.WriteString("\n")
		b.WriteString(s.editLabel)
		b.WriteString(":\n")
		if s.multiline {
			b.WriteString(s.area.View())
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("one option per line │ ctrl+s: apply │ esc: cancel"))
		} else {
			b.WriteString("[" + s.input.View() + "]\n")
			b.WriteString(helpStyle.Render("enter: apply │ esc: cancel"))
		}
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n" + okStyle.Render(s.notice) + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+s.err) + "\n")
	}

	return renderPage("BUILDER · "+s.form.Title, strings.TrimRight(b.String(), "\n"), s.hotKeys())
}

func (s *builderScreen) hotKeys() string {
	common := "ctrl+s: save │ f: preview │ g: settings │ R: rules │ esc: back"
	switch {
	case s.editing:
		return ""
	case s.picking:
		return "enter: add field │ esc: cancel"
	case s.pane == paneProps:
		return "enter: edit/toggle │ +: add option │ tab: fields │ " + common
	case s.pane == paneSettings:
		return "enter: edit/toggle/cycle │ " + common
	case s.pane == paneRules:
		return "n: new rule │ d: delete rule │ ←/→: column │ enter: change │ " + common
	}
	return "n: add field │ d: remove │ K/J: move │ enter/tab: properties │ " + common
}

func (s *builderScreen) fieldsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fields"))
	b.WriteString("\n")

	fields := s.session.Fields()
	if len(fields) == 0 {
		b.WriteString(helpStyle.Render("No fields. Press n to add one."))
		return b.String()
	}

	sel := s.session.Selected()
	for i, f := range fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if f.Width == models.WidthHalf {
			label += " ½"
		}
		row := fmt.Sprintf("%s %2d %-15s %s", cursor(i == sel), i+1, "["+string(f.Type)+"]", label)
		row = fitText(row, builderLeftWidth)
		if i == sel {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *builderScreen) pickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add field"))
	b.WriteString("\n")
	for i, t := range models.AllFieldTypes {
		row := fmt.Sprintf("%s %-16s %s", cursor(i == s.pickIdx), t, helpStyle.Render(formschema.DefaultLabel(t)))
		if i == s.pickIdx {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *builderScreen) propsView() string {
	f, ok := s.session.SelectedField()
	if !ok {
		return helpStyle.Render("Select a field to edit its properties.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Field · %s", f.Type)))
	b.WriteString("\n")

	for i, p := range formschema.Properties(f.Type) {
		value := formschema.Get(f, p)
		if p == formschema.PropOptions {
			value = strings.Join(f.Options, ", ")
		}
		row := fmt.Sprintf("%s %s │ %s", cursor(s.pane == paneProps && i == s.propIdx), padRight(propertyLabel(p), 14), valueOrDash(value))
		row = fitText(row, builderRightWidth)
		if s.pane == paneProps && i == s.propIdx {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *builderScreen) settingsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Form settings"))
	b.WriteString("\n")

	for i, row := range settingRows {
		var value string
		if row.kind == rowMapping {
			value = s.fieldLabel(s.form.LeadFieldMapping[row.attr])
		} else {
			value = row.get(&s.form.FormSchema)
		}
		line := fitText(fmt.Sprintf("%s %s │ %s", cursor(i == s.rowIdx), padRight(row.label, 18), valueOrDash(value)), builderRightWidth)
		if i == s.rowIdx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *builderScreen) rulesView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conditional rules"))
	b.WriteString("\n")

	rules := s.form.ConditionalRules
	if len(rules) == 0 {
		b.WriteString(helpStyle.Render("No rules. Press n to add one."))
		return b.String()
	}

	for i, r := range rules {
		cells := []string{
			fitText(s.fieldLabel(r.FieldID), 12),
			string(r.Operator),
			strconv.Quote(fitText(r.Value, 10)),
			string(r.Action),
			fitText(s.fieldLabel(r.TargetFieldID), 12),
		}
		// display order: source operator value → action target
		order := []int{ruleColSource, ruleColOperator, ruleColValue, ruleColAction, ruleColTarget}
		parts := make([]string, len(order))
		for j, col := range order {
			cell := cells[j]
			if i == s.ruleIdx && col == s.ruleCol {
				cell = selectedStyle.Render("‹" + cell + "›")
			}
			parts[j] = cell
		}
		b.WriteString(fmt.Sprintf("%s if %s %s %s → %s %s\n", cursor(i == s.ruleIdx), parts[0], parts[1], parts[2], parts[3], parts[4]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *builderScreen) fieldLabel(id string) string {
	if id == "" {
		return ""
	}
	for _, f := range s.session.Fields() {
		if f.ID == id {
			return f.Label
		}
	}
	return "?" + id
}
