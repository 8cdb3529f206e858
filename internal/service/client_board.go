// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/formdesk/internal/adapter"
	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

// pendingPrefix marks placeholder ids of rows the server has not created yet.
const pendingPrefix = "pending-"

// IsPending reports whether id belongs to an unconfirmed placeholder row.
func IsPending(id string) bool {
	return strings.HasPrefix(id, pendingPrefix)
}

// Mutation is an optimistic change that is already visible on the Board.
type Mutation struct {
	commit   func(ctx context.Context) error
	rollback func()
}

// Commit sends the change to the server. On failure the Board goes back to
// the state captured before the change and the error is returned.
func (m *Mutation) Commit(ctx context.Context) error {
	if err := m.commit(ctx); err != nil {
		m.rollback()
		return err
	}
	return nil
}

// Board is the client's copy of the operator's forms, submissions, leads,
// templates and counters. Reads return copies; mutations apply locally
// first and hand back a [Mutation] to commit.
type Board struct {
	adapter adapter.ServerAdapter
	ids     *utils.UUIDGenerator

	mu          sync.RWMutex
	forms       []models.Form
	submissions map[string]models.SubmissionsResponse
	leads       []models.Lead
	templates   []models.FormTemplate
	stats       models.DashboardStats

	logger *logger.Logger
}

func NewBoard(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *Board {
	return &Board{
		adapter:     serverAdapter,
		ids:         utils.NewUUIDGenerator(),
		submissions: map[string]models.SubmissionsResponse{},
		logger:      logger,
	}
}

// Reset drops everything, used on logout.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forms, b.leads, b.templates = nil, nil, nil
	b.submissions = map[string]models.SubmissionsResponse{}
	b.stats = models.DashboardStats{}
}

// ─────────────────────────────────────────────
// loading
// ─────────────────────────────────────────────

func (b *Board) LoadForms(ctx context.Context) error {
	forms, err := b.adapter.ListForms(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.forms = forms
	b.mu.Unlock()
	return nil
}

func (b *Board) LoadSubmissions(ctx context.Context, formID string) error {
	resp, err := b.adapter.ListSubmissions(ctx, formID)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.submissions[formID] = resp
	b.mu.Unlock()
	return nil
}

func (b *Board) LoadLeads(ctx context.Context) error {
	leads, err := b.adapter.ListLeads(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.leads = leads
	b.mu.Unlock()
	return nil
}

func (b *Board) LoadTemplates(ctx context.Context) error {
	templates, err := b.adapter.ListTemplates(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.templates = templates
	b.mu.Unlock()
	return nil
}

func (b *Board) LoadDashboard(ctx context.Context) error {
	stats, err := b.adapter.Dashboard(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.stats = stats
	b.mu.Unlock()
	return nil
}

// ─────────────────────────────────────────────
// reads
// ─────────────────────────────────────────────

func (b *Board) Forms() []models.Form {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.forms)
}

// Form returns the loaded form with id, its schema deep-copied so the
// builder can edit it freely.
func (b *Board) Form(id string) (models.Form, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.formIndex(id)
	if i < 0 {
		return models.Form{}, false
	}
	f := b.forms[i]
	f.FormSchema = f.FormSchema.Clone()
	return f, true
}

func (b *Board) Submissions(formID string) (models.SubmissionsResponse, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	resp, ok := b.submissions[formID]
	resp.Submissions = slices.Clone(resp.Submissions)
	return resp, ok
}

func (b *Board) Leads() []models.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.leads)
}

// Pipeline groups the loaded leads by status, one column per pipeline
// status in order.
func (b *Board) Pipeline() map[models.LeadStatus][]models.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[models.LeadStatus][]models.Lead, len(models.PipelineStatuses))
	for _, s := range models.PipelineStatuses {
		out[s] = nil
	}
	for _, l := range b.leads {
		out[l.Status] = append(out[l.Status], l)
	}
	return out
}

func (b *Board) Templates() []models.FormTemplate {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.templates)
}

func (b *Board) Stats() models.DashboardStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

// ─────────────────────────────────────────────
// non-optimistic calls
// ─────────────────────────────────────────────

// CreateForm waits for the server because the new form's id and slug are
// needed before the builder can open it.
func (b *Board) CreateForm(ctx context.Context, schema models.FormSchema) (models.Form, error) {
	form, err := b.adapter.CreateForm(ctx, schema)
	if err != nil {
		return models.Form{}, err
	}
	b.mu.Lock()
	b.forms = append([]models.Form{form}, b.forms...)
	b.mu.Unlock()
	return form, nil
}

func (b *Board) UseTemplate(ctx context.Context, templateID string) (models.Form, error) {
	form, err := b.adapter.UseTemplate(ctx, templateID)
	if err != nil {
		return models.Form{}, err
	}
	b.mu.Lock()
	b.forms = append([]models.Form{form}, b.forms...)
	b.mu.Unlock()
	return form, nil
}

func (b *Board) Embed(ctx context.Context, formID string) (models.EmbedResponse, error) {
	return b.adapter.Embed(ctx, formID)
}

func (b *Board) ExportSubmissions(ctx context.Context, formID string) (string, []byte, error) {
	return b.adapter.ExportSubmissions(ctx, formID)
}

// PublicForm loads the form a respondent sees at slug.
func (b *Board) PublicForm(ctx context.Context, slug string) (models.Form, error) {
	return b.adapter.GetPublicForm(ctx, slug)
}

// Submit sends a filled form. A form owned by the operator gets its
// submission counter bumped locally so the list does not need a reload.
func (b *Board) Submit(ctx context.Context, slug string, req models.SubmitRequest) (models.SubmitResponse, error) {
	resp, err := b.adapter.Submit(ctx, slug, req)
	if err != nil {
		return models.SubmitResponse{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.IndexFunc(b.forms, func(f models.Form) bool { return f.Slug == slug }); i >= 0 {
		b.forms = slices.Clone(b.forms)
		b.forms[i].SubmissionsCount++
	}
	return resp, nil
}

// ─────────────────────────────────────────────
// form mutations
// ─────────────────────────────────────────────

// SetFormStatus publishes, closes, archives or re-drafts a form.
func (b *Board) SetFormStatus(id string, status models.FormStatus) (*Mutation, error) {
	return b.mutateForm(id, func(f *models.Form) { f.Status = status }, func(ctx context.Context) (models.Form, error) {
		return b.adapter.UpdateForm(ctx, id, models.FormPatch{Status: &status})
	})
}

// SaveForm stores the builder's edited copy of a form.
func (b *Board) SaveForm(form models.Form) (*Mutation, error) {
	schema := form.FormSchema.Clone()
	return b.mutateForm(form.ID, func(f *models.Form) { f.FormSchema = schema }, func(ctx context.Context) (models.Form, error) {
		return b.adapter.UpdateForm(ctx, form.ID, models.PatchFrom(schema))
	})
}

func (b *Board) mutateForm(id string, apply func(*models.Form), send func(context.Context) (models.Form, error)) (*Mutation, error) {
	if IsPending(id) {
		return nil, ErrPendingItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.formIndex(id)
	if i < 0 {
		return nil, ErrNotOnBoard
	}
	snapshot := slices.Clone(b.forms)
	apply(&b.forms[i])

	return &Mutation{
		commit: func(ctx context.Context) error {
			saved, err := send(ctx)
			if err != nil {
				return err
			}
			b.replaceForm(id, saved)
			return nil
		},
		rollback: b.restoreForms(snapshot),
	}, nil
}

func (b *Board) DeleteForm(id string) (*Mutation, error) {
	if IsPending(id) {
		return nil, ErrPendingItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.formIndex(id)
	if i < 0 {
		return nil, ErrNotOnBoard
	}
	snapshot := slices.Clone(b.forms)
	b.forms = slices.Delete(slices.Clone(b.forms), i, i+1)

	return &Mutation{
		commit: func(ctx context.Context) error {
			if err := b.adapter.DeleteForm(ctx, id); err != nil {
				return err
			}
			b.mu.Lock()
			delete(b.submissions, id)
			b.mu.Unlock()
			return nil
		},
		rollback: b.restoreForms(snapshot),
	}, nil
}

// DuplicateForm shows a draft copy right below the source at once; the
// server's copy replaces the placeholder when it arrives.
func (b *Board) DuplicateForm(id string) (*Mutation, error) {
	if IsPending(id) {
		return nil, ErrPendingItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.formIndex(id)
	if i < 0 {
		return nil, ErrNotOnBoard
	}
	snapshot := slices.Clone(b.forms)

	placeholder := b.forms[i]
	placeholder.ID = pendingPrefix + b.ids.Generate()
	placeholder.Slug = ""
	placeholder.SubmissionsCount = 0
	placeholder.FormSchema = formschema.RegenerateSchemaIDs(placeholder.FormSchema)
	placeholder.Title += copySuffix
	placeholder.Status = models.StatusDraft
	b.forms = slices.Insert(slices.Clone(b.forms), i+1, placeholder)

	return &Mutation{
		commit: func(ctx context.Context) error {
			dup, err := b.adapter.DuplicateForm(ctx, id)
			if err != nil {
				return err
			}
			b.replaceForm(placeholder.ID, dup)
			return nil
		},
		rollback: b.restoreForms(snapshot),
	}, nil
}

// ─────────────────────────────────────────────
// submission mutations
// ─────────────────────────────────────────────

// MarkRead latches a submission as read; an already read one yields a
// no-op mutation.
func (b *Board) MarkRead(formID, id string) (*Mutation, error) {
	return b.mutateSubmissions(formID, id, func(resp *models.SubmissionsResponse, i int) bool {
		if resp.Submissions[i].IsRead {
			return false
		}
		resp.Submissions[i].IsRead = true
		return true
	}, func(ctx context.Context) error {
		return b.adapter.MarkSubmissionRead(ctx, formID, id)
	})
}

func (b *Board) DeleteSubmission(formID, id string) (*Mutation, error) {
	return b.mutateSubmissions(formID, id, func(resp *models.SubmissionsResponse, i int) bool {
		resp.Submissions = slices.Delete(resp.Submissions, i, i+1)
		return true
	}, func(ctx context.Context) error {
		return b.adapter.DeleteSubmission(ctx, formID, id)
	})
}

func (b *Board) mutateSubmissions(
	formID, id string,
	apply func(*models.SubmissionsResponse, int) bool,
	send func(context.Context) error,
) (*Mutation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	resp, ok := b.submissions[formID]
	if !ok {
		return nil, ErrNotOnBoard
	}
	i := slices.IndexFunc(resp.Submissions, func(s models.FormSubmission) bool { return s.ID == id })
	if i < 0 {
		return nil, ErrNotOnBoard
	}

	snapshot := resp
	updated := resp
	updated.Submissions = slices.Clone(resp.Submissions)
	if !apply(&updated, i) {
		return noopMutation(), nil
	}
	b.submissions[formID] = updated

	return &Mutation{
		commit: send,
		rollback: func() {
			b.mu.Lock()
			b.submissions[formID] = snapshot
			b.mu.Unlock()
		},
	}, nil
}

// ─────────────────────────────────────────────
// lead mutations
// ─────────────────────────────────────────────

// MoveLead moves a lead to another pipeline column.
func (b *Board) MoveLead(id string, status models.LeadStatus) (*Mutation, error) {
	if IsPending(id) {
		return nil, ErrPendingItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.leadIndex(id)
	if i < 0 {
		return nil, ErrNotOnBoard
	}
	if b.leads[i].Status == status {
		return noopMutation(), nil
	}
	snapshot := slices.Clone(b.leads)
	b.leads = slices.Clone(b.leads)
	b.leads[i].Status = status

	return &Mutation{
		commit: func(ctx context.Context) error {
			saved, err := b.adapter.UpdateLeadStatus(ctx, id, status)
			if err != nil {
				return err
			}
			b.replaceLead(id, saved)
			return nil
		},
		rollback: b.restoreLeads(snapshot),
	}, nil
}

func (b *Board) DeleteLead(id string) (*Mutation, error) {
	if IsPending(id) {
		return nil, ErrPendingItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.leadIndex(id)
	if i < 0 {
		return nil, ErrNotOnBoard
	}
	snapshot := slices.Clone(b.leads)
	b.leads = slices.Delete(slices.Clone(b.leads), i, i+1)

	return &Mutation{
		commit: func(ctx context.Context) error {
			return b.adapter.DeleteLead(ctx, id)
		},
		rollback: b.restoreLeads(snapshot),
	}, nil
}

// CreateLead shows the new lead in its column at once under a placeholder
// id.
func (b *Board) CreateLead(lead models.Lead) *Mutation {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := slices.Clone(b.leads)
	placeholder := lead
	placeholder.ID = pendingPrefix + b.ids.Generate()
	if placeholder.Status == "" {
		placeholder.Status = models.LeadNew
	}
	b.leads = append(slices.Clone(b.leads), placeholder)

	return &Mutation{
		commit: func(ctx context.Context) error {
			saved, err := b.adapter.CreateLead(ctx, lead)
			if err != nil {
				return err
			}
			b.replaceLead(placeholder.ID, saved)
			return nil
		},
		rollback: b.restoreLeads(snapshot),
	}
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

func noopMutation() *Mutation {
	return &Mutation{
		commit:   func(context.Context) error { return nil },
		rollback: func() {},
	}
}

// formIndex expects b.mu to be held.
func (b *Board) formIndex(id string) int {
	return slices.IndexFunc(b.forms, func(f models.Form) bool { return f.ID == id })
}

// leadIndex expects b.mu to be held.
func (b *Board) leadIndex(id string) int {
	return slices.IndexFunc(b.leads, func(l models.Lead) bool { return l.ID == id })
}

func (b *Board) replaceForm(id string, form models.Form) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.formIndex(id); i >= 0 {
		b.forms = slices.Clone(b.forms)
		b.forms[i] = form
	}
}

func (b *Board) replaceLead(id string, lead models.Lead) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.leadIndex(id); i >= 0 {
		b.leads = slices.Clone(b.leads)
		b.leads[i] = lead
	}
}

func (b *Board) restoreForms(snapshot []models.Form) func() {
	return func() {
		b.mu.Lock()
		b.forms = snapshot
		b.mu.Unlock()
	}
}

func (b *Board) restoreLeads(snapshot []models.Lead) func() {
	return func() {
		b.mu.Lock()
		b.leads = snapshot
		b.mu.Unlock()
	}
}
