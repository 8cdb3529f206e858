// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/formdesk/internal/app"
	"github.com/MKhiriev/formdesk/internal/config"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/models"
)

const defaultExportName = "submissions.csv"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of
// [ServerAdapter]. The base URL comes from adapterCfg.HTTPAddress; reads
// are retried RetryCount times with RetryWait between attempts.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient().WithRetry(utils.RetryPolicy{
		Count: adapterCfg.RetryCount,
		Wait:  adapterCfg.RetryWait,
	})
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ─────────────────────────────────────────────
// auth and version
// ─────────────────────────────────────────────

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) error {
	return h.authenticate(ctx, "/api/auth/register", user, app.FallbackRegister)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) error {
	return h.authenticate(ctx, "/api/auth/login", user, app.FallbackLogin)
}

// authenticate posts credentials and keeps the token from the Authorization
// header, or from the JSON body when the header is missing.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User, fallback string) error {
	var body models.AuthResponse
	resp, err := h.do(ctx, http.MethodPost, path, user, &body, fallback, false)
	if err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		if body.Token == "" {
			return fmt.Errorf("parse bearer token: %w", err)
		}
		token = body.Token
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.do(ctx, http.MethodGet, "/api/version/", nil, nil, app.FallbackVersion, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

// ─────────────────────────────────────────────
// forms
// ─────────────────────────────────────────────

func (h *httpServerAdapter) ListForms(ctx context.Context) ([]models.Form, error) {
	var out models.FormsResponse
	if _, err := h.do(ctx, http.MethodGet, "/api/forms", nil, &out, app.FallbackLoadForms, true); err != nil {
		return nil, err
	}
	return out.Forms, nil
}

func (h *httpServerAdapter) GetForm(ctx context.Context, id string) (models.Form, error) {
	return h.formCall(ctx, http.MethodGet, "/api/forms/"+url.PathEscape(id), nil, app.FallbackLoadForm)
}

func (h *httpServerAdapter) CreateForm(ctx context.Context, schema models.FormSchema) (models.Form, error) {
	return h.formCall(ctx, http.MethodPost, "/api/forms", schema, app.FallbackCreateForm)
}

func (h *httpServerAdapter) UpdateForm(ctx context.Context, id string, patch models.FormPatch) (models.Form, error) {
	return h.formCall(ctx, http.MethodPut, "/api/forms/"+url.PathEscape(id), patch, app.FallbackSaveForm)
}

func (h *httpServerAdapter) DeleteForm(ctx context.Context, id string) error {
	_, err := h.do(ctx, http.MethodDelete, "/api/forms/"+url.PathEscape(id), nil, nil, app.FallbackDeleteForm, true)
	return err
}

func (h *httpServerAdapter) DuplicateForm(ctx context.Context, id string) (models.Form, error) {
	return h.formCall(ctx, http.MethodPost, "/api/forms/"+url.PathEscape(id)+"/duplicate", nil, app.FallbackDuplicateForm)
}

func (h *httpServerAdapter) Embed(ctx context.Context, id string) (models.EmbedResponse, error) {
	var out models.EmbedResponse
	_, err := h.do(ctx, http.MethodGet, "/api/forms/"+url.PathEscape(id)+"/embed", nil, &out, app.FallbackEmbed, true)
	return out, err
}

func (h *httpServerAdapter) formCall(ctx context.Context, method, path string, body any, fallback string) (models.Form, error) {
	var out models.FormResponse
	if _, err := h.do(ctx, method, path, body, &out, fallback, true); err != nil {
		return models.Form{}, err
	}
	return out.Form, nil
}

// ─────────────────────────────────────────────
// submissions
// ─────────────────────────────────────────────

func submissionsPath(formID string) string {
	return "/api/forms/" + url.PathEscape(formID) + "/submissions"
}

func (h *httpServerAdapter) ListSubmissions(ctx context.Context, formID string) (models.SubmissionsResponse, error) {
	var out models.SubmissionsResponse
	_, err := h.do(ctx, http.MethodGet, submissionsPath(formID), nil, &out, app.FallbackLoadSubmissions, true)
	return out, err
}

func (h *httpServerAdapter) MarkSubmissionRead(ctx context.Context, formID, id string) error {
	body := map[string]bool{"is_read": true}
	_, err := h.do(ctx, http.MethodPut, submissionsPath(formID)+"/"+url.PathEscape(id), body, nil, app.FallbackMarkRead, true)
	return err
}

func (h *httpServerAdapter) DeleteSubmission(ctx context.Context, formID, id string) error {
	_, err := h.do(ctx, http.MethodDelete, submissionsPath(formID)+"/"+url.PathEscape(id), nil, nil, app.FallbackDeleteSubmission, true)
	return err
}

func (h *httpServerAdapter) ExportSubmissions(ctx context.Context, formID string) (string, []byte, error) {
	resp, err := h.do(ctx, http.MethodGet, submissionsPath(formID)+"/export", nil, nil, app.FallbackExport, true)
	if err != nil {
		return "", nil, err
	}

	name := defaultExportName
	if _, params, perr := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); perr == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, resp.Body(), nil
}

// ─────────────────────────────────────────────
// leads
// ─────────────────────────────────────────────

func (h *httpServerAdapter) ListLeads(ctx context.Context) ([]models.Lead, error) {
	var out models.LeadsResponse
	if _, err := h.do(ctx, http.MethodGet, "/api/leads", nil, &out, app.FallbackLoadLeads, true); err != nil {
		return nil, err
	}
	return out.Leads, nil
}

func (h *httpServerAdapter) CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	var out models.LeadResponse
	if _, err := h.do(ctx, http.MethodPost, "/api/leads", lead, &out, app.FallbackCreateLead, true); err != nil {
		return models.Lead{}, err
	}
	return out.Lead, nil
}

func (h *httpServerAdapter) UpdateLeadStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error) {
	var out models.LeadResponse
	path := "/api/leads/" + url.PathEscape(id) + "/status"
	if _, err := h.do(ctx, http.MethodPut, path, models.LeadStatusRequest{Status: status}, &out, app.FallbackMoveLead, true); err != nil {
		return models.Lead{}, err
	}
	return out.Lead, nil
}

func (h *httpServerAdapter) DeleteLead(ctx context.Context, id string) error {
	_, err := h.do(ctx, http.MethodDelete, "/api/leads/"+url.PathEscape(id), nil, nil, app.FallbackDeleteLead, true)
	return err
}

// ─────────────────────────────────────────────
// templates, dashboard, public
// ─────────────────────────────────────────────

func (h *httpServerAdapter) ListTemplates(ctx context.Context) ([]models.FormTemplate, error) {
	var out models.TemplatesResponse
	if _, err := h.do(ctx, http.MethodGet, "/api/templates", nil, &out, app.FallbackLoadTemplates, true); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

func (h *httpServerAdapter) UseTemplate(ctx context.Context, id string) (models.Form, error) {
	return h.formCall(ctx, http.MethodPost, "/api/templates/"+url.PathEscape(id)+"/use", nil, app.FallbackUseTemplate)
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	_, err := h.do(ctx, http.MethodGet, "/api/dashboard", nil, &out, app.FallbackDashboard, true)
	return out, err
}

func (h *httpServerAdapter) GetPublicForm(ctx context.Context, slug string) (models.Form, error) {
	var out models.FormResponse
	if _, err := h.do(ctx, http.MethodGet, "/api/public/forms/"+url.PathEscape(slug), nil, &out, app.FallbackLoadPublicForm, false); err != nil {
		return models.Form{}, err
	}
	return out.Form, nil
}

func (h *httpServerAdapter) Submit(ctx context.Context, slug string, req models.SubmitRequest) (models.SubmitResponse, error) {
	var out models.SubmitResponse
	path := "/api/public/forms/" + url.PathEscape(slug) + "/submissions"
	_, err := h.do(ctx, http.MethodPost, path, req, &out, app.FallbackSubmit, false)
	return out, err
}

// do is the single request path of the adapter. out, when set, receives the
// decoded JSON body of a successful response.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, body, out any, fallback string, authed bool) (*resty.Response, error) {
	log := logger.FromContext(ctx)

	req := h.client.R().SetContext(ctx)
	token := h.Token()
	if authed && token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		log.Err(err).Str("func", "*httpServerAdapter.do").Str("method", method).Str("path", path).Msg("request failed")
		return nil, transportError(err, fallback)
	}

	if err = mapHTTPError(resp, authed && token != "", fallback); err != nil {
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode()).Err(err).Msg("api error")
		return resp, err
	}

	if out != nil && len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			return resp, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	return resp, nil
}
