// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/formdesk/internal/export"
	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/logger"
	"github.com/MKhiriev/formdesk/internal/store"
	"github.com/MKhiriev/formdesk/internal/utils"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

// leadSourcePrefix marks leads and contacts created from a form answer.
const leadSourcePrefix = "form: "

type submissionService struct {
	formRepository       store.FormRepository
	submissionRepository store.SubmissionRepository
	leadRepository       store.LeadRepository
	contactRepository    store.ContactRepository

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewSubmissionService(repos *store.Repositories, logger *logger.Logger) SubmissionService {
	return &submissionService{
		formRepository:       repos.FormRepository,
		submissionRepository: repos.SubmissionRepository,
		leadRepository:       repos.LeadRepository,
		contactRepository:    repos.ContactRepository,
		ids:                  utils.NewUUIDGenerator(),
		now:                  func() time.Time { return time.Now().UTC() },
		logger:               logger,
	}
}

// Submit records a public answer to the published form behind slug.
//
// Visibility rules are evaluated against the answers first: hidden fields
// are neither validated nor stored. Validation failures come back as
// validators.FieldErrors. Once the submission is stored, the lead and
// contact side effects run; their failures are logged, never returned.
func (s *submissionService) Submit(ctx context.Context, slug string, req models.SubmitRequest) (models.SubmitResponse, error) {
	log := logger.FromContext(ctx)

	form, err := s.formRepository.GetBySlug(ctx, slug)
	if err != nil {
		return models.SubmitResponse{}, err
	}
	if form.Status != models.StatusPublished {
		return models.SubmitResponse{}, fmt.Errorf("%w: %s", ErrFormNotAccepting, form.Status)
	}

	data := req.Data
	if data == nil {
		data = models.SubmissionData{}
	}
	if errs := validators.Check(form.Fields, form.ConditionalRules, data); errs != nil {
		log.Debug().Str("form_id", form.ID).Int("errors", len(errs)).Msg("submission rejected")
		return models.SubmitResponse{}, errs
	}

	vis := formschema.Evaluate(form.Fields, form.ConditionalRules, data)
	data = formschema.DropHidden(form.Fields, data, vis)

	email := strings.TrimSpace(req.SubmitterEmail)
	if email == "" {
		email = mappedValue(form.FormSchema, data, models.CRMEmail)
	}

	if !form.Settings.AllowMultipleSubmissions && email != "" {
		seen, err := s.submissionRepository.HasSubmitter(ctx, form.ID, email)
		if err != nil {
			return models.SubmitResponse{}, err
		}
		if seen {
			return models.SubmitResponse{}, ErrAlreadySubmitted
		}
	}

	submission := models.FormSubmission{
		ID:             s.ids.Generate(),
		FormID:         form.ID,
		Data:           data,
		SubmitterEmail: email,
		CreatedAt:      s.now(),
	}
	if err = s.submissionRepository.Create(ctx, submission); err != nil {
		return models.SubmitResponse{}, err
	}

	s.createCRMRecords(ctx, form, submission)

	return models.SubmitResponse{
		ID:                  submission.ID,
		ThankYouTitle:       form.ThankYouTitle,
		ThankYouMessage:     form.ThankYouMessage,
		ThankYouRedirectURL: form.ThankYouRedirectURL,
	}, nil
}

func (s *submissionService) List(ctx context.Context, ownerID int64, formID string) (models.SubmissionsResponse, error) {
	form, err := s.formRepository.Get(ctx, ownerID, formID)
	if err != nil {
		return models.SubmissionsResponse{}, err
	}

	submissions, err := s.submissionRepository.List(ctx, form.ID)
	if err != nil {
		return models.SubmissionsResponse{}, err
	}

	return models.SubmissionsResponse{Submissions: submissions, Fields: form.Fields}, nil
}

func (s *submissionService) MarkRead(ctx context.Context, ownerID int64, formID, id string) error {
	if _, err := s.formRepository.Get(ctx, ownerID, formID); err != nil {
		return err
	}
	return s.submissionRepository.MarkRead(ctx, formID, id)
}

func (s *submissionService) Delete(ctx context.Context, ownerID int64, formID, id string) error {
	if _, err := s.formRepository.Get(ctx, ownerID, formID); err != nil {
		return err
	}
	return s.submissionRepository.Delete(ctx, formID, id)
}

func (s *submissionService) ExportCSV(ctx context.Context, ownerID int64, formID string) (string, []byte, error) {
	form, err := s.formRepository.Get(ctx, ownerID, formID)
	if err != nil {
		return "", nil, err
	}

	submissions, err := s.submissionRepository.List(ctx, form.ID)
	if err != nil {
		return "", nil, err
	}

	body, err := export.SubmissionsCSVBytes(form.Fields, submissions)
	if err != nil {
		return "", nil, fmt.Errorf("error rendering csv: %w", err)
	}

	return export.FileName(form.Slug), body, nil
}

// createCRMRecords turns a stored answer into a lead and/or contact
// according to the form's lead field mapping.
func (s *submissionService) createCRMRecords(ctx context.Context, form models.Form, submission models.FormSubmission) {
	if !form.AutoCreateLead && !form.AutoCreateContact {
		return
	}
	log := logger.FromContext(ctx)

	name := mappedValue(form.FormSchema, submission.Data, models.CRMName)
	email := mappedValue(form.FormSchema, submission.Data, models.CRMEmail)
	if email == "" {
		email = submission.SubmitterEmail
	}
	if name == "" && email == "" {
		log.Debug().Str("form_id", form.ID).Msg("nothing mapped, skipping lead and contact")
		return
	}
	phone := mappedValue(form.FormSchema, submission.Data, models.CRMPhone)
	company := mappedValue(form.FormSchema, submission.Data, models.CRMCompany)
	source := leadSourcePrefix + form.Title

	if form.AutoCreateLead {
		lead := models.Lead{
			ID:           s.ids.Generate(),
			OwnerID:      form.OwnerID,
			Name:         name,
			Email:        email,
			Phone:        phone,
			Company:      company,
			Status:       models.LeadNew,
			Source:       source,
			FormID:       form.ID,
			SubmissionID: submission.ID,
			CreatedAt:    submission.CreatedAt,
			UpdatedAt:    submission.CreatedAt,
		}
		if err := s.leadRepository.Create(ctx, lead); err != nil {
			log.Err(err).Str("func", "*submissionService.createCRMRecords").Msg("error creating lead from submission")
		}
	}

	if form.AutoCreateContact {
		if email != "" {
			_, found, err := s.contactRepository.FindByEmail(ctx, form.OwnerID, email)
			if err != nil {
				log.Err(err).Str("func", "*submissionService.createCRMRecords").Msg("error looking up contact")
				return
			}
			if found {
				return
			}
		}

		contact := models.Contact{
			ID:        s.ids.Generate(),
			OwnerID:   form.OwnerID,
			Name:      name,
			Email:     email,
			Phone:     phone,
			Company:   company,
			Source:    source,
			CreatedAt: submission.CreatedAt,
		}
		if err := s.contactRepository.Create(ctx, contact); err != nil {
			log.Err(err).Str("func", "*submissionService.createCRMRecords").Msg("error creating contact from submission")
		}
	}
}

// mappedValue is the answer of the field mapped to attr, as text.
func mappedValue(schema models.FormSchema, data models.SubmissionData, attr models.CRMAttribute) string {
	fieldID, ok := schema.LeadFieldMapping[attr]
	if !ok || fieldID == "" {
		return ""
	}
	return strings.TrimSpace(formschema.FormatValue(data[fieldID]))
}
