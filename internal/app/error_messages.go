// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the formdesk server
// handlers and the terminal client.
//
// Msg* constants are written into the "error" field of API responses. The
// client-side Fallback* constants are shown when a request fails without a
// usable server message.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the request body is not JSON.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match a user.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when registration picks a taken login.
	MsgLoginAlreadyExists = "login already exists"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a bearer token is past its expiry.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgMissingToken is returned when a protected route is called without
	// an Authorization header.
	MsgMissingToken = "missing bearer token"

	MsgFormNotFound       = "form not found"
	MsgSubmissionNotFound = "submission not found"
	MsgLeadNotFound       = "lead not found"
	MsgTemplateNotFound   = "template not found"

	// MsgFormNotAccepting is returned when a public submission targets a
	// form that is not published.
	MsgFormNotAccepting = "form is not accepting submissions"

	// MsgAlreadySubmitted is returned when a form allows one answer per
	// email and the email has already answered.
	MsgAlreadySubmitted = "you have already submitted this form"

	// MsgInvalidSubmission heads the per-field errors of a rejected answer.
	MsgInvalidSubmission = "please fix the highlighted fields"

	MsgSlugUnavailable = "could not allocate a unique form address"
)

// Client-side messages.
const (
	// MsgSessionExpired is shown whenever the API answers 401 to an
	// authenticated call or returns an HTML page instead of JSON.
	MsgSessionExpired = "Session expired, please refresh"

	FallbackLogin            = "Failed to log in"
	FallbackRegister         = "Failed to register"
	FallbackVersion          = "Failed to fetch server version"
	FallbackLoadForms        = "Failed to load forms"
	FallbackLoadForm         = "Failed to load form"
	FallbackCreateForm       = "Failed to create form"
	FallbackSaveForm         = "Failed to save form"
	FallbackDeleteForm       = "Failed to delete form"
	FallbackDuplicateForm    = "Failed to duplicate form"
	FallbackLoadSubmissions  = "Failed to load submissions"
	FallbackMarkRead         = "Failed to mark submission as read"
	FallbackDeleteSubmission = "Failed to delete submission"
	FallbackExport           = "Failed to export submissions"
	FallbackEmbed            = "Failed to load embed code"
	FallbackLoadLeads        = "Failed to load leads"
	FallbackCreateLead       = "Failed to create lead"
	FallbackMoveLead         = "Failed to update lead status"
	FallbackDeleteLead       = "Failed to delete lead"
	FallbackLoadTemplates    = "Failed to load templates"
	FallbackUseTemplate      = "Failed to create form from template"
	FallbackDashboard        = "Failed to load dashboard"
	FallbackLoadPublicForm   = "Failed to load form"
	FallbackSubmit           = "Failed to submit form"
)
