// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/models"
)

const (
	regName = iota
	regLogin
	regPassword
	regRepeat
)

// RegisterModel creates an operator account. The server signs the new
// account in, so success ends the flow with a [LoginResult].
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	fields := make([]textinput.Model, 4)

	fields[regName] = textinput.New()
	fields[regName].Placeholder = "name"
	fields[regName].Width = 40
	fields[regName].Focus()

	fields[regLogin] = textinput.New()
	fields[regLogin].Placeholder = "login"
	fields[regLogin].CharLimit = 64
	fields[regLogin].Width = 40

	fields[regPassword] = passwordInput("password")
	fields[regRepeat] = passwordInput("repeat password")

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: fields,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = errorText(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab", "down":
			m.focus = moveFocus(m.inputs, m.focus, 1)
			return m, nil
		case "shift+tab", "up":
			m.focus = moveFocus(m.inputs, m.focus, -1)
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			user, errMsg := m.user()
			if errMsg != "" {
				m.errMsg = errMsg
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(user)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) user() (models.User, string) {
	user := models.User{
		Name:     strings.TrimSpace(m.inputs[regName].Value()),
		Login:    strings.TrimSpace(m.inputs[regLogin].Value()),
		Password: m.inputs[regPassword].Value(),
	}
	switch {
	case user.Login == "" || user.Password == "":
		return user, "Login and password are required"
	case user.Password != m.inputs[regRepeat].Value():
		return user, "Passwords do not match"
	}
	return user, ""
}

func (m *RegisterModel) View() string {
	labels := []string{"Name", "Login", "Password", "Repeat"}

	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	for i, in := range m.inputs {
		b.WriteString(padRight(labels[i], 10))
		b.WriteString("│ [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(user models.User) tea.Cmd {
	ctx, auth := m.ctx, m.auth

	return func() tea.Msg {
		err := auth.Register(ctx, user)
		return LoginResult{Err: err, Username: user.Login}
	}
}
