// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/formdesk/internal/service"
	"github.com/MKhiriev/formdesk/models"
)

// RootModel is the sign-in router:
// 1) keeps the active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool
	username   string
	buildInfo  models.AppBuildInfo

	serverVersion string
	showBuildInfo bool
}

type serverVersionMsg struct {
	version string
	err     error
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(
	ctx context.Context,
	auth service.ClientAuthService,
	pages map[string]tea.Model,
	startPage string,
	buildInfo models.AppBuildInfo,
) RootModel {
	return RootModel{
		ctx:       ctx,
		auth:      auth,
		pages:     pages,
		current:   pages[startPage],
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.fetchVersion()}
	if r.current != nil {
		cmds = append(cmds, r.current.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.isMenuPage() {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}

		r.showBuildInfo = false
		r.current = next

		if msg.Payload != nil {
			return r, func() tea.Msg { return msg.Payload }
		}
		return r, r.current.Init()
	case serverVersionMsg:
		if msg.err == nil {
			r.serverVersion = msg.version
		}
		return r, nil
	case LoginResult:
		if msg.Err == nil {
			r.username = msg.Username
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverVersion)
	}
	if r.current == nil {
		return renderPage("FORMDESK", "", "")
	}
	return r.current.View()
}

func (r RootModel) isMenuPage() bool {
	_, ok := r.current.(*MenuModel)
	return ok
}

func (r RootModel) fetchVersion() tea.Cmd {
	ctx, auth := r.ctx, r.auth
	return func() tea.Msg {
		v, err := auth.ServerVersion(ctx)
		return serverVersionMsg{version: v, err: err}
	}
}
