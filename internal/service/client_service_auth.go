// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/formdesk/internal/adapter"
	"github.com/MKhiriev/formdesk/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) error {
	user, err := credentials(user)
	if err != nil {
		return err
	}
	return a.adapter.Register(ctx, user)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) error {
	user, err := credentials(user)
	if err != nil {
		return err
	}
	return a.adapter.Login(ctx, user)
}

func (a *clientAuthService) Logout() {
	a.adapter.SetToken("")
}

func (a *clientAuthService) ServerVersion(ctx context.Context) (string, error) {
	return a.adapter.Version(ctx)
}

// credentials trims the login and refuses empty fields before anything
// leaves the client.
func credentials(user models.User) (models.User, error) {
	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" || user.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	return user, nil
}
