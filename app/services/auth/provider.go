// Package auth resolves the current user of a request.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Provider interface {
	Authenticate(r *http.Request) (*models.User, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// DemoProvider signs every request in as one fixed customer.
type DemoProvider struct {
	users UserFinder
	email string
}

func NewDemoProvider(users UserFinder, email string) *DemoProvider {
	return &DemoProvider{users: users, email: email}
}

func (p *DemoProvider) Authenticate(r *http.Request) (*models.User, error) {
	user, err := p.users.FindByEmail(r.Context(), p.email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
