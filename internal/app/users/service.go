package users

import (
	"context"
	"errors"
	"strings"

	"spacebook/internal/store"
)

// ErrMissingFields signals an incomplete signup form.
var ErrMissingFields = errors.New("name, email, and password are required")

// Store describes the account operations required by the user
// service.
type Store interface {
	Login(ctx context.Context, email, password string) (store.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) (store.User, error)
}

// TokenIssuer mints a session token for a signed-in user.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Service exposes the account workflows. Login and Signup return the
// user together with a session token for the caller to present on
// later requests.
type Service interface {
	Login(ctx context.Context, email, password string) (store.User, string, error)
	Signup(ctx context.Context, name, email, password string) (store.User, string, error)
	Logout(ctx context.Context) error
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New wires a Service backed by the provided Store and token issuer.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Login(ctx context.Context, email, password string) (store.User, string, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, "", err
	}

	user, err := s.store.Login(ctx, email, password)
	if err != nil {
		return store.User{}, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return store.User{}, "", err
	}
	return user, token, nil
}

func (s *service) Signup(ctx context.Context, name, email, password string) (store.User, string, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, "", err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return store.User{}, "", ErrMissingFields
	}

	user, err := s.store.Register(ctx, name, email, password)
	if err != nil {
		return store.User{}, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return store.User{}, "", err
	}
	return user, token, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.Logout(ctx)
}
