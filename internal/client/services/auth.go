// Package services contains application services for the storyshare client.
// This file defines the authentication service: register, login with a
// persisted session, logout, and the current user lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/session"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

// ErrNotLoggedIn is returned when an operation needs a session and there is
// none, or the stored token has expired.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server.
//   - Login: authenticate and persist the returned session.
//   - Logout: drop the local session. The server keeps no session state.
//   - CurrentUser: the stored session, or ErrNotLoggedIn.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.LoginResult, error)
}

// SessionStore persists the logged-in session. session.Store satisfies it.
type SessionStore interface {
	Save(ctx context.Context, r models.LoginResult) error
	Load(ctx context.Context) (*models.LoginResult, error)
	Clear(ctx context.Context) error
	Token(ctx context.Context) (string, bool)
}

type authService struct {
	client   client.Client
	sessions SessionStore
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client and the
// local session store.
func NewAuthService(c client.Client, sessions SessionStore, log logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, log: log}
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if err := a.client.Register(ctx, strings.TrimSpace(name), email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.log.Info(ctx, "registered", "email", email)
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	res, err := a.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if res == nil || res.Token == "" {
		return nil, fmt.Errorf("login error: %w", client.ErrMalformedResponse)
	}
	if err := a.sessions.Save(ctx, *res); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "logged in", "user_id", res.UserID)
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.LoginResult, error) {
	if _, ok := a.sessions.Token(ctx); !ok {
		return nil, ErrNotLoggedIn
	}
	r, err := a.sessions.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, ErrNotLoggedIn
	}
	return r, err
}
