// Package services contains the application services of the admin console.
// This file defines the authentication service: it exchanges credentials for
// a token, enforces the administrator role and hands the result to the
// session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/models"
	"github.com/transellia/admin-console/internal/logging"
)

const (
	MsgLoginFailed  = "Login failed. Please check your credentials."
	MsgAccessDenied = "Access denied. Only administrators are allowed to sign in."
	MsgLoginError   = "A network error occurred. Please try again."

	defaultAdminName = "Admin User"
)

var ErrAccessDenied = errors.New("access denied: administrator role required")

// LoginState is where the last login attempt ended up.
type LoginState string

const (
	StateIdle          LoginState = "idle"
	StateLoggingIn     LoginState = "loggingIn"
	StateAuthenticated LoginState = "authenticated"
	StateRejected      LoginState = "rejected"
	StateErrored       LoginState = "errored"
)

// Result is what a login attempt reports to the caller. Message is empty on
// success.
type Result struct {
	Success bool
	Message string
}

// LoginAPI is the part of the API client the auth service needs.
type LoginAPI interface {
	Login(ctx context.Context, req models.LoginRequest) client.Response[models.LoginContent]
}

// SessionStore is the part of the session store the auth service writes to.
type SessionStore interface {
	Login(ctx context.Context, user models.User, token string) error
	Logout(ctx context.Context)
	SetLoading(loading bool)
}

// AuthService defines authentication operations for the console.
//
// Login never returns an error or panics: every outcome is a Result, and the
// session's loading flag is cleared on every path. Logout clears the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) Result
	Logout(ctx context.Context)
	State() LoginState
}

type authService struct {
	api    LoginAPI
	store  SessionStore
	logger logging.Logger

	mu    sync.Mutex
	state LoginState
}

// NewAuthService constructs an AuthService over the given API and store.
func NewAuthService(api LoginAPI, store SessionStore, logger logging.Logger) AuthService {
	return &authService{
		api:    api,
		store:  store,
		logger: logger.With("component", "auth"),
		state:  StateIdle,
	}
}

// AuthorizeAdmin maps a backend user to the session identity, or returns
// ErrAccessDenied when the user is not an administrator.
func AuthorizeAdmin(u models.BackendUser) (models.User, error) {
	if u.RoleName() != models.BackendRoleAdmin {
		return models.User{}, ErrAccessDenied
	}
	name := u.DisplayName()
	if name == "" {
		name = defaultAdminName
	}
	return models.User{
		ID:    u.ID,
		Name:  name,
		Email: u.Email,
		Role:  models.RoleAdmin,
	}, nil
}

func (a *authService) setState(s LoginState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *authService) State() LoginState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) Login(ctx context.Context, email, password string) (res Result) {
	a.setState(StateLoggingIn)
	a.store.SetLoading(true)

	next := StateErrored
	defer func() {
		if p := recover(); p != nil {
			a.logger.Error(ctx, "login panicked", "panic", fmt.Sprint(p))
			res = Result{Message: MsgLoginError}
			next = StateErrored
		}
		a.setState(next)
		// a successful store login already cleared the flag
		if !res.Success {
			a.store.SetLoading(false)
		}
	}()

	email = strings.TrimSpace(email)
	resp := a.api.Login(ctx, models.LoginRequest{Email: email, Password: password})

	if !resp.Success || resp.Data == nil || resp.Data.User == nil || resp.Token == "" {
		msg := MsgLoginFailed
		if !resp.Success && resp.Message != "" {
			msg = resp.Message
		}
		a.logger.Info(ctx, "login failed", "email", email, "reason", msg)
		return Result{Message: msg}
	}

	user, err := AuthorizeAdmin(*resp.Data.User)
	if err != nil {
		a.logger.Warn(ctx, "non-admin login refused", "email", email, "role", resp.Data.User.RoleName())
		next = StateRejected
		return Result{Message: MsgAccessDenied}
	}

	if err := a.store.Login(ctx, user, resp.Token); err != nil {
		a.logger.Error(ctx, "cannot start session", "error", err)
		return Result{Message: MsgLoginFailed}
	}

	a.logger.Info(ctx, "admin signed in", "user", user.Email)
	next = StateAuthenticated
	return Result{Success: true}
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Logout(ctx)
	a.setState(StateIdle)
	a.logger.Info(ctx, "signed out")
}
