// Package services contains application services for the patientauth CLI.
// AuthService keeps the session token of the current login in memory and
// uses it for authenticated calls.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/patientauth/internal/client/client"
	"github.com/dmitrijs2005/patientauth/internal/client/models"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (string, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	WhoAmI(ctx context.Context) (*models.Identity, error)
	Logout()
	Email() string
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	pinger client.Pinger

	mu    sync.RWMutex
	token string
	email string
}

// NewAuthService constructs an AuthService bound to the given API client and
// liveness probe.
func NewAuthService(c client.Client, p client.Pinger) AuthService {
	return &authService{client: c, pinger: p}
}

// Register creates an account and returns the new user id. It does not log in.
func (a *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	res, err := a.client.Register(ctx, req)
	if err != nil {
		return "", err
	}
	return res.UserID(), nil
}

// Login exchanges credentials for a session token and keeps it. A failed
// login leaves any previous session untouched.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.token = s.Token
	a.email = s.User.Email
	a.mu.Unlock()

	return &s.User, nil
}

// WhoAmI returns the identity behind the current session. A rejected token
// ends the session.
func (a *authService) WhoAmI(ctx context.Context) (*models.Identity, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}

	ident, err := a.client.WhoAmI(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.Logout()
		}
		return nil, err
	}
	return ident, nil
}

func (a *authService) Logout() {
	a.mu.Lock()
	a.token, a.email = "", ""
	a.mu.Unlock()
}

// Email returns the address of the logged-in user, or "".
func (a *authService) Email() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

func (a *authService) Ping(ctx context.Context) error {
	return a.pinger.Ping(ctx)
}

func (a *authService) Close() error {
	return a.pinger.Close()
}
