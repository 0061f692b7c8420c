package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/patientauth/internal/client/models"
	"github.com/dmitrijs2005/patientauth/internal/client/services"
)

type fakeAuth struct {
	regReq *models.RegisterRequest
	regID  string
	regErr error

	loginEmail string
	loginPass  []byte
	loginUser  *models.User
	loginErr   error

	whoRes *models.Identity
	whoErr error

	email   string
	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, req *models.RegisterRequest) (string, error) {
	f.regReq = req
	return f.regID, f.regErr
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (*models.User, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.email = email
	return f.loginUser, nil
}

func (f *fakeAuth) WhoAmI(context.Context) (*models.Identity, error) {
	if f.email == "" {
		return nil, services.ErrNotLoggedIn
	}
	return f.whoRes, f.whoErr
}

func (f *fakeAuth) Logout()                    { f.email = "" }
func (f *fakeAuth) Email() string              { return f.email }
func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error               { f.closed = true; return nil }

func newTestApp(f *fakeAuth, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: f, reader: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

// stubPassword makes getPassword return pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
