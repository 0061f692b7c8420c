package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/patientauth/internal/client/client"
	"github.com/dmitrijs2005/patientauth/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	registerRes *models.InsertResult
	registerErr error
	gotRegister *models.RegisterRequest

	loginRes  *models.Session
	loginErr  error
	gotEmail  string
	gotPass   string
	whoRes    *models.Identity
	whoErr    error
	gotToken  string
	whoCalled int
}

func (f *fakeClient) Register(_ context.Context, req *models.RegisterRequest) (*models.InsertResult, error) {
	f.gotRegister = req
	return f.registerRes, f.registerErr
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.gotEmail, f.gotPass = email, string(password)
	return f.loginRes, f.loginErr
}

func (f *fakeClient) WhoAmI(_ context.Context, token string) (*models.Identity, error) {
	f.whoCalled++
	f.gotToken = token
	return f.whoRes, f.whoErr
}

type fakePinger struct {
	pingErr error
	closed  bool
}

func (f *fakePinger) Ping(context.Context) error { return f.pingErr }
func (f *fakePinger) Close() error               { f.closed = true; return nil }

func session(token string) *models.Session {
	return &models.Session{User: models.User{ID: "u-1", Email: "a@b.co", Role: models.RoleUser}, Token: token}
}

func TestRegister_ReturnsUserID(t *testing.T) {
	f := &fakeClient{registerRes: &models.InsertResult{Rows: []models.InsertedRow{{UserID: "u-1"}}}}
	a := NewAuthService(f, &fakePinger{})

	req := &models.RegisterRequest{Email: "a@b.co"}
	id, err := a.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
	assert.Same(t, req, f.gotRegister)
	assert.Empty(t, a.Email(), "register must not log in")
}

func TestRegister_Error(t *testing.T) {
	a := NewAuthService(&fakeClient{registerErr: errors.New("boom")}, &fakePinger{})
	_, err := a.Register(context.Background(), &models.RegisterRequest{})
	assert.EqualError(t, err, "boom")
}

func TestLogin_StoresSession(t *testing.T) {
	f := &fakeClient{loginRes: session("tok"), whoRes: &models.Identity{ID: "u-1"}}
	a := NewAuthService(f, &fakePinger{})

	u, err := a.Login(context.Background(), "a@b.co", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "a@b.co", a.Email())
	assert.Equal(t, "secret1", f.gotPass)

	_, err = a.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", f.gotToken)
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	f := &fakeClient{loginRes: session("tok")}
	a := NewAuthService(f, &fakePinger{})
	_, err := a.Login(context.Background(), "a@b.co", []byte("x"))
	require.NoError(t, err)

	f.loginRes, f.loginErr = nil, client.ErrUnauthorized
	_, err = a.Login(context.Background(), "other@b.co", []byte("x"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "a@b.co", a.Email())
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	f := &fakeClient{}
	a := NewAuthService(f, &fakePinger{})

	_, err := a.WhoAmI(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, f.whoCalled)
}

func TestWhoAmI_RejectedTokenEndsSession(t *testing.T) {
	f := &fakeClient{loginRes: session("tok"), whoErr: &client.APIError{StatusCode: 401}}
	a := NewAuthService(f, &fakePinger{})
	_, err := a.Login(context.Background(), "a@b.co", []byte("x"))
	require.NoError(t, err)

	_, err = a.WhoAmI(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, a.Email())

	_, err = a.WhoAmI(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestWhoAmI_NotFoundKeepsSession(t *testing.T) {
	f := &fakeClient{loginRes: session("tok"), whoErr: &client.APIError{StatusCode: 404}}
	a := NewAuthService(f, &fakePinger{})
	_, err := a.Login(context.Background(), "a@b.co", []byte("x"))
	require.NoError(t, err)

	_, err = a.WhoAmI(context.Background())
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "a@b.co", a.Email())
}

func TestLogout(t *testing.T) {
	a := NewAuthService(&fakeClient{loginRes: session("tok")}, &fakePinger{})
	_, err := a.Login(context.Background(), "a@b.co", []byte("x"))
	require.NoError(t, err)

	a.Logout()
	assert.Empty(t, a.Email())
}

func TestPingAndClose(t *testing.T) {
	p := &fakePinger{pingErr: client.ErrUnavailable}
	a := NewAuthService(&fakeClient{}, p)

	assert.ErrorIs(t, a.Ping(context.Background()), client.ErrUnavailable)
	require.NoError(t, a.Close())
	assert.True(t, p.closed)
}
