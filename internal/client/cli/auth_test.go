package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/patientauth/internal/client/client"
	"github.com/dmitrijs2005/patientauth/internal/client/models"
	"github.com/dmitrijs2005/patientauth/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAuth{regID: "u-1"}
	a, out := newTestApp(f, "alice@example.org\nAlice Doe\nadmin\n30\nFemale\n170,5\n60\n555-1\n1 Main St\n")

	require.NoError(t, a.Register(context.Background()))

	require.NotNil(t, f.regReq)
	assert.Equal(t, "alice@example.org", f.regReq.Email)
	assert.Equal(t, "secret1", f.regReq.Password)
	assert.Equal(t, "Alice Doe", f.regReq.FullName)
	require.NotNil(t, f.regReq.Role)
	assert.Equal(t, models.RoleAdmin, *f.regReq.Role)
	assert.Equal(t, &models.ProfileDetails{
		Age: 30, Gender: "Female", HeightCm: 170.5, WeightKg: 60, Phone: "555-1", Address: "1 Main St",
	}, f.regReq.UserDetails)
	assert.Contains(t, out.String(), "Registered user u-1")
}

func TestRegister_DefaultRole(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAuth{}
	a, _ := newTestApp(f, "a@b.co\nA\n\n30\nM\n180\n80\n1\nx\n")

	require.NoError(t, a.Register(context.Background()))
	assert.Nil(t, f.regReq.Role)
}

func TestRegister_BadInputStopsBeforeSending(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad role", "a@b.co\nA\nboss\n"},
		{"bad age", "a@b.co\nA\n\nthirty\n"},
		{"bad height", "a@b.co\nA\n\n30\nM\ntall\n"},
		{"input ends", "a@b.co\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPassword(t, "secret1")
			f := &fakeAuth{}
			a, _ := newTestApp(f, tt.input)

			assert.Error(t, a.Register(context.Background()))
			assert.Nil(t, f.regReq)
		})
	}
}

func TestRegister_ServerError(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAuth{regErr: &client.APIError{StatusCode: 400, Message: "User already exists"}}
	a, _ := newTestApp(f, "a@b.co\nA\n\n30\nM\n180\n80\n1\nx\n")

	err := a.Register(context.Background())
	assert.ErrorContains(t, err, "User already exists")
}

func TestLogin(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAuth{loginUser: &models.User{Email: "a@b.co", Role: models.RoleUser}}
	a, out := newTestApp(f, "a@b.co\n")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "a@b.co", f.loginEmail)
	assert.Equal(t, "secret1", string(f.loginPass))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in as a@b.co (user)")
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "nope")
	f := &fakeAuth{loginErr: client.ErrUnauthorized}
	a, _ := newTestApp(f, "a@b.co\n")

	assert.ErrorIs(t, a.Login(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestWhoAmI(t *testing.T) {
	f := &fakeAuth{email: "a@b.co", whoRes: &models.Identity{ID: "u-1", Email: "a@b.co", Role: models.RoleAdmin}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "u-1")
	assert.Contains(t, out.String(), "admin")
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	a, _ := newTestApp(&fakeAuth{}, "")
	assert.ErrorIs(t, a.WhoAmI(context.Background()), services.ErrNotLoggedIn)
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{email: "a@b.co"}
	a, _ := newTestApp(f, "")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.ErrorIs(t, a.Logout(context.Background()), services.ErrNotLoggedIn)
}

func TestParseRole(t *testing.T) {
	r, err := parseRole("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = parseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, *r)

	r, err = parseRole("1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, *r)

	_, err = parseRole("3")
	assert.Error(t, err)
}
