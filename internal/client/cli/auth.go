package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/patientauth/internal/client/models"
	"github.com/dmitrijs2005/patientauth/internal/client/services"
	"github.com/dmitrijs2005/patientauth/internal/common"
)

// Indirections over the input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getInt        = GetInt
	getFloat      = GetFloat
)

// Register prompts for credentials and profile details and creates an
// account. The server validates the values; its messages are returned as the
// error.
func (a *App) Register(ctx context.Context) error {
	req, err := a.promptRegistration()
	if err != nil {
		return err
	}

	id, err := a.authService.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered user %s. Use 'login' to start a session.\n", id)
	return nil
}

func (a *App) promptRegistration() (*models.RegisterRequest, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return nil, err
	}

	roleText, err := getSimpleText(a.reader, "Enter role (user/admin, empty for user)", a.out)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(roleText)
	if err != nil {
		return nil, err
	}

	d := &models.ProfileDetails{}
	if d.Age, err = getInt(a.reader, "Enter age", a.out); err != nil {
		return nil, err
	}
	if d.Gender, err = getSimpleText(a.reader, "Enter gender", a.out); err != nil {
		return nil, err
	}
	if d.HeightCm, err = getFloat(a.reader, "Enter height (cm)", a.out); err != nil {
		return nil, err
	}
	if d.WeightKg, err = getFloat(a.reader, "Enter weight (kg)", a.out); err != nil {
		return nil, err
	}
	if d.Phone, err = getSimpleText(a.reader, "Enter phone", a.out); err != nil {
		return nil, err
	}
	if d.Address, err = getSimpleText(a.reader, "Enter address", a.out); err != nil {
		return nil, err
	}

	return &models.RegisterRequest{
		Email:       email,
		Password:    string(password),
		FullName:    fullName,
		Role:        role,
		UserDetails: d,
	}, nil
}

// parseRole accepts a role name or number; empty means the server default.
func parseRole(s string) (*models.Role, error) {
	var r models.Role
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "user", "1":
		r = models.RoleUser
	case "admin", "2":
		r = models.RoleAdmin
	default:
		return nil, fmt.Errorf("unknown role %q", s)
	}
	return &r, nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Email, u.Role)
	return nil
}

// WhoAmI prints the identity behind the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	ident, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\nemail: %s\nrole:  %s\n", ident.ID, ident.Email, ident.Role)
	return nil
}

func (a *App) Logout(context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

