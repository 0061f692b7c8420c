package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/patientauth/internal/common"
	"github.com/dmitrijs2005/patientauth/internal/dbx"
	"github.com/dmitrijs2005/patientauth/internal/logging"
	"github.com/dmitrijs2005/patientauth/internal/server/models"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/users"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger         { return l }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// fakeUsersRepo keeps users in memory keyed by email.
type fakeUsersRepo struct {
	byEmail map[string]*models.User

	existsErr error
	getErr    error
	identErr  error
	createErr error

	calls   int
	created []*models.User
	// bound records which handle each call used: "db" or "tx".
	bound []string
}

func newFakeUsersRepo(seed ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	for _, u := range seed {
		r.byEmail[u.Email] = u
	}
	return r
}

func (f *fakeUsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.calls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetIdentityByID(_ context.Context, id string) (*models.UserIdentity, error) {
	f.calls++
	if f.identErr != nil {
		return nil, f.identErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			ident := u.Identity()
			return &ident, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeProfilesRepo struct {
	createErr error
	created   []*models.ProfileDetails
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.ProfileDetails) (*models.InsertResult, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return &models.InsertResult{Command: "INSERT", RowCount: 1, Rows: []models.ProfileRow{{UserID: p.UserID}}}, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProfilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	m.u.bound = append(m.u.bound, handleKind(db))
	return m.u
}

func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository { return m.p }

func handleKind(db dbx.DBTX) string {
	if _, ok := db.(*sql.Tx); ok {
		return "tx"
	}
	return "db"
}

type fakeIssuer struct {
	token string
	err   error
	got   []models.UserIdentity
}

func (f *fakeIssuer) Issue(ident models.UserIdentity) (string, error) {
	f.got = append(f.got, ident)
	return f.token, f.err
}
