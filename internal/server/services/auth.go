// Package services contains server-side business logic. This file implements
// AuthService: registration, login and the current-user lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/patientauth/internal/common"
	"github.com/dmitrijs2005/patientauth/internal/dbx"
	"github.com/dmitrijs2005/patientauth/internal/logging"
	"github.com/dmitrijs2005/patientauth/internal/server/auth"
	"github.com/dmitrijs2005/patientauth/internal/server/models"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/patientauth/internal/server/validation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/patientauth/internal/server/services"

// TokenIssuer signs session tokens for a user identity.
type TokenIssuer interface {
	Issue(ident models.UserIdentity) (string, error)
}

// LoginResult is what a successful login hands back: the password-free user
// and a signed session token.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService provides the account operations:
//   - Register: create a user together with its profile
//   - Login: check credentials and issue a session token
//   - CurrentUser: look up the identity a verified token refers to
//
// Errors are drawn from internal/common (and *validation.Error); anything
// unexpected is wrapped in common.ErrorInternal.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	hasher      auth.Hasher
	timeout     time.Duration
	logger      logging.Logger
	tracer      trace.Tracer
	newID       func() string

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the service. timeout bounds every operation; zero
// disables the bound.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, hasher auth.Hasher, timeout time.Duration, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		timeout:     timeout,
		logger:      l.With("module", "auth_service"),
		tracer:      otel.Tracer(tracerName),
		newID:       uuid.NewString,
	}
}

// Register validates in, refuses an email that is already taken, hashes the
// password and stores the user and its profile in one transaction. It returns
// the profile insert result.
func (s *AuthService) Register(ctx context.Context, in *validation.RegisterInput) (res *models.InsertResult, err error) {
	ctx, end := s.begin(ctx, "AuthService.Register")
	defer func() { end(err) }()

	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	exists, err := s.repomanager.Users(s.db).ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, internalError("check email", err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalError("hash password", err)
	}

	user := &models.User{
		ID:       s.newID(),
		Email:    in.Email,
		Password: hash,
		Role:     in.RoleOrDefault(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		var err error
		res, err = s.repomanager.Profiles(tx).Create(ctx, in.Profile(user.ID))
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, internalError("store user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", int(user.Role))
	return res, nil
}

// Login checks the credentials and issues a session token. An unknown email and
// a wrong password both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, in *validation.LoginInput) (res *LoginResult, err error) {
	ctx, end := s.begin(ctx, "AuthService.Login")
	defer func() { end(err) }()

	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time close to a real mismatch
			_ = s.hasher.Verify(in.Password, s.dummy())
			return nil, common.ErrorUnauthorized
		}
		return nil, internalError("find user", err)
	}

	if err := s.hasher.Verify(in.Password, user.Password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internalError("verify password", err)
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, internalError("issue token", err)
	}

	user.Password = ""
	return &LoginResult{User: user, Token: token}, nil
}

// CurrentUser returns the {id, email, role} projection of userID.
// A user deleted after the token was issued yields common.ErrorNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (ident *models.UserIdentity, err error) {
	ctx, end := s.begin(ctx, "AuthService.CurrentUser")
	defer func() { end(err) }()

	ident, err = s.repomanager.Users(s.db).GetIdentityByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError("find user", err)
	}
	return ident, nil
}

// begin applies the operation timeout and opens a span. The returned func
// records the outcome and releases both.
func (s *AuthService) begin(ctx context.Context, op string) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	ctx, span := s.tracer.Start(ctx, op)

	return ctx, func(err error) {
		if err != nil {
			span.SetAttributes(attribute.String("error.kind", errorKind(err)))
			if errors.Is(err, common.ErrorInternal) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "internal error")
			}
		}
		span.End()
		cancel()
	}
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return "validation"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already_exists"
	case errors.Is(err, common.ErrorUnauthorized):
		return "invalid_credentials"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
