// Package httpserver exposes the account API over HTTP with gin:
//
//	POST /register   create an account
//	POST /login      exchange credentials for a session token
//	GET  /whoMI      current user (bearer token required)
//	GET  /health     database reachability probe
//
// The API routes are also mounted under /api/auth.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/patientauth/internal/logging"
	"github.com/dmitrijs2005/patientauth/internal/server/auth"
	"github.com/dmitrijs2005/patientauth/internal/server/models"
	"github.com/dmitrijs2005/patientauth/internal/server/services"
	"github.com/dmitrijs2005/patientauth/internal/server/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AuthService is the business logic behind the API routes.
type AuthService interface {
	Register(ctx context.Context, in *validation.RegisterInput) (*models.InsertResult, error)
	Login(ctx context.Context, in *validation.LoginInput) (*services.LoginResult, error)
	CurrentUser(ctx context.Context, userID string) (*models.UserIdentity, error)
}

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// Options holds the listener settings.
type Options struct {
	Address            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type Server struct {
	opts    Options
	auth    AuthService
	tokens  TokenVerifier
	checker HealthChecker
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(opts Options, svc AuthService, tokens TokenVerifier, checker HealthChecker, l logging.Logger) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		opts:    opts,
		auth:    svc,
		tokens:  tokens,
		checker: checker,
		logger:  l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), s.requestLogger(), s.recovery())
	if c, ok := corsConfig(s.opts.CORSAllowedOrigins); ok {
		r.Use(cors.New(c))
	}

	r.GET("/health", s.health)

	for _, g := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api/auth")} {
		g.POST("/register", s.register)
		g.POST("/login", s.login)
		g.GET("/whoMI", s.requireAuth(), s.whoAmI)
	}

	return r
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c, true
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully,
// letting in-flight requests finish within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
