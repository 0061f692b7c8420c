package httpserver

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/patientauth/internal/common"
	"github.com/dmitrijs2005/patientauth/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
	claimsKey       = "claims"
)

// requireAuth gates a route on a valid bearer token. A missing header or an
// empty token answers 403; a non-Bearer scheme or a token that fails
// verification answers 401. Verified claims are stored on both the gin
// context and the request context; the store is not consulted.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(common.AuthorizationHeaderName))
		scheme, token, _ := strings.Cut(header, " ")
		token = strings.TrimSpace(token)

		if header == "" || token == "" {
			s.fail(c, common.ErrNoToken, msgServerError)
			return
		}
		if !strings.EqualFold(scheme, common.BearerScheme) {
			s.fail(c, common.ErrInvalidToken, msgServerError)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err.Error())
			s.fail(c, err, msgServerError)
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// requestID propagates or assigns an X-Request-Id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request at a level chosen by status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error(ctx, "http request", args...)
		case status >= http.StatusBadRequest:
			s.logger.Warn(ctx, "http request", args...)
		default:
			s.logger.Info(ctx, "http request", args...)
		}
	}
}

// recovery turns a handler panic into a generic 500.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(c.Request.Context(), "panic recovered",
					"error", fmt.Sprintf("%v", p),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Success: false, Message: msgServerError})
			}
		}()
		c.Next()
	}
}
