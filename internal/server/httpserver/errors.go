package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/patientauth/internal/common"
	"github.com/dmitrijs2005/patientauth/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// Client-facing messages. The 500 messages differ per endpoint.
const (
	msgValidation         = "Validation error"
	msgAlreadyExists      = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgNoToken            = "No token provided"
	msgInvalidToken       = "Invalid or expired token"
	msgNotFound           = "User not found"
	msgLoginSuccessful    = "Login successful"

	msgRegisterFailed = "Server error during registration"
	msgLoginFailed    = "Server error during login"
	msgServerError    = "Server error"
)

// envelope is the JSON body of every API response except a successful
// registration.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable is the single place where service and middleware errors become
// HTTP statuses. The first matching entry wins; anything unmatched is a 500.
var errorTable = []errorMapping{
	{common.ErrorValidation, http.StatusBadRequest, msgValidation},
	{common.ErrorAlreadyExists, http.StatusBadRequest, msgAlreadyExists},
	{common.ErrorUnauthorized, http.StatusUnauthorized, msgInvalidCredentials},
	{common.ErrNoToken, http.StatusForbidden, msgNoToken},
	{common.ErrInvalidToken, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrTokenExpired, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrorNotFound, http.StatusNotFound, msgNotFound},
}

// resolve returns the status and body for err. internalMessage is used for
// unmatched errors so no internal detail reaches the client.
func resolve(err error, internalMessage string) (int, envelope) {
	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		body := envelope{Success: false, Message: m.message}
		var verr *validation.Error
		if errors.As(err, &verr) {
			body.Errors = verr.Messages
		}
		return m.status, body
	}
	return http.StatusInternalServerError, envelope{Success: false, Message: internalMessage}
}

// fail aborts the request with the mapped response and logs unexpected errors.
func (s *Server) fail(c *gin.Context, err error, internalMessage string) {
	status, body := resolve(err, internalMessage)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"error", err.Error(),
		)
	}
	c.AbortWithStatusJSON(status, body)
}
