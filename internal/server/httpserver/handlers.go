package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/patientauth/internal/common"
	"github.com/dmitrijs2005/patientauth/internal/server/auth"
	"github.com/dmitrijs2005/patientauth/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, validation.FromDecodeError(err), msgRegisterFailed)
		return
	}

	res, err := s.auth.Register(c.Request.Context(), &in)
	if err != nil {
		s.fail(c, err, msgRegisterFailed)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, validation.FromDecodeError(err), msgLoginFailed)
		return
	}

	res, err := s.auth.Login(c.Request.Context(), &in)
	if err != nil {
		s.fail(c, err, msgLoginFailed)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Message: msgLoginSuccessful, Data: res})
}

func (s *Server) whoAmI(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		s.fail(c, common.ErrInvalidToken, msgServerError)
		return
	}

	ident, err := s.auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		s.fail(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Data: ident})
}

func (s *Server) health(c *gin.Context) {
	if err := s.checker.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
