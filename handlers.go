package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/so637/personal-budget-tracker-backend/auth"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (s *server) healthHandler(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.log.WarnContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// tokenHandler exchanges username and password for an access/refresh pair.
func (s *server) tokenHandler(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	pair, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *server) refreshHandler(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, err := s.auth.Refresh(c.Request.Context(), req.Refresh)
	if errors.Is(err, auth.ErrInvalidRefresh) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *server) revokeHandler(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	err := s.auth.Revoke(c.Request.Context(), req.Refresh)
	if errors.Is(err, auth.ErrRefreshNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

// createTestUserHandler accepts JSON or form-encoded credentials. Missing
// fields fall through to RegisterUser, which reports them.
func (s *server) createTestUserHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}
	user, err := s.auth.RegisterUser(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	case errors.Is(err, auth.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	case err != nil:
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("User %s created successfully!", user.Username)})
}
