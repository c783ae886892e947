package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/finance"
	"github.com/so637/personal-budget-tracker-backend/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func currentUserID(c *gin.Context) uint {
	if u, ok := auth.CurrentUser(c); ok {
		return u.ID
	}
	return 0
}

func validationFailed(c *gin.Context, fields finance.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}

// fail writes the response for an error returned by the domain layer.
func (s *server) fail(c *gin.Context, err error) {
	var fields finance.FieldErrors
	switch {
	case errors.As(err, &fields):
		validationFailed(c, fields)
	case errors.Is(err, finance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		_ = c.Error(err)
		s.log.ErrorContext(c.Request.Context(), "request failed",
			logging.FieldRequestID, logging.GetRequestID(c),
			logging.FieldPath, c.FullPath(),
			logging.FieldError, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON decodes the body into dst. An empty body decodes as {} so missing
// fields are reported by validation instead of as a syntax error.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		validationFailed(c, finance.FromValidation(verrs))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fields := finance.FieldErrors{}
		fields.Add(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
		validationFailed(c, fields)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body"})
	}
	return false
}

// pathID parses :id. Anything that is not a positive integer cannot name a
// row and is answered with 404.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
