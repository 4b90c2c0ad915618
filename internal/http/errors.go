package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/service"
	"bookshelf-api/internal/validation"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool                    `json:"success"`
	Errors  []validation.FieldError `json:"errors"`
}

// respondError translates service failures into the uniform JSON error
// envelope. Anything unrecognized becomes a 500 with the detail logged,
// never echoed to the caller.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Server Error"
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		status, message = http.StatusNotFound, "Book not found"
	case errors.Is(err, service.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrNotOwner):
		status, message = http.StatusForbidden, "Not authorized to modify this book"
	case errors.Is(err, service.ErrEmailTaken):
		status, message = http.StatusConflict, "Email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrPasswordMismatch):
		status, message = http.StatusUnauthorized, "Current password is incorrect"
	case errors.Is(err, service.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "invalid or expired token"
	default:
		h.log.WithError(err).Error("unhandled request error")
	}
	c.AbortWithStatusJSON(status, errorResponse{Success: false, Message: message})
}

// respondValidation short-circuits the request, naming every failed field.
func (h *Handler) respondValidation(c *gin.Context, errs []validation.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, validationResponse{Success: false, Errors: errs})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Success: false, Message: message})
}

func (h *Handler) unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Success: false, Message: message})
}
