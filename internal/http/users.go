package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/service"
	"bookshelf-api/internal/validation"
)

type profileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// updateProfile applies name and bio when present in the body. An absent
// bio leaves the stored value alone; an empty one clears it.
func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	if errs := validation.Profile(req.Name, req.Bio); len(errs) > 0 {
		h.respondValidation(c, errs)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, service.ProfileUpdate{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userEnvelope{Success: true, User: userToResponse(user)})
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	if errs := validation.Password(req.CurrentPassword, req.NewPassword); len(errs) > 0 {
		h.respondValidation(c, errs)
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}
