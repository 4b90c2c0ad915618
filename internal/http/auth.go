package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/validation"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	if errs := validation.Register(req.Name, req.Email, req.Password); len(errs) > 0 {
		h.respondValidation(c, errs)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Success: true, Token: token, User: userToResponse(user)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		h.respondValidation(c, errs)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: userToResponse(user)})
}

// getMe returns the caller already resolved by the auth middleware; no
// further store access is needed.
func (h *Handler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, userEnvelope{Success: true, User: userToResponse(currentUser(c))})
}
