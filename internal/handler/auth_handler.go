package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
	"github.com/quizlab/quizlab-backend/internal/validator"
)

// AuthHandler issues admin tokens.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token godoc
// POST /api/v1/auth/token
// Exchanges the configured admin key for a short-lived JWT.
func (h *AuthHandler) Token(c *gin.Context) {
	var req model.TokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.IssueAdminToken(req.AdminKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdminKey) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidAdminKey)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.authService.TokenExpiry().Seconds()),
	})
}
