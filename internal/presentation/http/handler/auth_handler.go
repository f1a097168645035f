package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lnprasad/invoice-api/internal/application/service"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/request"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/response"
)

// AuthHandler handles passkey authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles the passkey check and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Passkey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"token":      token,
		"token_type": "Bearer",
	})
}
