// backend-go/internal/api/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/besco/backend-go/internal/api/middleware"
	"github.com/besco/backend-go/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// IssueAPIKey returns the caller's stable machine key. It sits behind the
// auth middleware and only works for token callers, since API-key callers
// carry no username.
func (h *AuthHandler) IssueAPIKey(c *gin.Context) {
	username := c.GetString(middleware.UsernameKey)
	if username == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "api keys are issued to logged-in users only"})
		return
	}

	key, err := h.service.IssueAPIKey(c.Request.Context(), username)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}
