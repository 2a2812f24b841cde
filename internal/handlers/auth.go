package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	orchestrator *services.Orchestrator
}

func NewAuthHandler(authService services.AuthService, orchestrator *services.Orchestrator) *AuthHandler {
	return &AuthHandler{authService: authService, orchestrator: orchestrator}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	accessToken, refreshToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	accessToken, refreshToken, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

// Logout always succeeds from the caller's point of view; a failed
// token revocation or local wipe is reported as a warning alongside.
func (ah *AuthHandler) Logout(c *gin.Context) {
	err := ah.authService.Logout(c.Request.Context())
	resp := gin.H{"message": "logged out"}
	if err != nil {
		resp["warning"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// Session reports the orchestrator's view of the current session,
// including whether a wipe left residual data behind.
func (ah *AuthHandler) Session(c *gin.Context) {
	resp := gin.H{"state": string(ah.orchestrator.State())}
	if userID := ah.orchestrator.CurrentUserID(); userID != uuid.Nil {
		resp["user_id"] = userID
	}
	if wipeErr := ah.orchestrator.LastWipeError(); wipeErr != nil {
		resp["wipe_warning"] = wipeErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}
