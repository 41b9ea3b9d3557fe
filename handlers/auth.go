// File: handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"caredesk/middleware"
	"caredesk/services/session"
	"caredesk/upstream"
	"caredesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const operatorTokenLifetime = 12 * time.Hour

// AuthHandler proxies operator sign-in to the hospital API and manages the
// dashboard's own session tokens.
type AuthHandler struct {
	Upstream *upstream.Client
	Sessions *session.Store
	Logger   *zap.Logger
}

func NewAuthHandler(client *upstream.Client, sessions *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Upstream: client, Sessions: sessions, Logger: logger}
}

// LoginHandler exchanges operator credentials for an upstream token, stores
// the operator session, and returns a signed dashboard token plus the
// user-details blob.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	upstreamToken, userBlob, err := h.Upstream.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if upstream.IsHTTPError(err) || upstream.IsAppError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	sess := session.OperatorSession{
		SessionID:     uuid.New().String(),
		UpstreamToken: upstreamToken,
		User:          userBlob,
		CreatedAt:     time.Now(),
	}
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		h.Logger.Error("failed to save operator session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	token, err := utils.GenerateToken(sess.SessionID, operatorTokenLifetime)
	if err != nil {
		h.Logger.Error("failed to sign session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  json.RawMessage(userBlob),
	})
}

// LogoutHandler tears the operator session down.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active session"})
		return
	}
	if err := h.Sessions.Delete(c.Request.Context(), sessionID); err != nil {
		h.Logger.Warn("failed to delete operator session", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
