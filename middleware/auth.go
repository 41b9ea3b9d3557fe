// File: middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"caredesk/services/session"
	"caredesk/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set for downstream handlers.
const (
	CtxSessionID     = "sessionID"
	CtxUpstreamToken = "upstreamToken"
	CtxUserBlob      = "userBlob"
)

// OperatorAuthMiddleware validates the dashboard JWT, loads the operator
// session it points at, and exposes the upstream bearer token to handlers.
func OperatorAuthMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		sess, err := store.Get(context.Background(), sessionID)
		if err != nil || sess == nil || sess.UpstreamToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired",
				"code":  0,
			})
			return
		}

		c.Set(CtxSessionID, sessionID)
		c.Set(CtxUpstreamToken, sess.UpstreamToken)
		c.Set(CtxUserBlob, sess.User)
		c.Next()
	}
}

// UpstreamToken pulls the upstream bearer token a prior OperatorAuthMiddleware
// stashed in the context.
func UpstreamToken(c *gin.Context) string {
	v, ok := c.Get(CtxUpstreamToken)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
