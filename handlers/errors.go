package handlers

import (
	"errors"
	"net/http"

	"caredesk/services/allocation"
	"caredesk/upstream"

	"github.com/gin-gonic/gin"
)

// respondError maps service and upstream errors onto HTTP statuses.
// Validation failures are the operator's to fix (400); a missing session has
// usually expired (404); upstream trouble is reported as a bad gateway so
// the dashboard can show its retry panel.
func respondError(c *gin.Context, err error) {
	var vErr *allocation.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		return
	}

	var nfErr *allocation.SessionNotFoundError
	if errors.As(err, &nfErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
		return
	}

	var httpErr *upstream.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": httpErr.Error(), "upstreamStatus": httpErr.Status})
		return
	}

	if upstream.IsAppError(err) || upstream.IsNetworkError(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
