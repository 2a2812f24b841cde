package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

// respondError maps the sync error taxonomy onto HTTP statuses. Remote
// failures are retryable and say so; partial sync reports how far the
// transfer got instead of pretending it either succeeded or did
// nothing.
func respondError(c *gin.Context, err error) {
	var partial *syncerr.PartialSyncError
	if errors.As(err, &partial) {
		c.JSON(http.StatusMultiStatus, gin.H{
			"error":              "aggregate partially synced",
			"root_id":            partial.RootID,
			"dependents_written": partial.Written,
			"dependents_total":   partial.Total,
		})
		return
	}
	var remote *syncerr.RemoteStoreError
	if errors.As(err, &remote) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	var local *syncerr.LocalStoreError
	if errors.As(err, &local) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}
	if errors.Is(err, syncerr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
