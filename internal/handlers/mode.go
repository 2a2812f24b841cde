package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

// ModeHandler reads and flips the storage-mode routing flag. Flipping
// only redirects reads and writes; nothing is migrated until the user
// explicitly pushes or pulls an aggregate.
type ModeHandler struct {
	flag *unified.ModeFlag
}

func NewModeHandler(flag *unified.ModeFlag) *ModeHandler {
	return &ModeHandler{flag: flag}
}

func (mh *ModeHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": string(mh.flag.Get())})
}

func (mh *ModeHandler) Set(c *gin.Context) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	mode := types.StorageMode(req.Mode)
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be local or cloud"})
		return
	}
	if err := mh.flag.Set(c.Request.Context(), mode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": string(mode)})
}
