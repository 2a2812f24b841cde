package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/services"
)

// SyncHandler exposes the explicit, user-confirmed aggregate transfers.
// Pushing and pulling overwrite the destination whole; the UI is
// responsible for confirming that with the user before calling.
type SyncHandler struct {
	walletSync services.WalletSyncService
	budgetSync services.BudgetSyncService
	pageSync   services.PageSyncService
}

func NewSyncHandler(
	walletSync services.WalletSyncService,
	budgetSync services.BudgetSyncService,
	pageSync services.PageSyncService,
) *SyncHandler {
	return &SyncHandler{
		walletSync: walletSync,
		budgetSync: budgetSync,
		pageSync:   pageSync,
	}
}

type syncFn func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error)

func (sh *SyncHandler) run(c *gin.Context, fn syncFn) {
	rootID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	result, err := fn(c, rootID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (sh *SyncHandler) PushWallet(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.walletSync.PushToCloud(c.Request.Context(), rootID)
	})
}

func (sh *SyncHandler) PullWallet(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.walletSync.PullToLocal(c.Request.Context(), rootID)
	})
}

func (sh *SyncHandler) PushBudget(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.budgetSync.PushToCloud(c.Request.Context(), rootID)
	})
}

func (sh *SyncHandler) PullBudget(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.budgetSync.PullToLocal(c.Request.Context(), rootID)
	})
}

func (sh *SyncHandler) PushPage(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.pageSync.PushToCloud(c.Request.Context(), rootID)
	})
}

func (sh *SyncHandler) PullPage(c *gin.Context) {
	sh.run(c, func(c *gin.Context, rootID uuid.UUID) (*services.SyncResult, error) {
		return sh.pageSync.PullToLocal(c.Request.Context(), rootID)
	})
}
