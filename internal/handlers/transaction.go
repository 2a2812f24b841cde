package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

type TransactionHandler struct {
	txns *unified.Transaction
}

func NewTransactionHandler(txns *unified.Transaction) *TransactionHandler {
	return &TransactionHandler{txns: txns}
}

func (th *TransactionHandler) ListByWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet id"})
		return
	}
	txns, err := th.txns.GetAll(c.Request.Context(), walletID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (th *TransactionHandler) Summary(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet id"})
		return
	}
	summary, err := th.txns.SummaryByWallet(c.Request.Context(), walletID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (th *TransactionHandler) Create(c *gin.Context) {
	var req struct {
		WalletID   uuid.UUID       `json:"wallet_id"`
		Kind       string          `json:"kind"`
		Amount     decimal.Decimal `json:"amount"`
		Note       string          `json:"note"`
		OccurredAt time.Time       `json:"occurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	kind := types.TransactionKind(req.Kind)
	if kind != types.TransactionKindIncome && kind != types.TransactionKindExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
		return
	}
	if req.WalletID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet_id is required"})
		return
	}
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}
	txn := &types.FinanceTransaction{
		WalletID:   req.WalletID,
		Kind:       kind,
		Amount:     req.Amount,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
	}
	created, err := th.txns.Create(c.Request.Context(), txn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (th *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := th.txns.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (th *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := th.txns.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
