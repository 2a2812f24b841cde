package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

type BudgetHandler struct {
	budgets     *unified.Budget
	assignments *unified.BudgetAssignment
}

func NewBudgetHandler(budgets *unified.Budget, assignments *unified.BudgetAssignment) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, assignments: assignments}
}

func (bh *BudgetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := requestdata.UserID(ctx)
	if month := c.Query("month"); month != "" {
		budgets, err := bh.budgets.GetByMonth(ctx, ownerID, month)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, budgets)
		return
	}
	budgets, err := bh.budgets.GetAll(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (bh *BudgetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}
	budget, err := bh.budgets.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (bh *BudgetHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Month string `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and month are required"})
		return
	}
	budget := &types.Budget{
		OwnerUserID: requestdata.UserID(c.Request.Context()),
		Name:        req.Name,
		Month:       req.Month,
	}
	created, err := bh.budgets.Create(c.Request.Context(), budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (bh *BudgetHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := bh.budgets.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (bh *BudgetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}
	if err := bh.budgets.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (bh *BudgetHandler) ListAssignments(c *gin.Context) {
	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}
	assignments, err := bh.assignments.GetAll(c.Request.Context(), budgetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (bh *BudgetHandler) CreateAssignment(c *gin.Context) {
	var req struct {
		BudgetID uuid.UUID       `json:"budget_id"`
		Category string          `json:"category"`
		Planned  decimal.Decimal `json:"planned"`
		Spent    decimal.Decimal `json:"spent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Category == "" || req.BudgetID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget_id and category are required"})
		return
	}
	assignment := &types.BudgetAssignment{
		BudgetID: req.BudgetID,
		Category: req.Category,
		Planned:  req.Planned,
		Spent:    req.Spent,
	}
	created, err := bh.assignments.Create(c.Request.Context(), assignment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (bh *BudgetHandler) UpdateAssignment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := bh.assignments.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (bh *BudgetHandler) DeleteAssignment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	if err := bh.assignments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
