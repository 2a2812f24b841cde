package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

type EventHandler struct {
	events *unified.Event
}

func NewEventHandler(events *unified.Event) *EventHandler {
	return &EventHandler{events: events}
}

func (eh *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := requestdata.UserID(ctx)

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		events, err := eh.events.GetByRange(ctx, ownerID, from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
		return
	}

	events, err := eh.events.GetAll(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (eh *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	event, err := eh.events.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (eh *EventHandler) Create(c *gin.Context) {
	var req struct {
		Title      string         `json:"title"`
		StartsAt   time.Time      `json:"starts_at"`
		EndsAt     time.Time      `json:"ends_at"`
		AllDay     bool           `json:"all_day"`
		Recurrence datatypes.JSON `json:"recurrence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.StartsAt.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and starts_at are required"})
		return
	}
	if req.EndsAt.IsZero() {
		req.EndsAt = req.StartsAt
	}
	event := &types.ScheduleEvent{
		OwnerUserID: requestdata.UserID(c.Request.Context()),
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AllDay:      req.AllDay,
		Recurrence:  req.Recurrence,
	}
	created, err := eh.events.Create(c.Request.Context(), event)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (eh *EventHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := eh.events.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (eh *EventHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	if err := eh.events.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
