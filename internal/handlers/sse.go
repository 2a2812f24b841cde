package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.Hub
}

func NewSSEHandler(hub *sse.Hub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Stream holds the connection open and relays sync events until the
// client goes away.
func (sh *SSEHandler) Stream(c *gin.Context) {
	client := sh.hub.Register(requestdata.UserID(c.Request.Context()))
	defer sh.hub.Remove(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-client.Done():
			return false
		case evt := <-client.Outbound:
			payload, err := json.Marshal(evt)
			if err != nil {
				return true
			}
			c.SSEvent(string(evt.Kind), string(payload))
			return true
		}
	})
}
