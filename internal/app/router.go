package app

import (
	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:        h.Auth,
		AuthMiddleware:     m.Auth,
		WalletHandler:      h.Wallet,
		TransactionHandler: h.Transaction,
		BudgetHandler:      h.Budget,
		PageHandler:        h.Page,
		EventHandler:       h.Event,
		SyncHandler:        h.Sync,
		ModeHandler:        h.Mode,
		SSEHandler:         h.SSE,
	})
}
