package app

import (
	"github.com/daybook-app/daybook-backend/internal/handlers"
	"github.com/daybook-app/daybook-backend/internal/sse"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Wallet      *handlers.WalletHandler
	Transaction *handlers.TransactionHandler
	Budget      *handlers.BudgetHandler
	Page        *handlers.PageHandler
	Event       *handlers.EventHandler
	Sync        *handlers.SyncHandler
	Mode        *handlers.ModeHandler
	SSE         *handlers.SSEHandler
}

func wireHandlers(s Services, u *Unified, sseHub *sse.Hub) Handlers {
	return Handlers{
		Auth:        handlers.NewAuthHandler(s.Auth, s.Orchestrator),
		Wallet:      handlers.NewWalletHandler(u.Wallets),
		Transaction: handlers.NewTransactionHandler(u.Transactions),
		Budget:      handlers.NewBudgetHandler(u.Budgets, u.Assignments),
		Page:        handlers.NewPageHandler(u.Pages),
		Event:       handlers.NewEventHandler(u.Events),
		Sync:        handlers.NewSyncHandler(s.WalletSync, s.BudgetSync, s.PageSync),
		Mode:        handlers.NewModeHandler(u.Flag),
		SSE:         handlers.NewSSEHandler(sseHub),
	}
}
