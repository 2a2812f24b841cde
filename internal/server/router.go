package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook-backend/internal/handlers"
	"github.com/daybook-app/daybook-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	WalletHandler      *handlers.WalletHandler
	TransactionHandler *handlers.TransactionHandler
	BudgetHandler      *handlers.BudgetHandler
	PageHandler        *handlers.PageHandler
	EventHandler       *handlers.EventHandler
	SyncHandler        *handlers.SyncHandler
	ModeHandler        *handlers.ModeHandler
	SSEHandler         *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	// Entity CRUD works anonymously against the local store; a valid
	// token just attaches the owner identity.
	entities := api.Group("/")
	entities.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		entities.GET("/wallets", cfg.WalletHandler.List)
		entities.POST("/wallets", cfg.WalletHandler.Create)
		entities.GET("/wallets/:id", cfg.WalletHandler.Get)
		entities.PATCH("/wallets/:id", cfg.WalletHandler.Update)
		entities.DELETE("/wallets/:id", cfg.WalletHandler.Delete)
		entities.GET("/wallets/:id/transactions", cfg.TransactionHandler.ListByWallet)
		entities.GET("/wallets/:id/summary", cfg.TransactionHandler.Summary)

		entities.POST("/transactions", cfg.TransactionHandler.Create)
		entities.PATCH("/transactions/:id", cfg.TransactionHandler.Update)
		entities.DELETE("/transactions/:id", cfg.TransactionHandler.Delete)

		entities.GET("/budgets", cfg.BudgetHandler.List)
		entities.POST("/budgets", cfg.BudgetHandler.Create)
		entities.GET("/budgets/:id", cfg.BudgetHandler.Get)
		entities.PATCH("/budgets/:id", cfg.BudgetHandler.Update)
		entities.DELETE("/budgets/:id", cfg.BudgetHandler.Delete)
		entities.GET("/budgets/:id/assignments", cfg.BudgetHandler.ListAssignments)
		entities.POST("/assignments", cfg.BudgetHandler.CreateAssignment)
		entities.PATCH("/assignments/:id", cfg.BudgetHandler.UpdateAssignment)
		entities.DELETE("/assignments/:id", cfg.BudgetHandler.DeleteAssignment)

		entities.GET("/pages", cfg.PageHandler.List)
		entities.POST("/pages", cfg.PageHandler.Create)
		entities.GET("/pages/:id", cfg.PageHandler.Get)
		entities.GET("/pages/:id/children", cfg.PageHandler.Children)
		entities.PATCH("/pages/:id", cfg.PageHandler.Update)
		entities.DELETE("/pages/:id", cfg.PageHandler.Delete)

		entities.GET("/events", cfg.EventHandler.List)
		entities.POST("/events", cfg.EventHandler.Create)
		entities.GET("/events/:id", cfg.EventHandler.Get)
		entities.PATCH("/events/:id", cfg.EventHandler.Update)
		entities.DELETE("/events/:id", cfg.EventHandler.Delete)

		entities.GET("/storage-mode", cfg.ModeHandler.Get)
		entities.GET("/sse/stream", cfg.SSEHandler.Stream)
	}

	// Everything that touches the cloud or the session requires auth.
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/session", cfg.AuthHandler.Session)

		protected.PUT("/storage-mode", cfg.ModeHandler.Set)

		protected.POST("/wallets/:id/push", cfg.SyncHandler.PushWallet)
		protected.POST("/wallets/:id/pull", cfg.SyncHandler.PullWallet)
		protected.POST("/budgets/:id/push", cfg.SyncHandler.PushBudget)
		protected.POST("/budgets/:id/pull", cfg.SyncHandler.PullBudget)
		protected.POST("/pages/:id/push", cfg.SyncHandler.PushPage)
		protected.POST("/pages/:id/pull", cfg.SyncHandler.PullPage)
	}

	return router
}
