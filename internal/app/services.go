package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/services"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

// Unified holds the mode flag and the per-entity façades that route
// through it. Handlers never see a tiered repo directly.
type Unified struct {
	Flag         *unified.ModeFlag
	Wallets      *unified.Wallet
	Transactions *unified.Transaction
	Budgets      *unified.Budget
	Assignments  *unified.BudgetAssignment
	Pages        *unified.Page
	Events       *unified.Event
}

type Services struct {
	Auth         services.AuthService
	WalletSync   services.WalletSyncService
	BudgetSync   services.BudgetSyncService
	PageSync     services.PageSyncService
	Wiper        services.LocalWiper
	Reconciler   services.Reconciler
	Orchestrator *services.Orchestrator
}

func wireUnified(ctx context.Context, r Repos, log *logger.Logger) (*Unified, error) {
	flag, err := unified.LoadModeFlag(ctx, r.Preferences, log)
	if err != nil {
		return nil, fmt.Errorf("load storage mode: %w", err)
	}
	return &Unified{
		Flag:         flag,
		Wallets:      unified.NewWallet(flag, r.LocalWallets, r.RemoteWallets),
		Transactions: unified.NewTransaction(flag, r.LocalTransactions, r.RemoteTransactions),
		Budgets:      unified.NewBudget(flag, r.LocalBudgets, r.RemoteBudgets),
		Assignments:  unified.NewBudgetAssignment(flag, r.LocalAssignments, r.RemoteAssignments),
		Pages:        unified.NewPage(flag, r.LocalPages, r.RemotePages),
		Events:       unified.NewEvent(flag, r.LocalEvents, r.RemoteEvents),
	}, nil
}

func wireServices(
	localDB, remoteDB *gorm.DB,
	log *logger.Logger,
	cfg Config,
	r Repos,
	u *Unified,
	hub *bus.Hub,
	forwarder *bus.RedisForwarder,
) Services {
	walletSync := services.NewWalletSyncService(
		r.LocalWallets, r.RemoteWallets,
		r.LocalTransactions, r.RemoteTransactions,
		log,
	)
	budgetSync := services.NewBudgetSyncService(
		r.LocalBudgets, r.RemoteBudgets,
		r.LocalAssignments, r.RemoteAssignments,
		log,
	)
	pageSync := services.NewPageSyncService(r.LocalPages, r.RemotePages, log)

	wiper := services.NewLocalWiper(
		localDB,
		r.LocalWallets, r.LocalTransactions,
		r.LocalBudgets, r.LocalAssignments,
		r.LocalPages, r.LocalEvents,
		log,
	)
	reconciler := services.NewReconciler(
		r.LocalWallets, r.RemoteWallets,
		r.LocalBudgets, r.RemoteBudgets,
		r.LocalPages, r.RemotePages,
		walletSync, budgetSync, pageSync,
		log,
	)

	publishers := []services.Publisher{hub}
	if forwarder != nil {
		publishers = append(publishers, forwarder)
	}
	orchestrator := services.NewOrchestrator(u.Flag, r.Preferences, wiper, reconciler, log, publishers...)

	auth := services.NewAuthService(
		remoteDB,
		r.Users, r.UserTokens,
		orchestrator,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		log,
	)

	return Services{
		Auth:         auth,
		WalletSync:   walletSync,
		BudgetSync:   budgetSync,
		PageSync:     pageSync,
		Wiper:        wiper,
		Reconciler:   reconciler,
		Orchestrator: orchestrator,
	}
}
