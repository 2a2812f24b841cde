package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

// Reconciler is the best-effort background pull the orchestrator runs
// on login: cloud aggregates the user pushed before and that are
// absent locally get pulled whole. Aggregates present on both sides
// are left alone; divergence is only ever resolved by an explicit,
// user-confirmed push or pull.
type Reconciler interface {
	Reconcile(ctx context.Context, userID uuid.UUID) error
}

type reconciler struct {
	localWallets  repos.WalletRepo
	remoteWallets repos.WalletRepo
	localBudgets  repos.BudgetRepo
	remoteBudgets repos.BudgetRepo
	localPages    repos.PageRepo
	remotePages   repos.PageRepo
	walletSync    WalletSyncService
	budgetSync    BudgetSyncService
	pageSync      PageSyncService
	log           *logger.Logger
}

func NewReconciler(
	localWallets, remoteWallets repos.WalletRepo,
	localBudgets, remoteBudgets repos.BudgetRepo,
	localPages, remotePages repos.PageRepo,
	walletSync WalletSyncService,
	budgetSync BudgetSyncService,
	pageSync PageSyncService,
	baseLog *logger.Logger,
) Reconciler {
	return &reconciler{
		localWallets:  localWallets,
		remoteWallets: remoteWallets,
		localBudgets:  localBudgets,
		remoteBudgets: remoteBudgets,
		localPages:    localPages,
		remotePages:   remotePages,
		walletSync:    walletSync,
		budgetSync:    budgetSync,
		pageSync:      pageSync,
		log:           baseLog.With("service", "Reconciler"),
	}
}

func (r *reconciler) Reconcile(ctx context.Context, userID uuid.UUID) error {
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(3)

	grp.Go(func() error { return r.reconcileWallets(grpCtx, userID) })
	grp.Go(func() error { return r.reconcileBudgets(grpCtx, userID) })
	grp.Go(func() error { return r.reconcilePages(grpCtx, userID) })

	return grp.Wait()
}

func (r *reconciler) reconcileWallets(ctx context.Context, userID uuid.UUID) error {
	remote, err := r.remoteWallets.GetAll(ctx, userID)
	if err != nil {
		return err
	}
	for _, wallet := range remote {
		if _, err := r.localWallets.GetByID(ctx, wallet.ID); err == nil {
			continue
		} else if !errors.Is(err, syncerr.ErrNotFound) {
			return err
		}
		if _, err := r.walletSync.PullToLocal(ctx, wallet.ID); err != nil {
			r.log.Warn("Background wallet pull failed", "wallet_id", wallet.ID, "error", err)
		}
	}
	return nil
}

func (r *reconciler) reconcileBudgets(ctx context.Context, userID uuid.UUID) error {
	remote, err := r.remoteBudgets.GetAll(ctx, userID)
	if err != nil {
		return err
	}
	for _, budget := range remote {
		if _, err := r.localBudgets.GetByID(ctx, budget.ID); err == nil {
			continue
		} else if !errors.Is(err, syncerr.ErrNotFound) {
			return err
		}
		if _, err := r.budgetSync.PullToLocal(ctx, budget.ID); err != nil {
			r.log.Warn("Background budget pull failed", "budget_id", budget.ID, "error", err)
		}
	}
	return nil
}

func (r *reconciler) reconcilePages(ctx context.Context, userID uuid.UUID) error {
	remote, err := r.remotePages.GetAll(ctx, userID)
	if err != nil {
		return err
	}
	for _, page := range remote {
		if _, err := r.localPages.GetByID(ctx, page.ID); err == nil {
			continue
		} else if !errors.Is(err, syncerr.ErrNotFound) {
			return err
		}
		if _, err := r.pageSync.PullToLocal(ctx, page.ID); err != nil {
			r.log.Warn("Background page pull failed", "page_id", page.ID, "error", err)
		}
	}
	return nil
}
