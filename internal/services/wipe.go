package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
)

// LocalWiper erases every syncable entity from the on-device store in
// one transaction. The orchestrator runs it on sign-out and on an
// identity mismatch; preferences are not touched here because the
// orchestrator decides what happens to them per transition.
type LocalWiper interface {
	WipeAll(ctx context.Context) error
}

type localWiper struct {
	db          *gorm.DB
	wallets     repos.WalletRepo
	txns        repos.TransactionRepo
	budgets     repos.BudgetRepo
	assignments repos.BudgetAssignmentRepo
	pages       repos.PageRepo
	events      repos.EventRepo
	log         *logger.Logger
}

func NewLocalWiper(
	db *gorm.DB,
	wallets repos.WalletRepo,
	txns repos.TransactionRepo,
	budgets repos.BudgetRepo,
	assignments repos.BudgetAssignmentRepo,
	pages repos.PageRepo,
	events repos.EventRepo,
	baseLog *logger.Logger,
) LocalWiper {
	return &localWiper{
		db:          db,
		wallets:     wallets,
		txns:        txns,
		budgets:     budgets,
		assignments: assignments,
		pages:       pages,
		events:      events,
		log:         baseLog.With("service", "LocalWiper"),
	}
}

// WipeAll deletes dependents before roots so foreign keys never dangle
// mid-transaction.
func (w *localWiper) WipeAll(ctx context.Context) error {
	w.log.Info("Wiping all local data...")
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := w.txns.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := w.assignments.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := w.pages.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := w.events.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := w.wallets.DeleteAll(ctx, tx); err != nil {
			return err
		}
		return w.budgets.DeleteAll(ctx, tx)
	})
}
