package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

// BudgetSyncService moves a budget and all of its category assignments
// across the local/remote boundary.
type BudgetSyncService interface {
	PushToCloud(ctx context.Context, budgetID uuid.UUID) (*SyncResult, error)
	PullToLocal(ctx context.Context, budgetID uuid.UUID) (*SyncResult, error)
}

type budgetSyncService struct {
	localBudgets      repos.BudgetRepo
	remoteBudgets     repos.BudgetRepo
	localAssignments  repos.BudgetAssignmentRepo
	remoteAssignments repos.BudgetAssignmentRepo
	log               *logger.Logger
}

func NewBudgetSyncService(
	localBudgets, remoteBudgets repos.BudgetRepo,
	localAssignments, remoteAssignments repos.BudgetAssignmentRepo,
	baseLog *logger.Logger,
) BudgetSyncService {
	return &budgetSyncService{
		localBudgets:      localBudgets,
		remoteBudgets:     remoteBudgets,
		localAssignments:  localAssignments,
		remoteAssignments: remoteAssignments,
		log:               baseLog.With("service", "BudgetSyncService"),
	}
}

func (bs *budgetSyncService) PushToCloud(ctx context.Context, budgetID uuid.UUID) (*SyncResult, error) {
	return bs.transfer(ctx, budgetID, bs.localBudgets, bs.localAssignments, bs.remoteBudgets, bs.remoteAssignments)
}

func (bs *budgetSyncService) PullToLocal(ctx context.Context, budgetID uuid.UUID) (*SyncResult, error) {
	return bs.transfer(ctx, budgetID, bs.remoteBudgets, bs.remoteAssignments, bs.localBudgets, bs.localAssignments)
}

func (bs *budgetSyncService) transfer(
	ctx context.Context,
	budgetID uuid.UUID,
	srcBudgets repos.BudgetRepo, srcAssignments repos.BudgetAssignmentRepo,
	dstBudgets repos.BudgetRepo, dstAssignments repos.BudgetAssignmentRepo,
) (*SyncResult, error) {
	root, err := srcBudgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	deps, err := srcAssignments.GetAll(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{RootID: budgetID, DependentsTotal: len(deps)}

	if err := dstBudgets.Upsert(ctx, nil, root); err != nil {
		return result, err
	}

	var errs []error
	if err := dstAssignments.DeleteByBudget(ctx, nil, budgetID); err != nil {
		bs.log.Warn("Failed to clear destination assignments before overwrite", "budget_id", budgetID, "error", err)
		errs = append(errs, err)
	}
	for _, dep := range deps {
		if err := dstAssignments.Upsert(ctx, nil, dep); err != nil {
			errs = append(errs, err)
			continue
		}
		result.DependentsWritten++
	}

	if len(errs) > 0 {
		return result, &syncerr.PartialSyncError{
			RootID:  budgetID,
			Written: result.DependentsWritten,
			Total:   result.DependentsTotal,
			Errs:    errs,
		}
	}
	bs.log.Info("Budget aggregate transferred",
		"budget_id", budgetID,
		"destination", string(dstBudgets.Tier()),
		"dependents", result.DependentsWritten)
	return result, nil
}
