package unified

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type BudgetAssignment struct {
	flag   *ModeFlag
	local  repos.BudgetAssignmentRepo
	remote repos.BudgetAssignmentRepo
}

func NewBudgetAssignment(flag *ModeFlag, local, remote repos.BudgetAssignmentRepo) *BudgetAssignment {
	return &BudgetAssignment{flag: flag, local: local, remote: remote}
}

func (u *BudgetAssignment) active(ctx context.Context) repos.BudgetAssignmentRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *BudgetAssignment) GetAll(ctx context.Context, budgetID uuid.UUID) ([]*types.BudgetAssignment, error) {
	return u.active(ctx).GetAll(ctx, budgetID)
}

func (u *BudgetAssignment) GetByID(ctx context.Context, id uuid.UUID) (*types.BudgetAssignment, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *BudgetAssignment) Create(ctx context.Context, assignment *types.BudgetAssignment) (*types.BudgetAssignment, error) {
	return u.active(ctx).Create(ctx, assignment)
}

func (u *BudgetAssignment) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *BudgetAssignment) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}
