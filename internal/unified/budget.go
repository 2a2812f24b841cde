package unified

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type Budget struct {
	flag   *ModeFlag
	local  repos.BudgetRepo
	remote repos.BudgetRepo
}

func NewBudget(flag *ModeFlag, local, remote repos.BudgetRepo) *Budget {
	return &Budget{flag: flag, local: local, remote: remote}
}

func (u *Budget) active(ctx context.Context) repos.BudgetRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *Budget) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Budget, error) {
	return u.active(ctx).GetAll(ctx, ownerID)
}

func (u *Budget) GetByID(ctx context.Context, id uuid.UUID) (*types.Budget, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *Budget) GetByMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*types.Budget, error) {
	return u.active(ctx).GetByMonth(ctx, ownerID, month)
}

func (u *Budget) Create(ctx context.Context, budget *types.Budget) (*types.Budget, error) {
	return u.active(ctx).Create(ctx, budget)
}

func (u *Budget) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *Budget) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}
