package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type BudgetRepo interface {
	GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Budget, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Budget, error)
	Create(ctx context.Context, budget *types.Budget) (*types.Budget, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*types.Budget, error)
	Upsert(ctx context.Context, tx *gorm.DB, budget *types.Budget) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type budgetRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewBudgetRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) BudgetRepo {
	return &budgetRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "BudgetRepo", "tier", string(tier)),
	}
}

func (br *budgetRepo) Tier() types.StoreTier {
	return br.tier
}

func (br *budgetRepo) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Budget, error) {
	handle, err := resolve(nil, br.db, br.tier, "budget.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.Budget
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("month DESC").
		Find(&results).Error; err != nil {
		return nil, classify(br.tier, "budget.get_all", err)
	}
	return results, nil
}

func (br *budgetRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Budget, error) {
	handle, err := resolve(nil, br.db, br.tier, "budget.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.Budget
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(br.tier, "budget.get_by_id", err)
	}
	return &result, nil
}

func (br *budgetRepo) Create(ctx context.Context, budget *types.Budget) (*types.Budget, error) {
	handle, err := resolve(nil, br.db, br.tier, "budget.create")
	if err != nil {
		return nil, err
	}
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, classify(br.tier, "budget.create", err)
	}
	return budget, nil
}

func (br *budgetRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, br.db, br.tier, "budget.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.Budget{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(br.tier, "budget.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(br.tier, "budget.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (br *budgetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, br.db, br.tier, "budget.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Budget{}).Error; err != nil {
		return classify(br.tier, "budget.delete", err)
	}
	return nil
}

func (br *budgetRepo) GetByMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*types.Budget, error) {
	handle, err := resolve(nil, br.db, br.tier, "budget.get_by_month")
	if err != nil {
		return nil, err
	}
	var results []*types.Budget
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ? AND month = ?", ownerID, month).
		Find(&results).Error; err != nil {
		return nil, classify(br.tier, "budget.get_by_month", err)
	}
	return results, nil
}

func (br *budgetRepo) Upsert(ctx context.Context, tx *gorm.DB, budget *types.Budget) error {
	handle, err := resolve(tx, br.db, br.tier, "budget.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(budget).Error; err != nil {
		return classify(br.tier, "budget.upsert", err)
	}
	return nil
}

func (br *budgetRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, br.db, br.tier, "budget.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Budget{}).Error; err != nil {
		return classify(br.tier, "budget.delete_all", err)
	}
	return nil
}
