package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type BudgetAssignmentRepo interface {
	GetAll(ctx context.Context, budgetID uuid.UUID) ([]*types.BudgetAssignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.BudgetAssignment, error)
	Create(ctx context.Context, assignment *types.BudgetAssignment) (*types.BudgetAssignment, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	Upsert(ctx context.Context, tx *gorm.DB, assignment *types.BudgetAssignment) error
	DeleteByBudget(ctx context.Context, tx *gorm.DB, budgetID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type budgetAssignmentRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewBudgetAssignmentRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) BudgetAssignmentRepo {
	return &budgetAssignmentRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "BudgetAssignmentRepo", "tier", string(tier)),
	}
}

func (ar *budgetAssignmentRepo) Tier() types.StoreTier {
	return ar.tier
}

func (ar *budgetAssignmentRepo) GetAll(ctx context.Context, budgetID uuid.UUID) ([]*types.BudgetAssignment, error) {
	handle, err := resolve(nil, ar.db, ar.tier, "budget_assignment.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.BudgetAssignment
	if err := handle.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("category ASC").
		Find(&results).Error; err != nil {
		return nil, classify(ar.tier, "budget_assignment.get_all", err)
	}
	return results, nil
}

func (ar *budgetAssignmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.BudgetAssignment, error) {
	handle, err := resolve(nil, ar.db, ar.tier, "budget_assignment.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.BudgetAssignment
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(ar.tier, "budget_assignment.get_by_id", err)
	}
	return &result, nil
}

func (ar *budgetAssignmentRepo) Create(ctx context.Context, assignment *types.BudgetAssignment) (*types.BudgetAssignment, error) {
	handle, err := resolve(nil, ar.db, ar.tier, "budget_assignment.create")
	if err != nil {
		return nil, err
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, classify(ar.tier, "budget_assignment.create", err)
	}
	return assignment, nil
}

func (ar *budgetAssignmentRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, ar.db, ar.tier, "budget_assignment.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.BudgetAssignment{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(ar.tier, "budget_assignment.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(ar.tier, "budget_assignment.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (ar *budgetAssignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, ar.db, ar.tier, "budget_assignment.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.BudgetAssignment{}).Error; err != nil {
		return classify(ar.tier, "budget_assignment.delete", err)
	}
	return nil
}

func (ar *budgetAssignmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assignment *types.BudgetAssignment) error {
	handle, err := resolve(tx, ar.db, ar.tier, "budget_assignment.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(assignment).Error; err != nil {
		return classify(ar.tier, "budget_assignment.upsert", err)
	}
	return nil
}

func (ar *budgetAssignmentRepo) DeleteByBudget(ctx context.Context, tx *gorm.DB, budgetID uuid.UUID) error {
	handle, err := resolve(tx, ar.db, ar.tier, "budget_assignment.delete_by_budget")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Delete(&types.BudgetAssignment{}).Error; err != nil {
		return classify(ar.tier, "budget_assignment.delete_by_budget", err)
	}
	return nil
}

func (ar *budgetAssignmentRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, ar.db, ar.tier, "budget_assignment.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.BudgetAssignment{}).Error; err != nil {
		return classify(ar.tier, "budget_assignment.delete_all", err)
	}
	return nil
}
