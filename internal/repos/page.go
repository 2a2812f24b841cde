package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type PageRepo interface {
	GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Page, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]*types.Page, error)
	Create(ctx context.Context, page *types.Page) (*types.Page, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	Upsert(ctx context.Context, tx *gorm.DB, page *types.Page) error
	DeleteByParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type pageRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewPageRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) PageRepo {
	return &pageRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "PageRepo", "tier", string(tier)),
	}
}

func (pr *pageRepo) Tier() types.StoreTier {
	return pr.tier
}

// GetAll lists top-level pages for an owner; nested pages are fetched
// through GetChildren.
func (pr *pageRepo) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Page, error) {
	handle, err := resolve(nil, pr.db, pr.tier, "page.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.Page
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ? AND parent_id IS NULL", ownerID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, classify(pr.tier, "page.get_all", err)
	}
	return results, nil
}

func (pr *pageRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	handle, err := resolve(nil, pr.db, pr.tier, "page.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.Page
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(pr.tier, "page.get_by_id", err)
	}
	return &result, nil
}

func (pr *pageRepo) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*types.Page, error) {
	handle, err := resolve(nil, pr.db, pr.tier, "page.get_children")
	if err != nil {
		return nil, err
	}
	var results []*types.Page
	if err := handle.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, classify(pr.tier, "page.get_children", err)
	}
	return results, nil
}

func (pr *pageRepo) Create(ctx context.Context, page *types.Page) (*types.Page, error) {
	handle, err := resolve(nil, pr.db, pr.tier, "page.create")
	if err != nil {
		return nil, err
	}
	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(page).Error; err != nil {
		return nil, classify(pr.tier, "page.create", err)
	}
	return page, nil
}

func (pr *pageRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, pr.db, pr.tier, "page.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.Page{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(pr.tier, "page.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(pr.tier, "page.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (pr *pageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, pr.db, pr.tier, "page.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Page{}).Error; err != nil {
		return classify(pr.tier, "page.delete", err)
	}
	return nil
}

func (pr *pageRepo) Upsert(ctx context.Context, tx *gorm.DB, page *types.Page) error {
	handle, err := resolve(tx, pr.db, pr.tier, "page.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(page).Error; err != nil {
		return classify(pr.tier, "page.upsert", err)
	}
	return nil
}

func (pr *pageRepo) DeleteByParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) error {
	handle, err := resolve(tx, pr.db, pr.tier, "page.delete_by_parent")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Delete(&types.Page{}).Error; err != nil {
		return classify(pr.tier, "page.delete_by_parent", err)
	}
	return nil
}

func (pr *pageRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, pr.db, pr.tier, "page.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Page{}).Error; err != nil {
		return classify(pr.tier, "page.delete_all", err)
	}
	return nil
}
