package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type WalletRepo interface {
	GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Wallet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Wallet, error)
	Create(ctx context.Context, wallet *types.Wallet) (*types.Wallet, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	Upsert(ctx context.Context, tx *gorm.DB, wallet *types.Wallet) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type walletRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewWalletRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) WalletRepo {
	return &walletRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "WalletRepo", "tier", string(tier)),
	}
}

func (wr *walletRepo) Tier() types.StoreTier {
	return wr.tier
}

func (wr *walletRepo) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Wallet, error) {
	handle, err := resolve(nil, wr.db, wr.tier, "wallet.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.Wallet
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, classify(wr.tier, "wallet.get_all", err)
	}
	return results, nil
}

func (wr *walletRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Wallet, error) {
	handle, err := resolve(nil, wr.db, wr.tier, "wallet.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.Wallet
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(wr.tier, "wallet.get_by_id", err)
	}
	return &result, nil
}

func (wr *walletRepo) Create(ctx context.Context, wallet *types.Wallet) (*types.Wallet, error) {
	handle, err := resolve(nil, wr.db, wr.tier, "wallet.create")
	if err != nil {
		return nil, err
	}
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(wallet).Error; err != nil {
		return nil, classify(wr.tier, "wallet.create", err)
	}
	return wallet, nil
}

func (wr *walletRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, wr.db, wr.tier, "wallet.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.Wallet{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(wr.tier, "wallet.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(wr.tier, "wallet.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (wr *walletRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, wr.db, wr.tier, "wallet.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Wallet{}).Error; err != nil {
		return classify(wr.tier, "wallet.delete", err)
	}
	return nil
}

// Upsert writes a wallet exactly as given, replacing any existing row
// with the same id. Sync transfers use it to overwrite the destination
// without merge logic.
func (wr *walletRepo) Upsert(ctx context.Context, tx *gorm.DB, wallet *types.Wallet) error {
	handle, err := resolve(tx, wr.db, wr.tier, "wallet.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(wallet).Error; err != nil {
		return classify(wr.tier, "wallet.upsert", err)
	}
	return nil
}

func (wr *walletRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, wr.db, wr.tier, "wallet.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Wallet{}).Error; err != nil {
		return classify(wr.tier, "wallet.delete_all", err)
	}
	return nil
}
