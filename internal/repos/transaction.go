package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type TransactionRepo interface {
	GetAll(ctx context.Context, walletID uuid.UUID) ([]*types.FinanceTransaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.FinanceTransaction, error)
	Create(ctx context.Context, txn *types.FinanceTransaction) (*types.FinanceTransaction, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*types.WalletSummary, error)
	Upsert(ctx context.Context, tx *gorm.DB, txn *types.FinanceTransaction) error
	DeleteByWallet(ctx context.Context, tx *gorm.DB, walletID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type transactionRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) TransactionRepo {
	return &transactionRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "TransactionRepo", "tier", string(tier)),
	}
}

func (tr *transactionRepo) Tier() types.StoreTier {
	return tr.tier
}

func (tr *transactionRepo) GetAll(ctx context.Context, walletID uuid.UUID) ([]*types.FinanceTransaction, error) {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.FinanceTransaction
	if err := handle.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("occurred_at DESC").
		Find(&results).Error; err != nil {
		return nil, classify(tr.tier, "transaction.get_all", err)
	}
	return results, nil
}

func (tr *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.FinanceTransaction, error) {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.FinanceTransaction
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(tr.tier, "transaction.get_by_id", err)
	}
	return &result, nil
}

func (tr *transactionRepo) Create(ctx context.Context, txn *types.FinanceTransaction) (*types.FinanceTransaction, error) {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.create")
	if err != nil {
		return nil, err
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, classify(tr.tier, "transaction.create", err)
	}
	return txn, nil
}

func (tr *transactionRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.FinanceTransaction{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(tr.tier, "transaction.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(tr.tier, "transaction.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (tr *transactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.FinanceTransaction{}).Error; err != nil {
		return classify(tr.tier, "transaction.delete", err)
	}
	return nil
}

// SummaryByWallet aggregates income and expense totals for one wallet
// in the store this repo is bound to.
func (tr *transactionRepo) SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*types.WalletSummary, error) {
	handle, err := resolve(nil, tr.db, tr.tier, "transaction.summary")
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Kind  types.TransactionKind
		Total decimal.Decimal
	}
	if err := handle.WithContext(ctx).
		Model(&types.FinanceTransaction{}).
		Select("kind, SUM(amount) AS total").
		Where("wallet_id = ?", walletID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, classify(tr.tier, "transaction.summary", err)
	}
	summary := &types.WalletSummary{WalletID: walletID}
	for _, row := range rows {
		switch row.Kind {
		case types.TransactionKindIncome:
			summary.TotalIncome = row.Total
		case types.TransactionKindExpense:
			summary.TotalExpense = row.Total
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

func (tr *transactionRepo) Upsert(ctx context.Context, tx *gorm.DB, txn *types.FinanceTransaction) error {
	handle, err := resolve(tx, tr.db, tr.tier, "transaction.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(txn).Error; err != nil {
		return classify(tr.tier, "transaction.upsert", err)
	}
	return nil
}

func (tr *transactionRepo) DeleteByWallet(ctx context.Context, tx *gorm.DB, walletID uuid.UUID) error {
	handle, err := resolve(tx, tr.db, tr.tier, "transaction.delete_by_wallet")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Delete(&types.FinanceTransaction{}).Error; err != nil {
		return classify(tr.tier, "transaction.delete_by_wallet", err)
	}
	return nil
}

func (tr *transactionRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, tr.db, tr.tier, "transaction.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.FinanceTransaction{}).Error; err != nil {
		return classify(tr.tier, "transaction.delete_all", err)
	}
	return nil
}
