package unified

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type Transaction struct {
	flag   *ModeFlag
	local  repos.TransactionRepo
	remote repos.TransactionRepo
}

func NewTransaction(flag *ModeFlag, local, remote repos.TransactionRepo) *Transaction {
	return &Transaction{flag: flag, local: local, remote: remote}
}

func (u *Transaction) active(ctx context.Context) repos.TransactionRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *Transaction) GetAll(ctx context.Context, walletID uuid.UUID) ([]*types.FinanceTransaction, error) {
	return u.active(ctx).GetAll(ctx, walletID)
}

func (u *Transaction) GetByID(ctx context.Context, id uuid.UUID) (*types.FinanceTransaction, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *Transaction) Create(ctx context.Context, txn *types.FinanceTransaction) (*types.FinanceTransaction, error) {
	return u.active(ctx).Create(ctx, txn)
}

func (u *Transaction) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *Transaction) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}

func (u *Transaction) SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*types.WalletSummary, error) {
	return u.active(ctx).SummaryByWallet(ctx, walletID)
}
