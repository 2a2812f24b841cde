package unified

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type Wallet struct {
	flag   *ModeFlag
	local  repos.WalletRepo
	remote repos.WalletRepo
}

func NewWallet(flag *ModeFlag, local, remote repos.WalletRepo) *Wallet {
	return &Wallet{flag: flag, local: local, remote: remote}
}

func (u *Wallet) active(ctx context.Context) repos.WalletRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *Wallet) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Wallet, error) {
	return u.active(ctx).GetAll(ctx, ownerID)
}

func (u *Wallet) GetByID(ctx context.Context, id uuid.UUID) (*types.Wallet, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *Wallet) Create(ctx context.Context, wallet *types.Wallet) (*types.Wallet, error) {
	return u.active(ctx).Create(ctx, wallet)
}

func (u *Wallet) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *Wallet) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}
