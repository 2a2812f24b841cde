package unified

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type Page struct {
	flag   *ModeFlag
	local  repos.PageRepo
	remote repos.PageRepo
}

func NewPage(flag *ModeFlag, local, remote repos.PageRepo) *Page {
	return &Page{flag: flag, local: local, remote: remote}
}

func (u *Page) active(ctx context.Context) repos.PageRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *Page) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.Page, error) {
	return u.active(ctx).GetAll(ctx, ownerID)
}

func (u *Page) GetByID(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *Page) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*types.Page, error) {
	return u.active(ctx).GetChildren(ctx, parentID)
}

func (u *Page) Create(ctx context.Context, page *types.Page) (*types.Page, error) {
	return u.active(ctx).Create(ctx, page)
}

func (u *Page) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *Page) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}
