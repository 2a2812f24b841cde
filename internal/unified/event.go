package unified

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type Event struct {
	flag   *ModeFlag
	local  repos.EventRepo
	remote repos.EventRepo
}

func NewEvent(flag *ModeFlag, local, remote repos.EventRepo) *Event {
	return &Event{flag: flag, local: local, remote: remote}
}

func (u *Event) active(ctx context.Context) repos.EventRepo {
	if u.flag.ActiveMode(ctx) == types.StorageModeCloud {
		return u.remote
	}
	return u.local
}

func (u *Event) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.ScheduleEvent, error) {
	return u.active(ctx).GetAll(ctx, ownerID)
}

func (u *Event) GetByID(ctx context.Context, id uuid.UUID) (*types.ScheduleEvent, error) {
	return u.active(ctx).GetByID(ctx, id)
}

func (u *Event) GetByRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.ScheduleEvent, error) {
	return u.active(ctx).GetByRange(ctx, ownerID, from, to)
}

func (u *Event) Create(ctx context.Context, event *types.ScheduleEvent) (*types.ScheduleEvent, error) {
	return u.active(ctx).Create(ctx, event)
}

func (u *Event) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return u.active(ctx).Update(ctx, id, patch)
}

func (u *Event) Delete(ctx context.Context, id uuid.UUID) error {
	return u.active(ctx).Delete(ctx, id)
}
