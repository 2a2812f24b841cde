package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type EventRepo interface {
	GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.ScheduleEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.ScheduleEvent, error)
	GetByRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.ScheduleEvent, error)
	Create(ctx context.Context, event *types.ScheduleEvent) (*types.ScheduleEvent, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	Upsert(ctx context.Context, tx *gorm.DB, event *types.ScheduleEvent) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Tier() types.StoreTier
}

type eventRepo struct {
	db   *gorm.DB
	tier types.StoreTier
	log  *logger.Logger
}

func NewEventRepo(db *gorm.DB, tier types.StoreTier, baseLog *logger.Logger) EventRepo {
	return &eventRepo{
		db:   db,
		tier: tier,
		log:  baseLog.With("repo", "EventRepo", "tier", string(tier)),
	}
}

func (er *eventRepo) Tier() types.StoreTier {
	return er.tier
}

func (er *eventRepo) GetAll(ctx context.Context, ownerID uuid.UUID) ([]*types.ScheduleEvent, error) {
	handle, err := resolve(nil, er.db, er.tier, "event.get_all")
	if err != nil {
		return nil, err
	}
	var results []*types.ScheduleEvent
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("starts_at ASC").
		Find(&results).Error; err != nil {
		return nil, classify(er.tier, "event.get_all", err)
	}
	return results, nil
}

func (er *eventRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.ScheduleEvent, error) {
	handle, err := resolve(nil, er.db, er.tier, "event.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.ScheduleEvent
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify(er.tier, "event.get_by_id", err)
	}
	return &result, nil
}

func (er *eventRepo) GetByRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.ScheduleEvent, error) {
	handle, err := resolve(nil, er.db, er.tier, "event.get_by_range")
	if err != nil {
		return nil, err
	}
	var results []*types.ScheduleEvent
	if err := handle.WithContext(ctx).
		Where("owner_user_id = ? AND starts_at < ? AND ends_at >= ?", ownerID, to, from).
		Order("starts_at ASC").
		Find(&results).Error; err != nil {
		return nil, classify(er.tier, "event.get_by_range", err)
	}
	return results, nil
}

func (er *eventRepo) Create(ctx context.Context, event *types.ScheduleEvent) (*types.ScheduleEvent, error) {
	handle, err := resolve(nil, er.db, er.tier, "event.create")
	if err != nil {
		return nil, err
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(event).Error; err != nil {
		return nil, classify(er.tier, "event.create", err)
	}
	return event, nil
}

func (er *eventRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	handle, err := resolve(nil, er.db, er.tier, "event.update")
	if err != nil {
		return err
	}
	res := handle.WithContext(ctx).
		Model(&types.ScheduleEvent{}).
		Where("id = ?", id).
		Updates(scrubPatch(patch))
	if res.Error != nil {
		return classify(er.tier, "event.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(er.tier, "event.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (er *eventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	handle, err := resolve(nil, er.db, er.tier, "event.delete")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ScheduleEvent{}).Error; err != nil {
		return classify(er.tier, "event.delete", err)
	}
	return nil
}

func (er *eventRepo) Upsert(ctx context.Context, tx *gorm.DB, event *types.ScheduleEvent) error {
	handle, err := resolve(tx, er.db, er.tier, "event.upsert")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(event).Error; err != nil {
		return classify(er.tier, "event.upsert", err)
	}
	return nil
}

func (er *eventRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	handle, err := resolve(tx, er.db, er.tier, "event.delete_all")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.ScheduleEvent{}).Error; err != nil {
		return classify(er.tier, "event.delete_all", err)
	}
	return nil
}
