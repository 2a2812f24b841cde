package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

// PreferenceRepo is the single-key/value store for process-wide flags
// (storage mode, last user id). It is always bound to the local tier.
type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	return &preferenceRepo{
		db:  db,
		log: baseLog.With("repo", "PreferenceRepo"),
	}
}

func (pr *preferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var pref types.Preference
	if err := pr.db.WithContext(ctx).
		Where("key = ?", key).
		First(&pref).Error; err != nil {
		return "", classify(types.StoreTierLocal, "preference.get", err)
	}
	return pref.Value, nil
}

func (pr *preferenceRepo) Set(ctx context.Context, key, value string) error {
	pref := types.Preference{Key: key, Value: value}
	if err := pr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&pref).Error; err != nil {
		return classify(types.StoreTierLocal, "preference.set", err)
	}
	return nil
}

func (pr *preferenceRepo) Delete(ctx context.Context, key string) error {
	if err := pr.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&types.Preference{}).Error; err != nil {
		return classify(types.StoreTierLocal, "preference.delete", err)
	}
	return nil
}
