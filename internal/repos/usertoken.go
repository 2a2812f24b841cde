package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserToken, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) error
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (tr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error) {
	handle, err := resolve(tx, tr.db, types.StoreTierRemote, "user_token.create")
	if err != nil {
		return nil, err
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(token).Error; err != nil {
		return nil, classify(types.StoreTierRemote, "user_token.create", err)
	}
	return token, nil
}

func (tr *userTokenRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserToken, error) {
	handle, err := resolve(tx, tr.db, types.StoreTierRemote, "user_token.get_by_user_id")
	if err != nil {
		return nil, err
	}
	var result types.UserToken
	if err := handle.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error; err != nil {
		return nil, classify(types.StoreTierRemote, "user_token.get_by_user_id", err)
	}
	return &result, nil
}

func (tr *userTokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	handle, err := resolve(tx, tr.db, types.StoreTierRemote, "user_token.delete_by_user_id")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserToken{}).Error; err != nil {
		return classify(types.StoreTierRemote, "user_token.delete_by_user_id", err)
	}
	return nil
}

func (tr *userTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) error {
	handle, err := resolve(tx, tr.db, types.StoreTierRemote, "user_token.delete_expired")
	if err != nil {
		return err
	}
	if err := handle.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&types.UserToken{}).Error; err != nil {
		return classify(types.StoreTierRemote, "user_token.delete_expired", err)
	}
	return nil
}
