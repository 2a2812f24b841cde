package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
)

// UserRepo lives only on the remote tier: accounts are a cloud
// concept and an anonymous device has none.
type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	handle, err := resolve(tx, ur.db, types.StoreTierRemote, "user.create")
	if err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := handle.WithContext(ctx).Create(user).Error; err != nil {
		return nil, classify(types.StoreTierRemote, "user.create", err)
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	handle, err := resolve(tx, ur.db, types.StoreTierRemote, "user.get_by_id")
	if err != nil {
		return nil, err
	}
	var result types.User
	if err := handle.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		return nil, classify(types.StoreTierRemote, "user.get_by_id", err)
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	handle, err := resolve(tx, ur.db, types.StoreTierRemote, "user.get_by_email")
	if err != nil {
		return nil, err
	}
	var result types.User
	if err := handle.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, classify(types.StoreTierRemote, "user.get_by_email", err)
	}
	return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	handle, err := resolve(tx, ur.db, types.StoreTierRemote, "user.email_exists")
	if err != nil {
		return false, err
	}
	var count int64
	if err := handle.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, classify(types.StoreTierRemote, "user.email_exists", err)
	}
	return count > 0, nil
}
