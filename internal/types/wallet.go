package types

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is an aggregate root: pushing or pulling a wallet moves the
// wallet row plus every FinanceTransaction that references it.
// OwnerUserID is uuid.Nil while the device is anonymous.
type Wallet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;column:owner_user_id" json:"owner_user_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Currency    string    `gorm:"size:8;not null;default:IDR;column:currency" json:"currency"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallet"
}
