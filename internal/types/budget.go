package types

import (
	"time"

	"github.com/google/uuid"
)

// Budget is an aggregate root for one month of planned spending.
// Month is stored as "2006-01".
type Budget struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;column:owner_user_id" json:"owner_user_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Month       string    `gorm:"size:7;not null;column:month" json:"month"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Budget) TableName() string {
	return "budget"
}
