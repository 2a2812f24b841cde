package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetAssignment allocates part of a Budget to one spending
// category. It belongs to exactly one Budget and travels with it
// during aggregate sync.
type BudgetAssignment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID  uuid.UUID       `gorm:"type:uuid;index;not null;column:budget_id" json:"budget_id"`
	Category  string          `gorm:"not null;column:category" json:"category"`
	Planned   decimal.Decimal `gorm:"type:numeric;not null;column:planned" json:"planned"`
	Spent     decimal.Decimal `gorm:"type:numeric;not null;column:spent" json:"spent"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (BudgetAssignment) TableName() string {
	return "budget_assignment"
}
