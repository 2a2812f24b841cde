package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// FinanceTransaction belongs to exactly one Wallet and travels with it
// during aggregate sync.
type FinanceTransaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WalletID   uuid.UUID       `gorm:"type:uuid;index;not null;column:wallet_id" json:"wallet_id"`
	Kind       TransactionKind `gorm:"size:16;not null;column:kind" json:"kind"`
	Amount     decimal.Decimal `gorm:"type:numeric;not null;column:amount" json:"amount"`
	Note       string          `gorm:"column:note" json:"note"`
	OccurredAt time.Time       `gorm:"not null;column:occurred_at" json:"occurred_at"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

func (FinanceTransaction) TableName() string {
	return "finance_transaction"
}

// WalletSummary is the per-wallet aggregation returned by the
// transaction adapters.
type WalletSummary struct {
	WalletID     uuid.UUID       `json:"wallet_id"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}
