package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// Transaction is a ledger row. Booking income rows carry the booking id in
// ReferenceID so the ledger and the booking list stay reconcilable.
type Transaction struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	PropertyID  string          `gorm:"index;not null" json:"property_id"`
	Date        string          `gorm:"type:varchar(10);not null" json:"date"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	ReferenceID string          `json:"reference_id,omitempty"`
	StaffName   string          `json:"staff_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
