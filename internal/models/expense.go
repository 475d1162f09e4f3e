package models

import "time"

// DateLayout is the storage and form layout of Expense.SpentOn.
const DateLayout = "2006-01-02"

// Expense is a single ledger entry owned by exactly one user.
type Expense struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	SpentOn   time.Time `json:"spent_on"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Amount    int64     `json:"amount"`         // smallest currency unit
	Memo      *string   `json:"memo,omitempty"` // nil when blank
	CreatedAt time.Time `json:"created_at"`
}
