package models

import "github.com/shopspring/decimal"

// Account is a named bucket owned by a user. Every transaction belongs to
// exactly one account; deleting an account deletes its transactions.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	UserID string

	// Name is the display name (e.g., "Checking", "Cash").
	Name string `validate:"required,max=100"`

	// Balance is the opening balance entered by the user. It is informational
	// and never recomputed from transactions.
	Balance decimal.Decimal

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
