package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType says whether a movement adds to or subtracts from a balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	// DateLayout is the calendar-day format used for Transaction.Date.
	DateLayout = "2006-01-02"

	// MonthLayout is the year-month format used for Transaction.Month.
	MonthLayout = "2006-01"

	// SettlementCategory is assigned to every transaction created by settle.
	SettlementCategory = "Settlement"
)

// Transaction represents one income or expense movement.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// UserID is the owner of the transaction.
	UserID string

	Type TransactionType `validate:"required,oneof=income expense"`

	// Category is a free-text label such as "Rent" or "Salary".
	Category string `validate:"required,max=100"`

	// Amount is always positive. The signed contribution comes from Type.
	Amount decimal.Decimal `validate:"gt=0"`

	Description string `validate:"max=200"`

	// Date is the calendar day of the movement (YYYY-MM-DD).
	Date string `validate:"required,datetime=2006-01-02"`

	// Person is the counterparty name. Mutually exclusive with GroupID.
	Person string `validate:"omitempty,max=100,excluded_with=GroupID"`

	// GroupID links the transaction to a group. Mutually exclusive with Person.
	GroupID string `validate:"omitempty,excluded_with=Person"`

	// AccountID is the account the transaction belongs to.
	AccountID string `validate:"required"`

	// Month is derived from Date (YYYY-MM) and used for monthly grouping.
	Month string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// MonthOf returns the month key (YYYY-MM) of a YYYY-MM-DD date.
func MonthOf(date string) string {
	if len(date) < len(MonthLayout) {
		return ""
	}
	return date[:len(MonthLayout)]
}

// Signed returns the amount with the sign implied by the transaction type.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Counterparty returns the counterparty referenced by the transaction, if any.
func (t *Transaction) Counterparty() (Counterparty, bool) {
	switch {
	case t.Person != "":
		return Counterparty{Person: t.Person}, true
	case t.GroupID != "":
		return Counterparty{GroupID: t.GroupID}, true
	default:
		return Counterparty{}, false
	}
}

// Counterparty identifies who a balance is tracked against: either a person
// name (exact match) or a group ID, never both.
type Counterparty struct {
	Person  string
	GroupID string
}

// Validate checks that exactly one side of the counterparty is set.
func (c Counterparty) Validate() error {
	switch {
	case c.Person == "" && c.GroupID == "":
		return fmt.Errorf("%w: counterparty requires a person or a group_id", ErrValidation)
	case c.Person != "" && c.GroupID != "":
		return fmt.Errorf("%w: counterparty cannot be both a person and a group", ErrValidation)
	}
	return nil
}

// Key returns a stable identifier for the counterparty, used for lock keys
// and log fields.
func (c Counterparty) Key() string {
	if c.GroupID != "" {
		return "group:" + c.GroupID
	}
	return "person:" + c.Person
}

func (c Counterparty) String() string {
	if c.GroupID != "" {
		return "group " + c.GroupID
	}
	return c.Person
}
