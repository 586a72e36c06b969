package storage

import "github.com/mmynk/allocash/internal/models"

// Sort orders for FindTransactions.
const (
	SortDateDesc   = "date_desc"
	SortDateAsc    = "date_asc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"
)

// TransactionFilter is a conjunction of predicates. Zero-valued fields do not
// filter. UserID is always required.
type TransactionFilter struct {
	UserID    string
	AccountID string
	Person    string
	GroupID   string
	Type      models.TransactionType
	Category  string
	Month     string

	// StartDate and EndDate bound Date inclusively (YYYY-MM-DD).
	StartDate string
	EndDate   string

	// Search matches description, category or person, case-insensitively.
	Search string

	// Sort is one of the Sort* constants; empty means SortDateDesc.
	Sort string

	// Limit caps the result size; 0 means no limit.
	Limit int
}

// ForCounterparty returns a filter selecting a counterparty's transactions.
func ForCounterparty(userID string, cp models.Counterparty, accountID string) TransactionFilter {
	return TransactionFilter{
		UserID:    userID,
		AccountID: accountID,
		Person:    cp.Person,
		GroupID:   cp.GroupID,
	}
}

// ValidSort reports whether s is a known sort order.
func ValidSort(s string) bool {
	switch s {
	case "", SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return true
	}
	return false
}
