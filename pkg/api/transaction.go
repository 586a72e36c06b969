package api

import "github.com/shopspring/decimal"

type Transaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Month       string          `json:"month"`
	Person      string          `json:"person,omitempty"`
	GroupID     string          `json:"group_id,omitempty"`
	AccountID   string          `json:"account_id"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Person      string          `json:"person,omitempty"`
	GroupID     string          `json:"group_id,omitempty"`
	AccountID   string          `json:"account_id"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// ListTransactionsRequest filters transactions. Empty fields do not filter.
type ListTransactionsRequest struct {
	AccountID string `json:"account_id,omitempty"`
	Type      string `json:"type,omitempty"`
	Category  string `json:"category,omitempty"`
	Month     string `json:"month,omitempty"`
	Person    string `json:"person,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Search    string `json:"search,omitempty"`

	// Sort is date_desc (default), date_asc, amount_desc or amount_asc.
	Sort string `json:"sort,omitempty"`

	// Limit defaults to 100 and must be within 1..1000.
	Limit int `json:"limit,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

// UpdateTransactionRequest changes only the fields that are set. Setting
// person or group_id to "" unlinks the counterparty.
type UpdateTransactionRequest struct {
	TransactionID string           `json:"transaction_id"`
	Type          *string          `json:"type,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Person        *string          `json:"person,omitempty"`
	GroupID       *string          `json:"group_id,omitempty"`
	AccountID     *string          `json:"account_id,omitempty"`
}

type UpdateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

type DeleteTransactionResponse struct{}
