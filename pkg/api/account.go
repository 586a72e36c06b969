package api

import "github.com/shopspring/decimal"

type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt int64           `json:"created_at"`
}

type CreateAccountRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type CreateAccountResponse struct {
	Account *Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

// UpdateAccountRequest changes only the fields that are set.
type UpdateAccountRequest struct {
	AccountID string           `json:"account_id"`
	Name      *string          `json:"name,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
}

type UpdateAccountResponse struct {
	Account *Account `json:"account"`
}

type DeleteAccountRequest struct {
	AccountID string `json:"account_id"`
}

type DeleteAccountResponse struct{}
