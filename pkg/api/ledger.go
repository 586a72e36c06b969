package api

import "github.com/shopspring/decimal"

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []string `json:"people"`
}

// GetBalanceRequest names exactly one of Person and GroupID. AccountID
// optionally restricts the balance to one account.
type GetBalanceRequest struct {
	Person    string `json:"person,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

// GetBalanceResponse carries received - given. Positive means the
// counterparty owes the caller.
type GetBalanceResponse struct {
	Person     string          `json:"person,omitempty"`
	GroupID    string          `json:"group_id,omitempty"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// SettleRequest names exactly one of Person and GroupID, and the account the
// settlement is booked into.
type SettleRequest struct {
	Person    string `json:"person,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	AccountID string `json:"account_id"`
}

type SettleResponse struct {
	Transaction *Transaction `json:"transaction"`
}
