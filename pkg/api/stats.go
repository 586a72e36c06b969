package api

import "github.com/shopspring/decimal"

type MonthlyStat struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type GetMonthlyStatsRequest struct {
	AccountID string `json:"account_id,omitempty"`
}

type GetMonthlyStatsResponse struct {
	Months []*MonthlyStat `json:"months"`
}

type CategoryStat struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

type GetCategoryStatsRequest struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id,omitempty"`
	Month     string `json:"month,omitempty"`
}

type GetCategoryStatsResponse struct {
	Categories []*CategoryStat `json:"categories"`
}

type TrendPoint struct {
	// Date is YYYY-MM-DD, YYYY-Www or YYYY-MM depending on the period.
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type GetTrendsRequest struct {
	// Period is daily, weekly or monthly (default).
	Period    string `json:"period,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

type GetTrendsResponse struct {
	Points []*TrendPoint `json:"points"`
}

type GetDashboardRequest struct {
	AccountID string `json:"account_id,omitempty"`
}

type GetDashboardResponse struct {
	Month            string          `json:"month"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
}

type PersonStat struct {
	Name             string          `json:"name"`
	TotalGiven       decimal.Decimal `json:"total_given"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TransactionCount int             `json:"transaction_count"`
}

type GetPeopleStatsRequest struct {
	AccountID string `json:"account_id,omitempty"`
}

type GetPeopleStatsResponse struct {
	People []*PersonStat `json:"people"`
}

type GroupSummary struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Members          []string        `json:"members"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TransactionCount int             `json:"transaction_count"`
}

type GetGroupSummariesRequest struct {
	AccountID string `json:"account_id,omitempty"`
}

type GetGroupSummariesResponse struct {
	Groups []*GroupSummary `json:"groups"`
}
