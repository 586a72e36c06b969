package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/internal/calculator"
	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
	"github.com/mmynk/allocash/pkg/api"
	"github.com/mmynk/allocash/pkg/api/apiconnect"
)

// StatsService implements the Connect StatsService. Every statistic is a
// grouped signed sum over the caller's transactions.
type StatsService struct {
	apiconnect.UnimplementedStatsServiceHandler
	store storage.Store
	now   func() time.Time
}

// NewStatsService creates a new StatsService with the given storage backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// GetMonthlyStats returns income, expense and net per month, oldest first.
func (s *StatsService) GetMonthlyStats(ctx context.Context, req *connect.Request[api.GetMonthlyStatsRequest]) (*connect.Response[api.GetMonthlyStatsResponse], error) {
	txns, err := s.load(ctx, storage.TransactionFilter{AccountID: req.Msg.AccountID})
	if err != nil {
		return nil, err
	}

	totals := calculator.SortedByKey(calculator.GroupTransactions(txns, calculator.ByMonth))
	months := make([]*api.MonthlyStat, len(totals))
	for i, t := range totals {
		months[i] = &api.MonthlyStat{Month: t.Key, Income: t.Income, Expense: t.Expense, Net: t.Net}
	}

	return connect.NewResponse(&api.GetMonthlyStatsResponse{Months: months}), nil
}

// GetCategoryStats returns the total per category for one transaction type,
// largest first.
func (s *StatsService) GetCategoryStats(ctx context.Context, req *connect.Request[api.GetCategoryStatsRequest]) (*connect.Response[api.GetCategoryStatsResponse], error) {
	typ := models.TransactionType(req.Msg.Type)
	if typ != models.Income && typ != models.Expense {
		return nil, toConnectError(fmt.Errorf("%w: type must be one of [income expense]", models.ErrValidation))
	}
	if req.Msg.Month != "" {
		if err := models.ValidateMonth(req.Msg.Month); err != nil {
			return nil, toConnectError(err)
		}
	}

	txns, err := s.load(ctx, storage.TransactionFilter{AccountID: req.Msg.AccountID, Type: typ, Month: req.Msg.Month})
	if err != nil {
		return nil, err
	}

	totals := calculator.SortedByKey(calculator.GroupTransactions(txns, calculator.ByCategory))
	categories := make([]*api.CategoryStat, len(totals))
	for i, t := range totals {
		value := t.Income
		if typ == models.Expense {
			value = t.Expense
		}
		categories[i] = &api.CategoryStat{Name: t.Key, Value: value, Count: t.Count}
	}
	// Stable so equal values stay ordered by name.
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Value.GreaterThan(categories[j].Value)
	})

	return connect.NewResponse(&api.GetCategoryStatsResponse{Categories: categories}), nil
}

// GetTrends returns income, expense and net per day, ISO week or month within
// an optional date range, oldest first.
func (s *StatsService) GetTrends(ctx context.Context, req *connect.Request[api.GetTrendsRequest]) (*connect.Response[api.GetTrendsResponse], error) {
	period, err := calculator.ParsePeriod(req.Msg.Period)
	if err != nil {
		return nil, toConnectError(err)
	}
	for field, value := range map[string]string{"start_date": req.Msg.StartDate, "end_date": req.Msg.EndDate} {
		if value == "" {
			continue
		}
		if err := models.ValidateDate(field, value); err != nil {
			return nil, toConnectError(err)
		}
	}

	txns, err := s.load(ctx, storage.TransactionFilter{
		AccountID: req.Msg.AccountID,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
	})
	if err != nil {
		return nil, err
	}

	totals := calculator.SortedByKey(calculator.GroupTransactions(txns, calculator.ByPeriod(period)))
	points := make([]*api.TrendPoint, len(totals))
	for i, t := range totals {
		points[i] = &api.TrendPoint{Date: t.Key, Income: t.Income, Expense: t.Expense, Net: t.Net}
	}

	return connect.NewResponse(&api.GetTrendsResponse{Points: points}), nil
}

// GetDashboard returns the totals of the current calendar month.
func (s *StatsService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	month := s.now().Format(models.MonthLayout)

	txns, err := s.load(ctx, storage.TransactionFilter{AccountID: req.Msg.AccountID, Month: month})
	if err != nil {
		return nil, err
	}

	sum := calculator.Sum(txns)
	return connect.NewResponse(&api.GetDashboardResponse{
		Month:            month,
		TotalIncome:      sum.Income,
		TotalExpenses:    sum.Expense,
		Balance:          sum.Net,
		TransactionCount: sum.Count,
	}), nil
}

// GetPeopleStats returns given, received and net per person, by name.
func (s *StatsService) GetPeopleStats(ctx context.Context, req *connect.Request[api.GetPeopleStatsRequest]) (*connect.Response[api.GetPeopleStatsResponse], error) {
	txns, err := s.load(ctx, storage.TransactionFilter{AccountID: req.Msg.AccountID})
	if err != nil {
		return nil, err
	}

	totals := calculator.SortedByKey(calculator.GroupTransactions(txns, calculator.ByPerson))
	people := make([]*api.PersonStat, len(totals))
	for i, t := range totals {
		people[i] = &api.PersonStat{
			Name:             t.Key,
			TotalGiven:       t.Expense,
			TotalReceived:    t.Income,
			NetBalance:       t.Net,
			TransactionCount: t.Count,
		}
	}

	return connect.NewResponse(&api.GetPeopleStatsResponse{People: people}), nil
}

// GetGroupSummaries returns every group with its net balance.
func (s *StatsService) GetGroupSummaries(ctx context.Context, req *connect.Request[api.GetGroupSummariesRequest]) (*connect.Response[api.GetGroupSummariesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	txns, err := s.load(ctx, storage.TransactionFilter{AccountID: req.Msg.AccountID})
	if err != nil {
		return nil, err
	}
	totals := calculator.GroupTransactions(txns, calculator.ByGroup)

	summaries := make([]*api.GroupSummary, len(groups))
	for i, g := range groups {
		summary := &api.GroupSummary{ID: g.ID, Name: g.Name, Members: g.Members}
		if t, ok := totals[g.ID]; ok {
			summary.NetBalance = t.Net
			summary.TransactionCount = t.Count
		}
		summaries[i] = summary
	}

	return connect.NewResponse(&api.GetGroupSummariesResponse{Groups: summaries}), nil
}

// load fetches the caller's transactions matching filter, unbounded.
func (s *StatsService) load(ctx context.Context, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	filter.UserID = userID

	txns, err := s.store.FindTransactions(ctx, filter)
	if err != nil {
		return nil, toConnectError(err)
	}
	return txns, nil
}
