package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/allocash/pkg/api"
)

// seedStats loads the December 2024 scenario: 5500 income against 1200 rent
// and 450 of food, plus one January transaction.
func seedStats(t *testing.T, c *clients) (checking, cash *api.Account, group *api.Group) {
	t.Helper()
	checking = c.createAccount(t, "Checking")
	cash = c.createAccount(t, "Cash")

	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name: "Roommates", Members: []string{"Alice", "Bob"},
	}))
	require.NoError(t, err)
	group = resp.Msg.Group

	c.createTxn(t, &api.CreateTransactionRequest{Type: "income", Category: "Salary", Amount: dec("5500"), Date: "2024-12-01", AccountID: checking.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "expense", Category: "Rent", Amount: dec("1200"), Date: "2024-12-01", GroupID: group.ID, AccountID: checking.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("300"), Date: "2024-12-05", Person: "Bob", AccountID: cash.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("150"), Date: "2024-12-16", Person: "Alice", AccountID: cash.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "income", Category: "Refund", Amount: dec("40"), Date: "2025-01-02", Person: "Bob", AccountID: cash.ID})
	return checking, cash, group
}

func TestGetMonthlyStats(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	_, cash, _ := seedStats(t, c)

	resp, err := c.stats.GetMonthlyStats(ctx, connect.NewRequest(&api.GetMonthlyStatsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Months, 2)

	december := resp.Msg.Months[0]
	assert.Equal(t, "2024-12", december.Month)
	assert.Equal(t, "5500", december.Income.String())
	assert.Equal(t, "1650", december.Expense.String())
	assert.Equal(t, "3850", december.Net.String())
	assert.Equal(t, "2025-01", resp.Msg.Months[1].Month)

	byAccount, err := c.stats.GetMonthlyStats(ctx, connect.NewRequest(&api.GetMonthlyStatsRequest{AccountID: cash.ID}))
	require.NoError(t, err)
	require.Len(t, byAccount.Msg.Months, 2)
	assert.Equal(t, "-450", byAccount.Msg.Months[0].Net.String())
}

func TestGetCategoryStats(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	seedStats(t, c)

	resp, err := c.stats.GetCategoryStats(ctx, connect.NewRequest(&api.GetCategoryStatsRequest{Type: "expense"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Categories, 2)
	assert.Equal(t, "Rent", resp.Msg.Categories[0].Name)
	assert.Equal(t, "1200", resp.Msg.Categories[0].Value.String())
	assert.Equal(t, "Food", resp.Msg.Categories[1].Name)
	assert.Equal(t, "450", resp.Msg.Categories[1].Value.String())
	assert.Equal(t, 2, resp.Msg.Categories[1].Count)

	income, err := c.stats.GetCategoryStats(ctx, connect.NewRequest(&api.GetCategoryStatsRequest{Type: "income", Month: "2025-01"}))
	require.NoError(t, err)
	require.Len(t, income.Msg.Categories, 1)
	assert.Equal(t, "Refund", income.Msg.Categories[0].Name)

	_, err = c.stats.GetCategoryStats(ctx, connect.NewRequest(&api.GetCategoryStatsRequest{}))
	requireCode(t, connect.CodeInvalidArgument, err)
}

func TestGetTrends(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	seedStats(t, c)

	t.Run("weekly", func(t *testing.T) {
		resp, err := c.stats.GetTrends(ctx, connect.NewRequest(&api.GetTrendsRequest{
			Period:    "weekly",
			StartDate: "2024-12-01",
			EndDate:   "2024-12-31",
		}))
		require.NoError(t, err)

		keys := make([]string, len(resp.Msg.Points))
		for i, p := range resp.Msg.Points {
			keys[i] = p.Date
		}
		// 2024-12-01 is a Sunday, so it closes ISO week 48.
		assert.Equal(t, []string{"2024-W48", "2024-W49", "2024-W51"}, keys)
		assert.Equal(t, "4300", resp.Msg.Points[0].Net.String())
	})

	t.Run("monthly by default", func(t *testing.T) {
		resp, err := c.stats.GetTrends(ctx, connect.NewRequest(&api.GetTrendsRequest{}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Points, 2)
		assert.Equal(t, "2024-12", resp.Msg.Points[0].Date)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := c.stats.GetTrends(ctx, connect.NewRequest(&api.GetTrendsRequest{Period: "hourly"}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := c.stats.GetTrends(ctx, connect.NewRequest(&api.GetTrendsRequest{EndDate: "2024-02-30"}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})
}

func TestGetDashboard(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	seedStats(t, c)

	resp, err := c.stats.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "2024-12", resp.Msg.Month)
	assert.Equal(t, "5500", resp.Msg.TotalIncome.String())
	assert.Equal(t, "1650", resp.Msg.TotalExpenses.String())
	assert.Equal(t, "3850", resp.Msg.Balance.String())
	assert.Equal(t, 4, resp.Msg.TransactionCount)

	empty, err := setupTestServer(t).clientsFor(t, "user-1").stats.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	require.NoError(t, err)
	assert.True(t, empty.Msg.Balance.IsZero())
	assert.Zero(t, empty.Msg.TransactionCount)
}

func TestGetPeopleStats(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	seedStats(t, c)

	resp, err := c.stats.GetPeopleStats(context.Background(), connect.NewRequest(&api.GetPeopleStatsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.People, 2)

	alice, bob := resp.Msg.People[0], resp.Msg.People[1]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "150", alice.TotalGiven.String())
	assert.Equal(t, "-150", alice.NetBalance.String())

	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, "300", bob.TotalGiven.String())
	assert.Equal(t, "40", bob.TotalReceived.String())
	assert.Equal(t, "-260", bob.NetBalance.String())
	assert.Equal(t, 2, bob.TransactionCount)
}

func TestGetGroupSummaries(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	_, _, group := seedStats(t, c)

	_, err := c.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Idle", Members: []string{"Zed"}}))
	require.NoError(t, err)

	resp, err := c.stats.GetGroupSummaries(ctx, connect.NewRequest(&api.GetGroupSummariesRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 2)

	idle, roommates := resp.Msg.Groups[0], resp.Msg.Groups[1]
	assert.Equal(t, "Idle", idle.Name)
	assert.True(t, idle.NetBalance.IsZero())
	assert.Zero(t, idle.TransactionCount)

	assert.Equal(t, group.ID, roommates.ID)
	assert.Equal(t, []string{"Alice", "Bob"}, roommates.Members)
	assert.Equal(t, "-1200", roommates.NetBalance.String())
	assert.Equal(t, 1, roommates.TransactionCount)
}
