package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/allocash/pkg/api"
)

func TestCreateTransaction(t *testing.T) {
	ts := setupTestServer(t)
	c := ts.clientsFor(t, "user-1")
	ctx := context.Background()
	account := c.createAccount(t, "Checking")

	t.Run("derives month and trims text", func(t *testing.T) {
		txn := c.createTxn(t, &api.CreateTransactionRequest{
			Type: "income", Category: "  Salary ", Amount: dec("5000"), Date: "2024-12-01", AccountID: account.ID,
		})
		assert.NotEmpty(t, txn.ID)
		assert.Equal(t, "Salary", txn.Category)
		assert.Equal(t, "2024-12", txn.Month)
	})

	tests := []struct {
		name string
		req  *api.CreateTransactionRequest
		code connect.Code
		msg  string
	}{
		{
			name: "person and group together",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("10"), Date: "2024-12-01", Person: "Bob", GroupID: "g1", AccountID: account.ID},
			code: connect.CodeInvalidArgument,
			msg:  "cannot be linked to both a person and a group",
		},
		{
			name: "non-positive amount",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("0"), Date: "2024-12-01", AccountID: account.ID},
			code: connect.CodeInvalidArgument,
			msg:  "amount must be positive",
		},
		{
			name: "bad date",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("1"), Date: "12/01/2024", AccountID: account.ID},
			code: connect.CodeInvalidArgument,
			msg:  "date must be in YYYY-MM-DD format",
		},
		{
			name: "unknown type",
			req:  &api.CreateTransactionRequest{Type: "transfer", Category: "Food", Amount: dec("1"), Date: "2024-12-01", AccountID: account.ID},
			code: connect.CodeInvalidArgument,
			msg:  "type must be one of",
		},
		{
			name: "blank category",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "   ", Amount: dec("1"), Date: "2024-12-01", AccountID: account.ID},
			code: connect.CodeInvalidArgument,
			msg:  "category is required",
		},
		{
			name: "missing account",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("1"), Date: "2024-12-01", AccountID: "missing"},
			code: connect.CodeNotFound,
		},
		{
			name: "missing group",
			req:  &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("1"), Date: "2024-12-01", GroupID: "missing", AccountID: account.ID},
			code: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.transactions.CreateTransaction(ctx, connect.NewRequest(tt.req))
			requireCode(t, tt.code, err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	account := c.createAccount(t, "Checking")
	txn := c.createTxn(t, &api.CreateTransactionRequest{
		Type: "expense", Category: "Food", Amount: dec("12.5"), Date: "2024-11-30", Person: "Bob", AccountID: account.ID,
	})

	t.Run("date change recomputes month", func(t *testing.T) {
		date := "2024-12-01"
		resp, err := c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			TransactionID: txn.ID,
			Date:          &date,
		}))
		require.NoError(t, err)
		assert.Equal(t, "2024-12", resp.Msg.Transaction.Month)
		assert.Equal(t, "Bob", resp.Msg.Transaction.Person)
		assert.True(t, resp.Msg.Transaction.Amount.Equal(dec("12.5")))
	})

	t.Run("merged record is re-validated", func(t *testing.T) {
		group, err := c.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "G", Members: []string{"A"}}))
		require.NoError(t, err)

		groupID := group.Msg.Group.ID
		_, err = c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			TransactionID: txn.ID,
			GroupID:       &groupID,
		}))
		requireCode(t, connect.CodeInvalidArgument, err)

		empty := ""
		resp, err := c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			TransactionID: txn.ID,
			Person:        &empty,
			GroupID:       &groupID,
		}))
		require.NoError(t, err)
		assert.Empty(t, resp.Msg.Transaction.Person)
		assert.Equal(t, groupID, resp.Msg.Transaction.GroupID)
	})

	t.Run("moving to a missing account", func(t *testing.T) {
		missing := "missing"
		_, err := c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			TransactionID: txn.ID,
			AccountID:     &missing,
		}))
		requireCode(t, connect.CodeNotFound, err)
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, err := c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{TransactionID: txn.ID}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		category := "x"
		_, err := c.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{TransactionID: "missing", Category: &category}))
		requireCode(t, connect.CodeNotFound, err)
	})
}

func TestListTransactions(t *testing.T) {
	ts := setupTestServer(t)
	c := ts.clientsFor(t, "user-1")
	ctx := context.Background()
	account := c.createAccount(t, "Checking")

	c.createTxn(t, &api.CreateTransactionRequest{Type: "income", Category: "Salary", Amount: dec("5000"), Date: "2024-12-01", AccountID: account.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "expense", Category: "Rent", Amount: dec("1500"), Date: "2024-12-05", AccountID: account.ID})
	c.createTxn(t, &api.CreateTransactionRequest{Type: "expense", Category: "Food", Amount: dec("150"), Description: "Groceries", Date: "2024-12-10", Person: "Bob", AccountID: account.ID})

	list := func(t *testing.T, req *api.ListTransactionsRequest) []*api.Transaction {
		t.Helper()
		resp, err := c.transactions.ListTransactions(ctx, connect.NewRequest(req))
		require.NoError(t, err)
		return resp.Msg.Transactions
	}

	t.Run("newest first by default", func(t *testing.T) {
		txns := list(t, &api.ListTransactionsRequest{})
		require.Len(t, txns, 3)
		assert.Equal(t, "Food", txns[0].Category)
		assert.Equal(t, "Salary", txns[2].Category)
	})

	t.Run("filters combine", func(t *testing.T) {
		txns := list(t, &api.ListTransactionsRequest{Type: "expense", Month: "2024-12", Search: "grocer"})
		require.Len(t, txns, 1)
		assert.Equal(t, "Bob", txns[0].Person)
	})

	t.Run("amount sort and limit", func(t *testing.T) {
		txns := list(t, &api.ListTransactionsRequest{Sort: "amount_asc", Limit: 2})
		require.Len(t, txns, 2)
		assert.Equal(t, "Food", txns[0].Category)
		assert.Equal(t, "Rent", txns[1].Category)
	})

	invalid := map[string]*api.ListTransactionsRequest{
		"limit too large":  {Limit: 1001},
		"negative limit":   {Limit: -1},
		"bad month":        {Month: "2024-13"},
		"bad start date":   {StartDate: "yesterday"},
		"bad sort":         {Sort: "random"},
		"bad type":         {Type: "transfer"},
		"person and group": {Person: "Bob", GroupID: "g"},
	}
	for name, req := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := c.transactions.ListTransactions(ctx, connect.NewRequest(req))
			requireCode(t, connect.CodeInvalidArgument, err)
		})
	}

	t.Run("other users see nothing", func(t *testing.T) {
		other := ts.clientsFor(t, "user-2")
		resp, err := other.transactions.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{}))
		require.NoError(t, err)
		assert.Empty(t, resp.Msg.Transactions)
	})
}

func TestDeleteTransaction(t *testing.T) {
	c := setupTestServer(t).clientsFor(t, "user-1")
	ctx := context.Background()
	account := c.createAccount(t, "Checking")
	txn := c.createTxn(t, &api.CreateTransactionRequest{Type: "income", Category: "Gift", Amount: dec("1"), Date: "2024-12-01", AccountID: account.ID})

	_, err := c.transactions.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{TransactionID: txn.ID}))
	require.NoError(t, err)

	_, err = c.transactions.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{TransactionID: txn.ID}))
	requireCode(t, connect.CodeNotFound, err)
}
