package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() *Transaction {
	return &Transaction{
		Type:      Expense,
		Category:  "Food",
		Amount:    decimal.RequireFromString("12.50"),
		Date:      "2024-12-05",
		AccountID: "acc-1",
	}
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr string
	}{
		{name: "valid expense", mutate: func(tx *Transaction) {}},
		{name: "valid with person", mutate: func(tx *Transaction) { tx.Person = "Alice" }},
		{name: "valid with group", mutate: func(tx *Transaction) { tx.GroupID = "g1" }},
		{
			name:    "person and group together",
			mutate:  func(tx *Transaction) { tx.Person = "Alice"; tx.GroupID = "g1" },
			wantErr: "both a person and a group",
		},
		{
			name:    "zero amount",
			mutate:  func(tx *Transaction) { tx.Amount = decimal.Zero },
			wantErr: "amount must be positive",
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-5) },
			wantErr: "amount must be positive",
		},
		{
			name:    "blank category",
			mutate:  func(tx *Transaction) { tx.Category = "   " },
			wantErr: "category is required",
		},
		{
			name:    "malformed date",
			mutate:  func(tx *Transaction) { tx.Date = "05/12/2024" },
			wantErr: "date must be in YYYY-MM-DD format",
		},
		{
			name:    "unknown type",
			mutate:  func(tx *Transaction) { tx.Type = "transfer" },
			wantErr: "type must be one of",
		},
		{
			name:    "missing account",
			mutate:  func(tx *Transaction) { tx.AccountID = "" },
			wantErr: "account_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(tx)

			err := ValidateTransaction(tx)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTransaction_Normalizes(t *testing.T) {
	tx := validTransaction()
	tx.Category = "  Rent "
	tx.Person = " Bob "
	tx.Date = "2024-02-29"

	require.NoError(t, ValidateTransaction(tx))
	assert.Equal(t, "Rent", tx.Category)
	assert.Equal(t, "Bob", tx.Person)
	assert.Equal(t, "2024-02", tx.Month)
}

func TestValidateGroup(t *testing.T) {
	g := &Group{Name: " Roommates ", Members: []string{"Charlie", "Alice", "Charlie", "Bob"}}
	require.NoError(t, ValidateGroup(g))
	assert.Equal(t, "Roommates", g.Name)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, g.Members)

	err := ValidateGroup(&Group{Name: "Empty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateGroup(&Group{Members: []string{"Alice"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateAccount(t *testing.T) {
	require.NoError(t, ValidateAccount(&Account{Name: "Checking"}))
	assert.ErrorIs(t, ValidateAccount(&Account{Name: " "}), ErrValidation)
}

func TestCounterparty(t *testing.T) {
	assert.ErrorIs(t, Counterparty{}.Validate(), ErrValidation)
	assert.ErrorIs(t, Counterparty{Person: "Alice", GroupID: "g1"}.Validate(), ErrValidation)
	assert.NoError(t, Counterparty{Person: "Alice"}.Validate())
	assert.NoError(t, Counterparty{GroupID: "g1"}.Validate())

	assert.Equal(t, "person:Alice", Counterparty{Person: "Alice"}.Key())
	assert.Equal(t, "group:g1", Counterparty{GroupID: "g1"}.Key())
}

func TestSigned(t *testing.T) {
	in := &Transaction{Type: Income, Amount: decimal.NewFromInt(100)}
	out := &Transaction{Type: Expense, Amount: decimal.NewFromInt(30)}
	assert.True(t, in.Signed().Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Signed().Equal(decimal.NewFromInt(-30)))
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, "2024-12", MonthOf("2024-12-01"))
	assert.Equal(t, "", MonthOf("2024"))
	assert.NoError(t, ValidateMonth("2024-12"))
	assert.ErrorIs(t, ValidateMonth("2024-13"), ErrValidation)
	assert.NoError(t, ValidateDate("start_date", "2024-01-31"))
	assert.ErrorIs(t, ValidateDate("start_date", "2024-01-32"), ErrValidation)
}
