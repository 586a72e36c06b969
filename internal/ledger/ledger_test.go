package ledger

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/allocash/internal/lock"
	"github.com/mmynk/allocash/internal/metrics"
	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
	"github.com/mmynk/allocash/internal/storage/sqlite"
)

const user = "user-1"

var today = time.Date(2024, 12, 20, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store   *sqlite.SQLiteStore
	ledger  *Ledger
	account *models.Account
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	account := &models.Account{UserID: user, Name: "Checking"}
	require.NoError(t, store.CreateAccount(context.Background(), account))

	opts = append([]Option{WithClock(func() time.Time { return today })}, opts...)
	return &fixture{store: store, ledger: New(store, opts...), account: account}
}

func (f *fixture) add(t *testing.T, typ models.TransactionType, amount string, cp models.Counterparty) {
	t.Helper()
	f.addTo(t, f.account.ID, typ, amount, cp)
}

func (f *fixture) addTo(t *testing.T, accountID string, typ models.TransactionType, amount string, cp models.Counterparty) {
	t.Helper()
	require.NoError(t, f.store.CreateTransaction(context.Background(), &models.Transaction{
		UserID:    user,
		Type:      typ,
		Category:  "Food",
		Amount:    decimal.RequireFromString(amount),
		Date:      "2024-12-01",
		Person:    cp.Person,
		GroupID:   cp.GroupID,
		AccountID: accountID,
	}))
}

func TestNetBalance(t *testing.T) {
	ctx := context.Background()
	bob := models.Counterparty{Person: "Bob"}

	t.Run("received minus given", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "100", bob)
		f.add(t, models.Expense, "30", bob)

		net, err := f.ledger.NetBalance(ctx, user, bob, "")
		require.NoError(t, err)
		assert.Equal(t, "70", net.String())
	})

	t.Run("account filter", func(t *testing.T) {
		f := newFixture(t)
		cash := &models.Account{UserID: user, Name: "Cash"}
		require.NoError(t, f.store.CreateAccount(ctx, cash))
		f.add(t, models.Income, "100", bob)
		f.addTo(t, cash.ID, models.Expense, "40", bob)

		net, err := f.ledger.NetBalance(ctx, user, bob, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, "-40", net.String())
	})

	t.Run("person match is exact", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "100", bob)

		_, err := f.ledger.NetBalance(ctx, user, models.Counterparty{Person: "bob"}, "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("zero with history is not an error", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "50", bob)
		f.add(t, models.Expense, "50", bob)

		net, err := f.ledger.NetBalance(ctx, user, bob, "")
		require.NoError(t, err)
		assert.True(t, net.IsZero())
	})

	t.Run("no history", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.NetBalance(ctx, user, bob, "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("invalid counterparty", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.NetBalance(ctx, user, models.Counterparty{Person: "Bob", GroupID: "g"}, "")
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = f.ledger.NetBalance(ctx, user, models.Counterparty{}, "")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	bob := models.Counterparty{Person: "Bob"}

	t.Run("positive balance is offset by an expense", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "100", bob)
		f.add(t, models.Expense, "30", bob)

		txn, err := f.ledger.Settle(ctx, user, bob, f.account.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Expense, txn.Type)
		assert.Equal(t, "70", txn.Amount.String())
		assert.Equal(t, models.SettlementCategory, txn.Category)
		assert.Equal(t, "Settled up with Bob", txn.Description)
		assert.Equal(t, "2024-12-20", txn.Date)
		assert.Equal(t, "2024-12", txn.Month)
		assert.Equal(t, "Bob", txn.Person)
		assert.Equal(t, f.account.ID, txn.AccountID)
		assert.NotEmpty(t, txn.ID)

		net, err := f.ledger.NetBalance(ctx, user, bob, "")
		require.NoError(t, err)
		assert.True(t, net.IsZero())
	})

	t.Run("negative balance is offset by an income", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Expense, "200", bob)

		txn, err := f.ledger.Settle(ctx, user, bob, f.account.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Income, txn.Type)
		assert.Equal(t, "200", txn.Amount.String())
	})

	t.Run("second settle is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "10", bob)

		_, err := f.ledger.Settle(ctx, user, bob, f.account.ID)
		require.NoError(t, err)

		_, err = f.ledger.Settle(ctx, user, bob, f.account.ID)
		assert.ErrorIs(t, err, models.ErrAlreadySettled)

		txns, err := f.store.FindTransactions(ctx, storage.ForCounterparty(user, bob, ""))
		require.NoError(t, err)
		assert.Len(t, txns, 2)
	})

	t.Run("balance spans every account", func(t *testing.T) {
		f := newFixture(t)
		cash := &models.Account{UserID: user, Name: "Cash"}
		require.NoError(t, f.store.CreateAccount(ctx, cash))
		f.add(t, models.Income, "100", bob)
		f.addTo(t, cash.ID, models.Expense, "40", bob)

		txn, err := f.ledger.Settle(ctx, user, bob, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, "60", txn.Amount.String())
		assert.Equal(t, cash.ID, txn.AccountID)
	})

	t.Run("no history", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Settle(ctx, user, models.Counterparty{Person: "Nobody"}, f.account.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("missing account", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "10", bob)
		_, err := f.ledger.Settle(ctx, user, bob, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("account of another user", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, models.Income, "10", bob)
		_, err := f.ledger.Settle(ctx, "user-2", bob, f.account.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("group uses the group name", func(t *testing.T) {
		f := newFixture(t)
		group := &models.Group{UserID: user, Name: "Roommates", Members: []string{"Alice", "Bob"}}
		require.NoError(t, f.store.CreateGroup(ctx, group))
		cp := models.Counterparty{GroupID: group.ID}
		f.add(t, models.Expense, "90", cp)

		txn, err := f.ledger.Settle(ctx, user, cp, f.account.ID)
		require.NoError(t, err)
		assert.Equal(t, "Settled up with Roommates", txn.Description)
		assert.Equal(t, models.Income, txn.Type)
		assert.Equal(t, group.ID, txn.GroupID)
		assert.Empty(t, txn.Person)
	})

	t.Run("missing group", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Settle(ctx, user, models.Counterparty{GroupID: "missing"}, f.account.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("missing account id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Settle(ctx, user, bob, "")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("records metrics", func(t *testing.T) {
		f := newFixture(t, WithMetrics(metrics.New()))
		f.add(t, models.Income, "10", bob)
		_, err := f.ledger.Settle(ctx, user, bob, f.account.ID)
		require.NoError(t, err)
	})
}

func TestSettleZeroesRandomHistories(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		f := newFixture(t)
		cp := models.Counterparty{Person: "P"}
		for n := rng.Intn(8) + 1; n > 0; n-- {
			typ := models.Income
			if rng.Intn(2) == 0 {
				typ = models.Expense
			}
			amount := decimal.New(rng.Int63n(1_000_000)+1, -2)
			f.add(t, typ, amount.String(), cp)
		}

		_, err := f.ledger.Settle(ctx, user, cp, f.account.ID)
		if errors.Is(err, models.ErrAlreadySettled) {
			continue
		}
		require.NoError(t, err)

		net, err := f.ledger.NetBalance(ctx, user, cp, "")
		require.NoError(t, err)
		assert.True(t, net.IsZero(), "history %d left %s", i, net)
	}
}

func TestConcurrentSettleWithLock(t *testing.T) {
	ctx := context.Background()
	bob := models.Counterparty{Person: "Bob"}
	f := newFixture(t, WithLocker(lock.NewMemory()))
	f.add(t, models.Income, "70", bob)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ledger.Settle(ctx, user, bob, f.account.ID)
		}(i)
	}
	wg.Wait()

	settled := 0
	for _, err := range errs {
		if err == nil {
			settled++
			continue
		}
		assert.ErrorIs(t, err, models.ErrAlreadySettled)
	}
	assert.Equal(t, 1, settled)

	net, err := f.ledger.NetBalance(ctx, user, bob, "")
	require.NoError(t, err)
	assert.True(t, net.IsZero())
}
