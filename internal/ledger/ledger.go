// Package ledger computes counterparty balances and writes the settlement
// transaction that brings a balance back to zero.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/allocash/internal/calculator"
	"github.com/mmynk/allocash/internal/lock"
	"github.com/mmynk/allocash/internal/metrics"
	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
)

// Ledger reads counterparty history from the store and settles balances.
type Ledger struct {
	store   storage.Store
	locker  lock.Locker
	metrics *metrics.Registry
	now     func() time.Time
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithLocker serializes settle calls per counterparty. Without it settle runs
// unlocked.
func WithLocker(l lock.Locker) Option {
	return func(lg *Ledger) { lg.locker = l }
}

// WithMetrics records settlement outcomes.
func WithMetrics(m *metrics.Registry) Option {
	return func(lg *Ledger) { lg.metrics = m }
}

// WithClock replaces time.Now, which dates settlement transactions.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// New creates a Ledger on top of store.
func New(store storage.Store, opts ...Option) *Ledger {
	lg := &Ledger{
		store:  store,
		locker: lock.Noop{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// NetBalance returns received - given for the counterparty, restricted to
// accountID when it is non-empty. Positive means the counterparty owes the
// user. A counterparty with no matching transaction is ErrNotFound.
func (l *Ledger) NetBalance(ctx context.Context, userID string, cp models.Counterparty, accountID string) (decimal.Decimal, error) {
	if err := cp.Validate(); err != nil {
		return decimal.Zero, err
	}

	txns, err := l.store.FindTransactions(ctx, storage.ForCounterparty(userID, cp, accountID))
	if err != nil {
		return decimal.Zero, err
	}
	if len(txns) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no transactions found for %s", models.ErrNotFound, cp)
	}

	return calculator.NetBalance(txns), nil
}

// Settle inserts the single transaction that zeroes the counterparty's
// balance across all accounts, booked into accountID and dated today.
// It returns ErrAlreadySettled, writing nothing, when the balance is already
// zero.
func (l *Ledger) Settle(ctx context.Context, userID string, cp models.Counterparty, accountID string) (*models.Transaction, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, fmt.Errorf("%w: account_id is required", models.ErrValidation)
	}

	var settlement *models.Transaction
	err := l.locker.WithLock(ctx, lockKey(userID, cp), func(ctx context.Context) error {
		var err error
		settlement, err = l.settle(ctx, userID, cp, accountID)
		return err
	})

	switch {
	case err == nil:
		l.metrics.ObserveSettlement(metrics.OutcomeSettled, string(settlement.Type))
		slog.Info("Balance settled",
			"user_id", userID,
			"counterparty", cp.Key(),
			"type", settlement.Type,
			"amount", settlement.Amount.String(),
			"transaction_id", settlement.ID,
		)
	case errors.Is(err, models.ErrAlreadySettled):
		l.metrics.ObserveSettlement(metrics.OutcomeAlreadySettled, "")
	default:
		l.metrics.ObserveSettlement(metrics.OutcomeFailed, "")
	}

	return settlement, err
}

func (l *Ledger) settle(ctx context.Context, userID string, cp models.Counterparty, accountID string) (*models.Transaction, error) {
	if _, err := l.store.GetAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	name := cp.Person
	if cp.GroupID != "" {
		group, err := l.store.GetGroup(ctx, userID, cp.GroupID)
		if err != nil {
			return nil, err
		}
		name = group.Name
	}

	net, err := l.NetBalance(ctx, userID, cp, "")
	if err != nil {
		return nil, err
	}

	offset, ok := calculator.SettlementFor(net)
	if !ok {
		return nil, fmt.Errorf("%w: balance with %s is already zero", models.ErrAlreadySettled, name)
	}

	txn := &models.Transaction{
		UserID:      userID,
		Type:        offset.Type,
		Category:    models.SettlementCategory,
		Amount:      offset.Amount,
		Description: "Settled up with " + name,
		Date:        l.now().Format(models.DateLayout),
		Person:      cp.Person,
		GroupID:     cp.GroupID,
		AccountID:   accountID,
	}
	if err := l.store.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func lockKey(userID string, cp models.Counterparty) string {
	return "settle:" + userID + ":" + cp.Key()
}
