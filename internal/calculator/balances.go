package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/allocash/internal/models"
)

// Tolerance is the absolute distance from zero under which a balance counts
// as settled.
var Tolerance = decimal.New(1, -9)

// NetBalance computes received - given over the transactions:
// Positive = counterparty owes the user, Negative = the user owes the counterparty.
func NetBalance(txns []*models.Transaction) decimal.Decimal {
	return Sum(txns).Net
}

// IsSettled reports whether the balance is zero within Tolerance.
func IsSettled(net decimal.Decimal) bool {
	return net.Abs().LessThan(Tolerance)
}

// Settlement is the single movement that brings a balance back to zero.
type Settlement struct {
	Type   models.TransactionType
	Amount decimal.Decimal
}

// SettlementFor returns the movement that offsets net, and false when net is
// already settled.
//
// A negative balance means the user has given more than received, so the
// offset is an income; a positive balance is offset by an expense. Either way
// recomputing the balance with the offset included yields zero.
func SettlementFor(net decimal.Decimal) (Settlement, bool) {
	if IsSettled(net) {
		return Settlement{}, false
	}
	typ := models.Expense
	if net.IsNegative() {
		typ = models.Income
	}
	return Settlement{Type: typ, Amount: net.Abs()}, true
}
