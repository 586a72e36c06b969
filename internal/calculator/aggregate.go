package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/allocash/internal/models"
)

// Entry is one (key, type, amount) triple fed into Aggregate.
type Entry struct {
	Key    string
	Type   models.TransactionType
	Amount decimal.Decimal
}

// Totals is the grouped signed sum for one key.
type Totals struct {
	Key     string
	Income  decimal.Decimal // Σ amount where type=income
	Expense decimal.Decimal // Σ amount where type=expense
	Net     decimal.Decimal // Income - Expense
	Count   int
}

// Add accumulates one movement into the totals.
func (t *Totals) Add(typ models.TransactionType, amount decimal.Decimal) {
	switch typ {
	case models.Income:
		t.Income = t.Income.Add(amount)
	case models.Expense:
		t.Expense = t.Expense.Add(amount)
	default:
		return
	}
	t.Net = t.Income.Sub(t.Expense)
	t.Count++
}

// Aggregate is the grouped signed sum every balance and statistic is built on.
// Entries with an unknown type are ignored.
func Aggregate(entries []Entry) map[string]*Totals {
	out := make(map[string]*Totals)
	for _, e := range entries {
		t, ok := out[e.Key]
		if !ok {
			t = &Totals{Key: e.Key}
			out[e.Key] = t
		}
		t.Add(e.Type, e.Amount)
	}
	return out
}

// KeyFunc extracts the grouping key of a transaction. Returning false skips it.
type KeyFunc func(t *models.Transaction) (string, bool)

// GroupTransactions aggregates transactions by keyFn.
func GroupTransactions(txns []*models.Transaction, keyFn KeyFunc) map[string]*Totals {
	entries := make([]Entry, 0, len(txns))
	for _, t := range txns {
		key, ok := keyFn(t)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Type: t.Type, Amount: t.Amount})
	}
	return Aggregate(entries)
}

// Sum aggregates every transaction under a single key.
func Sum(txns []*models.Transaction) Totals {
	totals := GroupTransactions(txns, func(*models.Transaction) (string, bool) { return "", true })
	if t, ok := totals[""]; ok {
		return *t
	}
	return Totals{}
}

// SortedByKey returns the totals ordered by key ascending.
func SortedByKey(totals map[string]*Totals) []Totals {
	out := make([]Totals, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ByMonth groups by the transaction's month key.
func ByMonth(t *models.Transaction) (string, bool) {
	return t.Month, t.Month != ""
}

// ByCategory groups by category.
func ByCategory(t *models.Transaction) (string, bool) {
	return t.Category, true
}

// ByPerson groups by person, skipping transactions without one.
func ByPerson(t *models.Transaction) (string, bool) {
	return t.Person, t.Person != ""
}

// ByGroup groups by group ID, skipping transactions without one.
func ByGroup(t *models.Transaction) (string, bool) {
	return t.GroupID, t.GroupID != ""
}
