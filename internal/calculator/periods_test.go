package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/allocash/internal/models"
)

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		period Period
		date   string
		want   string
	}{
		{Daily, "2024-12-05", "2024-12-05"},
		{Monthly, "2024-12-05", "2024-12"},
		{Weekly, "2024-12-05", "2024-W49"},
		// ISO week 1 of 2025 starts on Monday 2024-12-30.
		{Weekly, "2024-12-31", "2025-W01"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period)+"/"+tt.date, func(t *testing.T) {
			got, ok := PeriodKey(tt.period, tt.date)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := PeriodKey(Daily, "not-a-date")
	assert.False(t, ok)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, Monthly, p)

	p, err = ParsePeriod("weekly")
	require.NoError(t, err)
	assert.Equal(t, Weekly, p)

	_, err = ParsePeriod("hourly")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGroupTransactions_ByPeriod(t *testing.T) {
	txns := []*models.Transaction{
		tx(models.Expense, "10", "2024-12-02"),
		tx(models.Expense, "5", "2024-12-08"),
		tx(models.Income, "50", "2024-12-09"),
	}

	weeks := SortedByKey(GroupTransactions(txns, ByPeriod(Weekly)))
	require.Len(t, weeks, 2)
	assert.Equal(t, "2024-W49", weeks[0].Key)
	assert.Equal(t, "-15", weeks[0].Net.String())
	assert.Equal(t, "2024-W50", weeks[1].Key)
	assert.Equal(t, "50", weeks[1].Net.String())
}
