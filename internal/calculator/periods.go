package calculator

import (
	"fmt"
	"time"

	"github.com/mmynk/allocash/internal/models"
)

// Period is the bucket size of a trend series.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod validates a period name. Empty means Monthly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return Monthly, nil
	case Daily, Weekly, Monthly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: period must be one of daily, weekly, monthly", models.ErrValidation)
	}
}

// PeriodKey returns the bucket a YYYY-MM-DD date falls in:
// daily -> YYYY-MM-DD, weekly -> ISO YYYY-Www, monthly -> YYYY-MM.
func PeriodKey(p Period, date string) (string, bool) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", false
	}
	switch p {
	case Daily:
		return d.Format(models.DateLayout), true
	case Weekly:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week), true
	default:
		return d.Format(models.MonthLayout), true
	}
}

// ByPeriod returns a KeyFunc bucketing transactions by p.
func ByPeriod(p Period) KeyFunc {
	return func(t *models.Transaction) (string, bool) {
		return PeriodKey(p, t.Date)
	}
}
