// Package schedule expands an obligation definition into dated drafts. It has
// no side effects; persisting the drafts is the caller's job.
package schedule

import (
	"fmt"
	"time"

	"Paydue/internal/pkg"

	"github.com/shopspring/decimal"
)

type Plan struct {
	Amount          decimal.Decimal
	OccurrenceCount int
	StartDate       time.Time
}

type Draft struct {
	Index   int
	DueDate time.Time
	Amount  decimal.Decimal
}

// Generate returns exactly OccurrenceCount drafts one calendar month apart,
// starting at StartDate. Day of month is clamped per target month.
func Generate(plan Plan) ([]Draft, error) {
	if plan.OccurrenceCount < 1 {
		return nil, fmt.Errorf("occurrence count must be at least 1, got %d", plan.OccurrenceCount)
	}
	if plan.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}

	start := pkg.Date(plan.StartDate)
	drafts := make([]Draft, 0, plan.OccurrenceCount)
	for i := 0; i < plan.OccurrenceCount; i++ {
		drafts = append(drafts, Draft{
			Index:   i,
			DueDate: pkg.AddCalendarMonths(start, i),
			Amount:  plan.Amount,
		})
	}
	return drafts, nil
}
