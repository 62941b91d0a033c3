package schedule_test

import (
	"testing"
	"time"

	"Paydue/internal/domain/schedule"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateLeapYearClamp(t *testing.T) {
	t.Parallel()

	drafts, err := schedule.Generate(schedule.Plan{
		Amount:          decimal.NewFromInt(300),
		OccurrenceCount: 3,
		StartDate:       day(2024, 1, 31),
	})
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	assert.Equal(t, day(2024, 1, 31), drafts[0].DueDate)
	assert.Equal(t, day(2024, 2, 29), drafts[1].DueDate)
	assert.Equal(t, day(2024, 3, 31), drafts[2].DueDate)
	for i, d := range drafts {
		assert.Equal(t, i, d.Index)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(300)))
	}
}

func TestGenerateOnce(t *testing.T) {
	t.Parallel()

	drafts, err := schedule.Generate(schedule.Plan{
		Amount:          decimal.NewFromInt(1000),
		OccurrenceCount: 1,
		StartDate:       day(2024, 5, 10),
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, day(2024, 5, 10), drafts[0].DueDate)
}

func TestGenerateMonthlySpacing(t *testing.T) {
	t.Parallel()

	starts := []time.Time{
		day(2023, 1, 31),
		day(2024, 8, 30),
		day(2024, 12, 29),
		day(2025, 3, 1),
	}

	for _, start := range starts {
		start := start
		t.Run(start.Format("2006-01-02"), func(t *testing.T) {
			t.Parallel()

			const n = 25
			drafts, err := schedule.Generate(schedule.Plan{
				Amount:          decimal.RequireFromString("19.90"),
				OccurrenceCount: n,
				StartDate:       start,
			})
			require.NoError(t, err)
			require.Len(t, drafts, n)

			for i := 1; i < n; i++ {
				prev, cur := drafts[i-1].DueDate, drafts[i].DueDate
				require.True(t, cur.After(prev), "due dates must strictly increase")

				monthsApart := (cur.Year()-prev.Year())*12 + int(cur.Month()) - int(prev.Month())
				assert.Equal(t, 1, monthsApart)

				lastDay := time.Date(cur.Year(), cur.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
				wantDay := start.Day()
				if wantDay > lastDay {
					wantDay = lastDay
				}
				assert.Equal(t, wantDay, cur.Day())
			}
		})
	}
}

func TestGenerateRejectsInvalidPlans(t *testing.T) {
	t.Parallel()

	_, err := schedule.Generate(schedule.Plan{Amount: decimal.NewFromInt(1), OccurrenceCount: 0, StartDate: day(2024, 1, 1)})
	assert.Error(t, err)

	_, err = schedule.Generate(schedule.Plan{Amount: decimal.NewFromInt(1), OccurrenceCount: 2})
	assert.Error(t, err)
}
