package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddCalendarMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"zero months", day(2024, 1, 31), 0, day(2024, 1, 31)},
		{"31st into leap february", day(2024, 1, 31), 1, day(2024, 2, 29)},
		{"31st into common february", day(2023, 1, 31), 1, day(2023, 2, 28)},
		{"31st into 30 day month", day(2024, 3, 31), 1, day(2024, 4, 30)},
		{"clamp does not stick", day(2024, 1, 31), 2, day(2024, 3, 31)},
		{"year rollover", day(2024, 11, 15), 3, day(2025, 2, 15)},
		{"many years", day(2024, 2, 29), 12, day(2025, 2, 28)},
		{"negative months", day(2024, 3, 31), -1, day(2024, 2, 29)},
		{"negative across year", day(2024, 1, 10), -13, day(2022, 12, 10)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AddCalendarMonths(tt.start, tt.n))
		})
	}
}

func TestAddCalendarMonthsDropsClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 10, 18, 45, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, day(2024, 6, 10), AddCalendarMonths(start, 1))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 29), got)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	fallback := day(2020, 1, 1)
	got, err = ParseOptionalDate("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)
}

func TestYearMonth(t *testing.T) {
	t.Parallel()

	a := YearMonthOf(day(2023, 12, 31))
	b := YearMonthOf(day(2024, 1, 1))
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, "2023-12", a.String())

	var parsed YearMonth
	require.NoError(t, parsed.UnmarshalText([]byte("2023-12")))
	assert.Equal(t, a, parsed)
	assert.Error(t, parsed.UnmarshalText([]byte("2023-13")))
}

func TestPageSlice(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	page, total := PageSlice(items, &PaginationParams{Page: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.EqualValues(t, 5, total)

	page, _ = PageSlice(items, &PaginationParams{Page: 4, Limit: 2})
	assert.Empty(t, page)

	page, _ = PageSlice(items, nil)
	assert.Len(t, page, 5)
}
