package pkg

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date drops the clock part and pins the value to UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return Date(time.Now())
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("data invalida %q: esperado formato AAAA-MM-DD", s)
	}
	return t, nil
}

// ParseOptionalDate returns fallback when s is empty.
func ParseOptionalDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseDate(s)
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddCalendarMonths moves start by n calendar months keeping its day of month,
// clamped to the last day of the target month. time.AddDate normalizes
// Jan 31 + 1 month into March; this never leaves the target month.
func AddCalendarMonths(start time.Time, n int) time.Time {
	y, m, d := start.Date()

	total := int(m) - 1 + n
	year := y + total/12
	monthIdx := total % 12
	if monthIdx < 0 {
		monthIdx += 12
		year--
	}
	month := time.Month(monthIdx + 1)

	if last := DaysInMonth(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

func (ym *YearMonth) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01", string(text))
	if err != nil {
		return fmt.Errorf("mes invalido %q: esperado formato AAAA-MM", text)
	}
	*ym = YearMonthOf(t)
	return nil
}
