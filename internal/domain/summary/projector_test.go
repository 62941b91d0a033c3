package summary_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/obligation/obligationtest"
	"Paydue/internal/domain/payment"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/summary"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func view(kind obligation.Kind, category ulid.ULID, due time.Time, amount int64, settled bool) *obligation.PaymentView {
	v := &obligation.PaymentView{
		Payment: obligation.Payment{
			Id:       ulid.Make(),
			DueDate:  due,
			Amount:   decimal.NewFromInt(amount),
			IsActive: true,
		},
		Kind:       kind,
		CategoryId: category,
	}
	if settled {
		paidAt := due
		v.PaidAt = &paidAt
	}
	return v
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}

func TestTotalsEmpty(t *testing.T) {
	t.Parallel()

	p := summary.NewProjector(nil)

	totals := p.Totals()
	requireDecimal(t, 0, totals.Total)
	requireDecimal(t, 0, totals.Settled)
	requireDecimal(t, 0, totals.Outstanding)
	require.Len(t, totals.ByKind, len(obligation.Kinds))
	for _, kt := range totals.ByKind {
		requireDecimal(t, 0, kt.Outstanding)
	}

	assert.Empty(t, slices.Collect(p.ByPeriod()))
	assert.Empty(t, p.ByCategory(nil))
}

func TestTotalsOutstandingIsDueMinusSettled(t *testing.T) {
	t.Parallel()

	home, food := ulid.Make(), ulid.Make()
	views := []*obligation.PaymentView{
		view(obligation.KindExpense, home, day(2024, 1, 31), 300, true),
		view(obligation.KindExpense, home, day(2024, 2, 29), 300, false),
		view(obligation.KindExpense, food, day(2024, 2, 10), 120, false),
		view(obligation.KindIncome, food, day(2024, 1, 5), 1000, true),
		view(obligation.KindReceivable, home, day(2024, 3, 1), 50, false),
	}

	totals := summary.NewProjector(views).Totals()
	requireDecimal(t, 1770, totals.Total)
	requireDecimal(t, 1300, totals.Settled)
	requireDecimal(t, 470, totals.Outstanding)

	byKind := make(map[obligation.Kind]summary.KindTotals)
	for _, kt := range totals.ByKind {
		byKind[kt.Kind] = kt
		assert.True(t, kt.Outstanding.Equal(kt.Total.Sub(kt.Settled)))
	}
	requireDecimal(t, 720, byKind[obligation.KindExpense].Total)
	requireDecimal(t, 300, byKind[obligation.KindExpense].Settled)
	requireDecimal(t, 420, byKind[obligation.KindExpense].Outstanding)
	requireDecimal(t, 0, byKind[obligation.KindIncome].Outstanding)
	requireDecimal(t, 50, byKind[obligation.KindReceivable].Outstanding)
}

func TestByPeriodIsChronologicalAndRestartable(t *testing.T) {
	t.Parallel()

	cat := ulid.Make()
	views := []*obligation.PaymentView{
		view(obligation.KindExpense, cat, day(2024, 3, 31), 300, false),
		view(obligation.KindExpense, cat, day(2023, 12, 15), 10, true),
		view(obligation.KindExpense, cat, day(2024, 1, 31), 300, true),
		view(obligation.KindIncome, cat, day(2024, 1, 5), 1000, false),
	}

	p := summary.NewProjector(views)
	first := slices.Collect(p.ByPeriod())
	second := slices.Collect(p.ByPeriod())
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, pkg.YearMonth{Year: 2023, Month: time.December}, first[0].Period)
	assert.Equal(t, pkg.YearMonth{Year: 2024, Month: time.January}, first[1].Period)
	assert.Equal(t, pkg.YearMonth{Year: 2024, Month: time.March}, first[2].Period)

	requireDecimal(t, 1300, first[1].TotalDue)
	requireDecimal(t, 300, first[1].TotalSettled)
	requireDecimal(t, 0, first[2].TotalSettled)

	taken := 0
	for range p.ByPeriod() {
		taken++
		break
	}
	assert.Equal(t, 1, taken)
}

func TestByCategorySortedDescending(t *testing.T) {
	t.Parallel()

	small, big := ulid.Make(), ulid.Make()
	views := []*obligation.PaymentView{
		view(obligation.KindExpense, small, day(2024, 1, 1), 40, false),
		view(obligation.KindExpense, big, day(2024, 1, 1), 300, false),
		view(obligation.KindExpense, small, day(2024, 2, 1), 40, true),
		view(obligation.KindExpense, big, day(2024, 2, 1), 300, false),
	}

	out := summary.NewProjector(views).ByCategory(map[ulid.ULID]string{big: "Moradia"})
	require.Len(t, out, 2)
	assert.Equal(t, big, out[0].CategoryId)
	assert.Equal(t, "Moradia", out[0].CategoryName)
	requireDecimal(t, 600, out[0].Total)
	assert.Equal(t, small, out[1].CategoryId)
	assert.Empty(t, out[1].CategoryName)
	requireDecimal(t, 80, out[1].Total)
}

type fakeNamer struct {
	names map[ulid.ULID]string
	err   error
	calls int
}

func (f *fakeNamer) Names(ctx context.Context, ids []ulid.ULID) (map[ulid.ULID]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

type memorySettings struct{}

func (memorySettings) Get(ctx context.Context) (*settings.Settings, error) {
	return &settings.Settings{}, nil
}

func (memorySettings) Save(ctx context.Context, s *settings.Settings) error { return nil }

func newSummaryService(namer summary.CategoryNamer) (*summary.Service, *obligation.Service) {
	store := obligationtest.NewStore()
	payments := payment.NewService(store.Payments(), store.Obligations(), settings.NewService(memorySettings{}, settings.Defaults{}), store)
	return summary.NewService(payments, namer), obligation.NewService(store.Obligations(), store.Payments(), store)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	category := ulid.Make()
	namer := &fakeNamer{names: map[ulid.ULID]string{category: "Eletronicos"}}
	svc, obligations := newSummaryService(namer)

	_, err := obligations.Create(ctx, &obligation.CreateRequest{
		CategoryId:      category,
		Kind:            obligation.KindExpense,
		Amount:          decimal.NewFromInt(300),
		OccurrenceCount: 3,
		StartDate:       day(2024, 1, 31),
		ScheduleKind:    obligation.ScheduleInstallment,
	})
	require.NoError(t, err)

	out, err := svc.Summarize(ctx, summary.Filter{}, day(2024, 2, 15))
	require.NoError(t, err)

	requireDecimal(t, 900, out.Totals.Total)
	requireDecimal(t, 900, out.Totals.Outstanding)
	assert.Equal(t, obligation.StatusCounts{Overdue: 1, Pending: 2}, out.Counts)
	assert.Len(t, out.ByPeriod, 3)
	require.Len(t, out.ByCategory, 1)
	assert.Equal(t, "Eletronicos", out.ByCategory[0].CategoryName)

	from := day(2024, 3, 1)
	out, err = svc.Summarize(ctx, summary.Filter{From: &from}, day(2024, 2, 15))
	require.NoError(t, err)
	requireDecimal(t, 300, out.Totals.Total)
}

func TestSummarizeEmptyAndNamerError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	namer := &fakeNamer{}
	svc, obligations := newSummaryService(namer)

	out, err := svc.Summarize(ctx, summary.Filter{}, day(2024, 1, 1))
	require.NoError(t, err)
	requireDecimal(t, 0, out.Totals.Outstanding)
	assert.NotNil(t, out.ByPeriod)
	assert.Empty(t, out.ByPeriod)
	assert.Empty(t, out.ByCategory)
	assert.Zero(t, namer.calls)

	_, err = obligations.Create(ctx, &obligation.CreateRequest{
		CategoryId:      ulid.Make(),
		Kind:            obligation.KindIncome,
		Amount:          decimal.NewFromInt(10),
		OccurrenceCount: 1,
		StartDate:       day(2024, 1, 1),
		ScheduleKind:    obligation.ScheduleOnce,
	})
	require.NoError(t, err)

	namer.err = errors.New("lookup failed")
	_, err = svc.Summarize(ctx, summary.Filter{}, day(2024, 1, 1))
	assert.Error(t, err)
}
