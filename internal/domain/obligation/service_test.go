package obligation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/obligation/obligationtest"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(store *obligationtest.Store) *obligation.Service {
	svc := obligation.NewService(store.Obligations(), store.Payments(), store)
	svc.Now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func installmentRequest() *obligation.CreateRequest {
	return &obligation.CreateRequest{
		CategoryId:      ulid.Make(),
		Kind:            obligation.KindExpense,
		Title:           "  Notebook  ",
		Amount:          decimal.NewFromInt(300),
		OccurrenceCount: 3,
		StartDate:       day(2024, 1, 31),
		ScheduleKind:    obligation.ScheduleInstallment,
	}
}

func dueDates(payments []obligation.Payment) []time.Time {
	out := make([]time.Time, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.DueDate)
	}
	return out
}

func settle(t *testing.T, store *obligationtest.Store, id ulid.ULID, at time.Time) {
	t.Helper()
	repo := store.Payments()
	p, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	p.PaidAt = &at
	require.NoError(t, repo.Update(context.Background(), p))
}

func TestCreateInstallmentSchedule(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)

	ob, err := svc.Create(context.Background(), installmentRequest())
	require.NoError(t, err)
	assert.Equal(t, "Notebook", ob.Title)
	assert.True(t, ob.IsActive)

	payments := store.ActivePayments(ob.Id)
	require.Len(t, payments, 3)
	assert.Equal(t, []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31)}, dueDates(payments))
	for i, p := range payments {
		assert.Equal(t, i, p.OccurrenceIndex)
		assert.True(t, p.Amount.Equal(decimal.NewFromInt(300)))
		assert.Nil(t, p.PaidAt)
	}
}

func TestCreateOnce(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)

	ob, err := svc.Create(context.Background(), &obligation.CreateRequest{
		CategoryId:      ulid.Make(),
		Kind:            obligation.KindIncome,
		Amount:          decimal.NewFromInt(1000),
		OccurrenceCount: 1,
		StartDate:       day(2024, 5, 10),
		ScheduleKind:    obligation.ScheduleOnce,
	})
	require.NoError(t, err)

	payments := store.ActivePayments(ob.Id)
	require.Len(t, payments, 1)
	assert.Equal(t, day(2024, 5, 10), payments[0].DueDate)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	negative := -1
	tests := []struct {
		name   string
		mutate func(r *obligation.CreateRequest)
		field  string
	}{
		{"zero amount", func(r *obligation.CreateRequest) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *obligation.CreateRequest) { r.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"no occurrences", func(r *obligation.CreateRequest) { r.OccurrenceCount = 0 }, "occurrence_count"},
		{"once with many", func(r *obligation.CreateRequest) { r.ScheduleKind = obligation.ScheduleOnce }, "occurrence_count"},
		{"bad kind", func(r *obligation.CreateRequest) { r.Kind = "gift" }, "kind"},
		{"bad schedule kind", func(r *obligation.CreateRequest) { r.ScheduleKind = "weekly" }, "schedule_kind"},
		{"no start date", func(r *obligation.CreateRequest) { r.StartDate = time.Time{} }, "start_date"},
		{"no category", func(r *obligation.CreateRequest) { r.CategoryId = ulid.ULID{} }, "category_id"},
		{"negative reminder", func(r *obligation.CreateRequest) { r.ReminderDaysBefore = &negative }, "reminder_days_before"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := obligationtest.NewStore()
			svc := newService(store)

			req := installmentRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
			assert.Empty(t, store.AllPayments())
		})
	}
}

func TestCreateDegenerateInstallmentIsLegal(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	req := installmentRequest()
	req.OccurrenceCount = 1

	ob, err := newService(store).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, store.ActivePayments(ob.Id), 1)
}

func TestCreateIsAtomic(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	store.FailOn("Payments.CreateBatch", errors.New("disk full"))
	svc := newService(store)

	_, err := svc.Create(context.Background(), installmentRequest())
	require.Error(t, err)
	assert.True(t, appErrors.IsStorage(err))

	list, total, err := svc.List(context.Background(), obligation.ListFilter{IncludeInactive: true}, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestUpdateAmountKeepsSettledPayment(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)

	first := store.ActivePayments(ob.Id)[0]
	settle(t, store, first.Id, day(2024, 1, 20))

	amount := decimal.NewFromInt(450)
	updated, err := svc.Update(ctx, ob.Id, &obligation.UpdateRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))

	payments := store.ActivePayments(ob.Id)
	require.Len(t, payments, 3)

	assert.Equal(t, first.Id, payments[0].Id)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(300)))
	require.NotNil(t, payments[0].PaidAt)

	for _, p := range payments[1:] {
		assert.True(t, p.Amount.Equal(amount))
		assert.Nil(t, p.PaidAt)
	}
	assert.Equal(t, []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31)}, dueDates(payments))

	inactive := 0
	for _, p := range store.AllPayments() {
		if !p.IsActive {
			inactive++
			assert.Nil(t, p.PaidAt)
			assert.Equal(t, svc.Now(), p.UpdatedAt)
		}
	}
	assert.Equal(t, 2, inactive)
}

func TestUpdateStartDateAroundSettledPayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		startDate time.Time
		wantErr   bool
		wantDues  []time.Time
	}{
		{
			name:      "earlier start overtakes the settled month",
			startDate: day(2023, 12, 15),
			wantErr:   true,
		},
		{
			name:      "later start lands in the settled month",
			startDate: day(2024, 2, 1),
			wantErr:   true,
		},
		{
			name:      "same months with another day",
			startDate: day(2024, 1, 10),
			wantDues:  []time.Time{day(2024, 1, 10), day(2024, 2, 29), day(2024, 3, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := obligationtest.NewStore()
			svc := newService(store)
			ctx := context.Background()

			ob, err := svc.Create(ctx, installmentRequest())
			require.NoError(t, err)
			before := store.ActivePayments(ob.Id)
			settle(t, store, before[1].Id, day(2024, 2, 20))
			before = store.ActivePayments(ob.Id)

			start := tt.startDate
			_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{StartDate: &start})

			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := appErrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, appErrors.CodeValidation, appErr.Code)
				assert.Equal(t, "start_date", appErr.Details["field"])

				assert.Equal(t, before, store.ActivePayments(ob.Id))
				stored, err := svc.Get(ctx, ob.Id)
				require.NoError(t, err)
				assert.Equal(t, day(2024, 1, 31), stored.StartDate)
				return
			}

			require.NoError(t, err)
			active := store.ActivePayments(ob.Id)
			require.Len(t, active, 3)
			assert.Equal(t, tt.wantDues, dueDates(active))
			assert.Equal(t, before[1].Id, active[1].Id)
		})
	}
}

func TestUpdateNonScheduleFieldsLeavesPayments(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)
	before := store.ActivePayments(ob.Id)

	title := "Notebook novo"
	days := 5
	updated, err := svc.Update(ctx, ob.Id, &obligation.UpdateRequest{Title: &title, ReminderDaysBefore: &days})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	require.NotNil(t, updated.ReminderDaysBefore)
	assert.Equal(t, 5, *updated.ReminderDaysBefore)

	assert.Equal(t, before, store.ActivePayments(ob.Id))

	updated, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{ClearReminderDays: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ReminderDaysBefore)
}

func TestUpdateShrinkBelowSettledFlagsOrphans(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)

	payments := store.ActivePayments(ob.Id)
	settle(t, store, payments[0].Id, day(2024, 1, 30))
	settle(t, store, payments[2].Id, day(2024, 1, 30))

	count := 1
	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{OccurrenceCount: &count})
	require.NoError(t, err)

	active := store.ActivePayments(ob.Id)
	require.Len(t, active, 2)
	assert.Equal(t, payments[0].Id, active[0].Id)
	assert.False(t, active[0].Orphaned)
	assert.Equal(t, payments[2].Id, active[1].Id)
	assert.True(t, active[1].Orphaned)

	// growing again adopts the settled instance back into the schedule
	count = 4
	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{OccurrenceCount: &count})
	require.NoError(t, err)

	active = store.ActivePayments(ob.Id)
	require.Len(t, active, 4)
	for i, p := range active {
		assert.Equal(t, i, p.OccurrenceIndex)
		assert.False(t, p.Orphaned)
	}
	assert.Equal(t, payments[2].Id, active[2].Id)
	assert.Equal(t, day(2024, 4, 30), active[3].DueDate)
}

func TestUpdateScheduleKindToOnce(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)

	once := obligation.ScheduleOnce
	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{ScheduleKind: &once})
	require.True(t, appErrors.IsValidation(err), "mismatch must be rejected")
	assert.Len(t, store.ActivePayments(ob.Id), 3)

	count := 1
	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{ScheduleKind: &once, OccurrenceCount: &count})
	require.NoError(t, err)
	assert.Len(t, store.ActivePayments(ob.Id), 1)
}

func TestUpdateIsAtomic(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)
	before := store.AllPayments()

	store.FailOn("Payments.CreateBatch", errors.New("connection reset"))
	amount := decimal.NewFromInt(999)
	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{Amount: &amount})
	require.True(t, appErrors.IsStorage(err))

	got, err := svc.Get(ctx, ob.Id)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, before, store.AllPayments())
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	amount := decimal.NewFromInt(10)
	_, err := svc.Update(ctx, ulid.Make(), &obligation.UpdateRequest{Amount: &amount})
	assert.ErrorIs(t, err, appErrors.ErrObligationNotFound)

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, ob.Id))

	_, err = svc.Update(ctx, ob.Id, &obligation.UpdateRequest{Amount: &amount})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDeactivateCascadesToUnsettled(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	ob, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)

	payments := store.ActivePayments(ob.Id)
	settle(t, store, payments[1].Id, day(2024, 2, 1))

	require.NoError(t, svc.Deactivate(ctx, ob.Id))

	got, err := svc.Get(ctx, ob.Id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active := store.ActivePayments(ob.Id)
	require.Len(t, active, 1)
	assert.Equal(t, payments[1].Id, active[0].Id)

	err = svc.Deactivate(ctx, ob.Id)
	assert.ErrorIs(t, err, appErrors.ErrObligationNotFound)
}

func TestGetStorageError(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	store.FailOn("Obligations.GetByID", errors.New("timeout"))

	_, err := newService(store).Get(context.Background(), ulid.Make())
	assert.True(t, appErrors.IsStorage(err))
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	store := obligationtest.NewStore()
	svc := newService(store)
	ctx := context.Background()

	expense, err := svc.Create(ctx, installmentRequest())
	require.NoError(t, err)

	income := installmentRequest()
	income.Kind = obligation.KindIncome
	incomeOb, err := svc.Create(ctx, income)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, incomeOb.Id))

	list, total, err := svc.List(ctx, obligation.ListFilter{}, &pkg.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, expense.Id, list[0].Id)

	kind := obligation.KindIncome
	list, _, err = svc.List(ctx, obligation.ListFilter{Kind: &kind, IncludeInactive: true}, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, incomeOb.Id, list[0].Id)

	bad := obligation.Kind("other")
	_, _, err = svc.List(ctx, obligation.ListFilter{Kind: &bad}, nil)
	assert.True(t, appErrors.IsValidation(err))
}
