package payment

import (
	"context"
	"errors"
	"sort"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/shared"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/logger"
	"Paydue/internal/metrics"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Service applies settlement transitions and projects derived statuses. It
// never persists a derived status.
type Service struct {
	Repository           obligation.PaymentRepository
	ObligationRepository obligation.Repository
	SettingsService      *settings.Service
	Transactor           shared.Transactor
	Now                  func() time.Time
}

func NewService(
	repo obligation.PaymentRepository,
	obligationRepo obligation.Repository,
	settingsService *settings.Service,
	transactor shared.Transactor,
) *Service {
	return &Service{
		Repository:           repo,
		ObligationRepository: obligationRepo,
		SettingsService:      settingsService,
		Transactor:           transactor,
		Now:                  time.Now,
	}
}

type ListFilter struct {
	obligation.PaymentFilter
	Status *obligation.Status
}

type Reconciliation struct {
	AsOf     time.Time                 `json:"asOf"`
	Payments []*obligation.PaymentView `json:"payments"`
	Counts   obligation.StatusCounts   `json:"counts"`
}

type Reminder struct {
	PaymentId    ulid.ULID         `json:"paymentId"`
	ObligationId ulid.ULID         `json:"obligationId"`
	Title        string            `json:"title"`
	Kind         obligation.Kind   `json:"kind"`
	DueDate      time.Time         `json:"dueDate"`
	RemindOn     time.Time         `json:"remindOn"`
	DaysBefore   int               `json:"daysBefore"`
	Status       obligation.Status `json:"status"`
}

// Settle marks the payment as paid or received on asOf. Settling a settled
// payment changes nothing and returns the stored paidAt.
func (s *Service) Settle(ctx context.Context, id ulid.ULID, asOf time.Time) (*obligation.PaymentView, error) {
	asOf = pkg.Date(asOf)
	changed := false

	err := s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.getActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.IsSettled() {
			return nil
		}

		paidAt := asOf
		p.PaidAt = &paidAt
		p.UpdatedAt = s.now()
		if err := s.Repository.Update(ctx, p); err != nil {
			return appErrors.NewStorageError(err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, asStorageError(err)
	}
	metrics.ObserveSettlement("settle", changed)

	view, err := s.GetPayment(ctx, id, asOf)
	if err != nil {
		return nil, err
	}
	if changed {
		logger.Info().
			Str("payment_id", id.String()).
			Str("status", string(view.Status)).
			Str("paid_at", asOf.Format(pkg.DateLayout)).
			Msg("Parcela quitada")
	}
	return view, nil
}

// Unsettle clears the settlement so the payment falls back to pending or
// overdue. Orphaned payments and payments of inactive obligations cannot be
// reopened.
func (s *Service) Unsettle(ctx context.Context, id ulid.ULID, asOf time.Time) (*obligation.PaymentView, error) {
	changed := false

	err := s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.getActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsSettled() {
			return nil
		}
		if p.Orphaned {
			return appErrors.NewValidationError("payment_id", "parcela fora do cronograma atual nao pode ser reaberta")
		}

		ob, err := s.ObligationRepository.GetByID(ctx, p.ObligationId)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.NewStorageError(err)
		}
		if ob == nil || !ob.IsActive {
			return appErrors.NewValidationError("payment_id", "obrigacao desativada nao permite reabrir parcela")
		}

		p.PaidAt = nil
		p.UpdatedAt = s.now()
		if err := s.Repository.Update(ctx, p); err != nil {
			return appErrors.NewStorageError(err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, asStorageError(err)
	}
	metrics.ObserveSettlement("unsettle", changed)

	if changed {
		logger.Info().Str("payment_id", id.String()).Msg("Quitacao desfeita")
	}
	return s.GetPayment(ctx, id, asOf)
}

func (s *Service) GetPayment(ctx context.Context, id ulid.ULID, asOf time.Time) (*obligation.PaymentView, error) {
	view, err := s.Repository.GetView(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	if !view.IsActive {
		return nil, appErrors.ErrPaymentNotFound
	}
	obligation.Reconcile([]*obligation.PaymentView{view}, asOf)
	return view, nil
}

// ListPayments derives the statuses of the matching payments at asOf, then
// applies the status filter and pagination.
func (s *Service) ListPayments(ctx context.Context, filter ListFilter, asOf time.Time, pagination *pkg.PaginationParams) ([]*obligation.PaymentView, int64, error) {
	views, err := s.FilterViews(ctx, filter, asOf)
	if err != nil {
		return nil, 0, err
	}
	page, total := pkg.PageSlice(views, pagination)
	return page, total, nil
}

// FilterViews is ListPayments without pagination.
func (s *Service) FilterViews(ctx context.Context, filter ListFilter, asOf time.Time) ([]*obligation.PaymentView, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	views, err := s.Views(ctx, filter.PaymentFilter, asOf)
	if err != nil {
		return nil, err
	}
	if filter.Status == nil {
		return views, nil
	}

	matching := make([]*obligation.PaymentView, 0, len(views))
	for _, v := range views {
		if v.Status == *filter.Status {
			matching = append(matching, v)
		}
	}
	return matching, nil
}

// Views returns the reconciled payments matching filter ordered by due date.
func (s *Service) Views(ctx context.Context, filter obligation.PaymentFilter, asOf time.Time) ([]*obligation.PaymentView, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, appErrors.NewValidationError("from", "data inicial posterior a data final")
	}
	views, err := s.Repository.ListViews(ctx, filter)
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	obligation.Reconcile(views, asOf)
	return views, nil
}

// ListObligationPayments returns every active payment of one obligation, the
// orphaned ones included, ordered by occurrence index.
func (s *Service) ListObligationPayments(ctx context.Context, obligationID ulid.ULID, asOf time.Time) ([]*obligation.PaymentView, error) {
	_, err := s.ObligationRepository.GetByID(ctx, obligationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrObligationNotFound
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}

	views, err := s.Views(ctx, obligation.PaymentFilter{
		ObligationId:    &obligationID,
		IncludeOrphaned: true,
	}, asOf)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].OccurrenceIndex < views[j].OccurrenceIndex
	})
	return views, nil
}

// ReconcileAll recomputes the derived status of every active payment. It only
// reads; settlement state is never touched.
func (s *Service) ReconcileAll(ctx context.Context, asOf time.Time) (*Reconciliation, error) {
	asOf = pkg.Date(asOf)
	views, err := s.Views(ctx, obligation.PaymentFilter{IncludeOrphaned: true}, asOf)
	if err != nil {
		return nil, err
	}

	counts := obligation.CountStatuses(views)
	logger.Debug().
		Str("as_of", asOf.Format(pkg.DateLayout)).
		Int("payments", len(views)).
		Int("overdue", counts.Overdue).
		Msg("Reconciliacao concluida")

	return &Reconciliation{AsOf: asOf, Payments: views, Counts: counts}, nil
}

// UpcomingReminders lists the open payments whose reminder window contains
// asOf. Delivering the notification is up to the caller.
func (s *Service) UpcomingReminders(ctx context.Context, asOf time.Time) ([]Reminder, error) {
	asOf = pkg.Date(asOf)

	current, err := s.SettingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !current.NotificationsEnabled {
		return []Reminder{}, nil
	}

	views, err := s.Views(ctx, obligation.PaymentFilter{From: &asOf}, asOf)
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0)
	for _, v := range views {
		if v.IsSettled() || !v.ObligationActive {
			continue
		}
		days := settings.ReminderDaysFor(v.ReminderDaysBefore, current)
		remindOn := v.DueDate.AddDate(0, 0, -days)
		if remindOn.After(asOf) {
			continue
		}
		reminders = append(reminders, Reminder{
			PaymentId:    v.Id,
			ObligationId: v.ObligationId,
			Title:        v.Title,
			Kind:         v.Kind,
			DueDate:      v.DueDate,
			RemindOn:     remindOn,
			DaysBefore:   days,
			Status:       v.Status,
		})
	}
	return reminders, nil
}

func (s *Service) getActiveForUpdate(ctx context.Context, id ulid.ULID) (*obligation.Payment, error) {
	p, err := s.Repository.GetForUpdate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	if !p.IsActive {
		return nil, appErrors.ErrPaymentNotFound
	}
	return p, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func validateFilter(filter ListFilter) error {
	if filter.Kind != nil && !filter.Kind.IsValid() {
		return appErrors.NewValidationError("kind", "tipo invalido")
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return appErrors.NewValidationError("status", "status invalido")
	}
	return nil
}

func asStorageError(err error) error {
	if _, ok := appErrors.AsAppError(err); ok {
		return err
	}
	return appErrors.NewStorageError(err)
}
