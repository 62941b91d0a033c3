package obligation

import (
	"context"
	"errors"
	"strings"
	"time"

	"Paydue/internal/domain/schedule"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/shared"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/logger"
	"Paydue/internal/metrics"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxTitleLength = 255

// Service is the lifecycle manager: every write to an obligation and its
// payments goes through it, inside one store transaction.
type Service struct {
	Repository        Repository
	PaymentRepository PaymentRepository
	Transactor        shared.Transactor
	Now               func() time.Time
}

func NewService(repo Repository, paymentRepo PaymentRepository, transactor shared.Transactor) *Service {
	return &Service{
		Repository:        repo,
		PaymentRepository: paymentRepo,
		Transactor:        transactor,
		Now:               time.Now,
	}
}

type CreateRequest struct {
	CategoryId         ulid.ULID
	Kind               Kind
	Title              string
	Amount             decimal.Decimal
	OccurrenceCount    int
	StartDate          time.Time
	ScheduleKind       ScheduleKind
	ReminderDaysBefore *int
}

type UpdateRequest struct {
	CategoryId         *ulid.ULID
	Kind               *Kind
	Title              *string
	Amount             *decimal.Decimal
	OccurrenceCount    *int
	StartDate          *time.Time
	ScheduleKind       *ScheduleKind
	ReminderDaysBefore *int
	// ClearReminderDays drops the obligation's own lead time so the
	// settings default applies again.
	ClearReminderDays bool
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Obligation, error) {
	now := s.now()
	ob := &Obligation{
		Id:                 pkg.GenerateULIDObject(),
		CategoryId:         req.CategoryId,
		Kind:               req.Kind,
		Title:              strings.TrimSpace(req.Title),
		Amount:             req.Amount,
		OccurrenceCount:    req.OccurrenceCount,
		StartDate:          pkg.Date(req.StartDate),
		ScheduleKind:       req.ScheduleKind,
		ReminderDaysBefore: req.ReminderDaysBefore,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := validate(ob); err != nil {
		metrics.ObserveObligationOperation("create", err)
		return nil, err
	}

	drafts, err := schedule.Generate(planOf(ob))
	if err != nil {
		metrics.ObserveObligationOperation("create", err)
		return nil, appErrors.NewValidationError("occurrence_count", err.Error())
	}

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Repository.Create(ctx, ob); err != nil {
			return appErrors.NewStorageError(err)
		}
		payments := newPayments(ob.Id, drafts, now)
		if err := s.PaymentRepository.CreateBatch(ctx, payments); err != nil {
			return appErrors.NewStorageError(err)
		}
		metrics.ObservePaymentsGenerated(len(payments))
		return nil
	})
	err = asStorageError(err)
	metrics.ObserveObligationOperation("create", err)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("obligation_id", ob.Id.String()).
		Str("kind", string(ob.Kind)).
		Int("occurrences", ob.OccurrenceCount).
		Msg("Obrigacao criada")

	return ob, nil
}

func (s *Service) Update(ctx context.Context, id ulid.ULID, req *UpdateRequest) (*Obligation, error) {
	var updated *Obligation

	err := s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		ob, err := s.getActive(ctx, id)
		if err != nil {
			return err
		}

		before := *ob
		applyUpdate(ob, req)
		if err := validate(ob); err != nil {
			return err
		}

		now := s.now()
		ob.UpdatedAt = now
		if err := s.Repository.Update(ctx, ob); err != nil {
			return appErrors.NewStorageError(err)
		}

		if scheduleChanged(&before, ob) {
			if err := s.regenerate(ctx, ob, now); err != nil {
				return err
			}
		}

		updated = ob
		return nil
	})
	err = asStorageError(err)
	metrics.ObserveObligationOperation("update", err)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("obligation_id", id.String()).Msg("Obrigacao atualizada")
	return updated, nil
}

// Deactivate soft-deletes the obligation and its unsettled payments. Settled
// payments stay active as history.
func (s *Service) Deactivate(ctx context.Context, id ulid.ULID) error {
	err := s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		ob, err := s.getActive(ctx, id)
		if err != nil {
			return err
		}

		now := s.now()
		ob.IsActive = false
		ob.UpdatedAt = now
		if err := s.Repository.Update(ctx, ob); err != nil {
			return appErrors.NewStorageError(err)
		}

		payments, err := s.PaymentRepository.ListByObligation(ctx, id)
		if err != nil {
			return appErrors.NewStorageError(err)
		}
		if err := s.PaymentRepository.DeactivateByIDs(ctx, unsettledIDs(payments), now); err != nil {
			return appErrors.NewStorageError(err)
		}
		return nil
	})
	err = asStorageError(err)
	metrics.ObserveObligationOperation("deactivate", err)
	if err != nil {
		return err
	}

	logger.Info().Str("obligation_id", id.String()).Msg("Obrigacao desativada")
	return nil
}

// Get returns the obligation even when inactive, for history views.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Obligation, error) {
	ob, err := s.Repository.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrObligationNotFound
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	return ob, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Obligation, int64, error) {
	if filter.Kind != nil && !filter.Kind.IsValid() {
		return nil, 0, appErrors.NewValidationError("kind", "tipo invalido")
	}
	items, total, err := s.Repository.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, appErrors.NewStorageError(err)
	}
	return items, total, nil
}

// regenerate replaces the unsettled payments of ob with a fresh schedule.
// Settled payments are never touched except for the orphan flag, which marks
// those left beyond a shrunken occurrence count.
func (s *Service) regenerate(ctx context.Context, ob *Obligation, now time.Time) error {
	existing, err := s.PaymentRepository.ListByObligation(ctx, ob.Id)
	if err != nil {
		return appErrors.NewStorageError(err)
	}

	drafts, err := schedule.Generate(planOf(ob))
	if err != nil {
		return appErrors.NewValidationError("occurrence_count", err.Error())
	}

	settled := make(map[int]*Payment)
	for _, p := range existing {
		if p.IsSettled() {
			settled[p.OccurrenceIndex] = p
		}
	}

	fresh := make([]schedule.Draft, 0, len(drafts))
	for _, d := range drafts {
		if settled[d.Index] == nil {
			fresh = append(fresh, d)
		}
	}

	if err := checkMonthlyOrder(fresh, settled); err != nil {
		return err
	}

	if err := s.PaymentRepository.DeactivateByIDs(ctx, unsettledIDs(existing), now); err != nil {
		return appErrors.NewStorageError(err)
	}

	for _, p := range existing {
		if !p.IsSettled() {
			continue
		}
		orphaned := p.OccurrenceIndex >= len(drafts)
		if p.Orphaned == orphaned {
			continue
		}
		p.Orphaned = orphaned
		p.UpdatedAt = now
		if err := s.PaymentRepository.Update(ctx, p); err != nil {
			return appErrors.NewStorageError(err)
		}
		if orphaned {
			logger.Warn().
				Str("obligation_id", ob.Id.String()).
				Str("payment_id", p.Id.String()).
				Int("occurrence_index", p.OccurrenceIndex).
				Msg("Parcela quitada ficou fora do novo cronograma")
		}
	}

	payments := newPayments(ob.Id, fresh, now)
	if err := s.PaymentRepository.CreateBatch(ctx, payments); err != nil {
		return appErrors.NewStorageError(err)
	}
	metrics.ObservePaymentsGenerated(len(payments))
	return nil
}

// checkMonthlyOrder rejects a schedule whose fresh drafts, merged with the
// kept settled payments by occurrence index, would not fall in strictly
// increasing calendar months.
func checkMonthlyOrder(fresh []schedule.Draft, settled map[int]*Payment) error {
	dues := make(map[int]time.Time, len(fresh)+len(settled))
	last := -1
	for _, d := range fresh {
		dues[d.Index] = d.DueDate
		last = max(last, d.Index)
	}
	for idx, p := range settled {
		dues[idx] = p.DueDate
		last = max(last, idx)
	}

	var prev *pkg.YearMonth
	for idx := 0; idx <= last; idx++ {
		due, ok := dues[idx]
		if !ok {
			continue
		}
		month := pkg.YearMonthOf(due)
		if prev != nil && !prev.Before(month) {
			return appErrors.NewValidationError("start_date", "novo cronograma conflita com parcelas ja quitadas")
		}
		prev = &month
	}
	return nil
}

func (s *Service) getActive(ctx context.Context, id ulid.ULID) (*Obligation, error) {
	ob, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ob.IsActive {
		return nil, appErrors.ErrObligationNotFound
	}
	return ob, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func validate(ob *Obligation) error {
	if !ob.Kind.IsValid() {
		return appErrors.NewValidationError("kind", "tipo invalido")
	}
	if !ob.ScheduleKind.IsValid() {
		return appErrors.NewValidationError("schedule_kind", "tipo de agendamento invalido")
	}
	if !ob.Amount.IsPositive() {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if ob.OccurrenceCount < 1 {
		return appErrors.NewValidationError("occurrence_count", "deve ser pelo menos 1")
	}
	if ob.ScheduleKind == ScheduleOnce && ob.OccurrenceCount != 1 {
		return appErrors.NewValidationError("occurrence_count", "obrigacao unica deve ter exatamente 1 ocorrencia")
	}
	if ob.StartDate.IsZero() {
		return appErrors.NewValidationError("start_date", "e obrigatoria")
	}
	if pkg.IsEmptyULID(ob.CategoryId) {
		return appErrors.NewValidationError("category_id", "e obrigatoria")
	}
	if len(ob.Title) > maxTitleLength {
		return appErrors.NewValidationError("title", "deve ter no maximo 255 caracteres")
	}
	if d := ob.ReminderDaysBefore; d != nil && (*d < 0 || *d > settings.MaxReminderDaysBefore) {
		return appErrors.NewValidationError("reminder_days_before", "deve estar entre 0 e 60")
	}
	return nil
}

func applyUpdate(ob *Obligation, req *UpdateRequest) {
	if req.CategoryId != nil {
		ob.CategoryId = *req.CategoryId
	}
	if req.Kind != nil {
		ob.Kind = *req.Kind
	}
	if req.Title != nil {
		ob.Title = strings.TrimSpace(*req.Title)
	}
	if req.Amount != nil {
		ob.Amount = *req.Amount
	}
	if req.OccurrenceCount != nil {
		ob.OccurrenceCount = *req.OccurrenceCount
	}
	if req.StartDate != nil {
		ob.StartDate = pkg.Date(*req.StartDate)
	}
	if req.ScheduleKind != nil {
		ob.ScheduleKind = *req.ScheduleKind
	}
	if req.ClearReminderDays {
		ob.ReminderDaysBefore = nil
	} else if req.ReminderDaysBefore != nil {
		days := *req.ReminderDaysBefore
		ob.ReminderDaysBefore = &days
	}
}

func scheduleChanged(before, after *Obligation) bool {
	return !before.Amount.Equal(after.Amount) ||
		before.OccurrenceCount != after.OccurrenceCount ||
		!before.StartDate.Equal(after.StartDate) ||
		before.ScheduleKind != after.ScheduleKind
}

func planOf(ob *Obligation) schedule.Plan {
	return schedule.Plan{
		Amount:          ob.Amount,
		OccurrenceCount: ob.OccurrenceCount,
		StartDate:       ob.StartDate,
	}
}

func newPayments(obligationID ulid.ULID, drafts []schedule.Draft, now time.Time) []*Payment {
	payments := make([]*Payment, 0, len(drafts))
	for _, d := range drafts {
		payments = append(payments, &Payment{
			Id:              pkg.GenerateULIDObject(),
			ObligationId:    obligationID,
			OccurrenceIndex: d.Index,
			DueDate:         d.DueDate,
			Amount:          d.Amount,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return payments
}

func unsettledIDs(payments []*Payment) []ulid.ULID {
	ids := make([]ulid.ULID, 0, len(payments))
	for _, p := range payments {
		if !p.IsSettled() {
			ids = append(ids, p.Id)
		}
	}
	return ids
}

// asStorageError keeps AppErrors as they are and wraps anything else the
// transaction primitive returned (commit failures).
func asStorageError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := appErrors.AsAppError(err); ok {
		return err
	}
	return appErrors.NewStorageError(err)
}
