// Package obligationtest provides an in-memory obligation store for tests.
package obligationtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Store keeps obligations and payments in maps. Its Transactor snapshots the
// maps and restores them when the transaction function fails.
type Store struct {
	mu          sync.Mutex
	obligations map[ulid.ULID]obligation.Obligation
	payments    map[ulid.ULID]obligation.Payment
	failures    map[string]error
}

func NewStore() *Store {
	return &Store{
		obligations: make(map[ulid.ULID]obligation.Obligation),
		payments:    make(map[ulid.ULID]obligation.Payment),
		failures:    make(map[string]error),
	}
}

// FailOn makes the named repository method return err from now on.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

func (s *Store) Obligations() obligation.Repository {
	return &obligationRepo{s: s}
}

func (s *Store) Payments() obligation.PaymentRepository {
	return &paymentRepo{s: s}
}

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	obs := make(map[ulid.ULID]obligation.Obligation, len(s.obligations))
	for k, v := range s.obligations {
		obs[k] = v
	}
	pays := make(map[ulid.ULID]obligation.Payment, len(s.payments))
	for k, v := range s.payments {
		pays[k] = v
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.obligations = obs
		s.payments = pays
		s.mu.Unlock()
		return err
	}
	return nil
}

// AllPayments returns every stored payment, inactive ones included, ordered by
// obligation then occurrence index then creation.
func (s *Store) AllPayments() []obligation.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]obligation.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObligationId != out[j].ObligationId {
			return out[i].ObligationId.Compare(out[j].ObligationId) < 0
		}
		if out[i].OccurrenceIndex != out[j].OccurrenceIndex {
			return out[i].OccurrenceIndex < out[j].OccurrenceIndex
		}
		return out[i].Id.Compare(out[j].Id) < 0
	})
	return out
}

// ActivePayments returns the active payments of one obligation by occurrence index.
func (s *Store) ActivePayments(obligationID ulid.ULID) []obligation.Payment {
	var out []obligation.Payment
	for _, p := range s.AllPayments() {
		if p.ObligationId == obligationID && p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) fail(method string) error {
	return s.failures[method]
}

type obligationRepo struct {
	s *Store
}

func (r *obligationRepo) Create(ctx context.Context, ob *obligation.Obligation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Obligations.Create"); err != nil {
		return err
	}
	r.s.obligations[ob.Id] = *ob
	return nil
}

func (r *obligationRepo) Update(ctx context.Context, ob *obligation.Obligation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Obligations.Update"); err != nil {
		return err
	}
	if _, ok := r.s.obligations[ob.Id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.obligations[ob.Id] = *ob
	return nil
}

func (r *obligationRepo) GetByID(ctx context.Context, id ulid.ULID) (*obligation.Obligation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Obligations.GetByID"); err != nil {
		return nil, err
	}
	ob, ok := r.s.obligations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ob, nil
}

func (r *obligationRepo) List(ctx context.Context, filter obligation.ListFilter, pagination *pkg.PaginationParams) ([]*obligation.Obligation, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Obligations.List"); err != nil {
		return nil, 0, err
	}

	var all []*obligation.Obligation
	for _, ob := range r.s.obligations {
		ob := ob
		if !filter.IncludeInactive && !ob.IsActive {
			continue
		}
		if filter.Kind != nil && ob.Kind != *filter.Kind {
			continue
		}
		if filter.CategoryId != nil && ob.CategoryId != *filter.CategoryId {
			continue
		}
		all = append(all, &ob)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	page, total := pkg.PageSlice(all, pagination)
	return page, total, nil
}

type paymentRepo struct {
	s *Store
}

func (r *paymentRepo) CreateBatch(ctx context.Context, payments []*obligation.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Payments.CreateBatch"); err != nil {
		return err
	}
	for _, p := range payments {
		r.s.payments[p.Id] = *p
	}
	return nil
}

func (r *paymentRepo) Update(ctx context.Context, p *obligation.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Payments.Update"); err != nil {
		return err
	}
	if _, ok := r.s.payments[p.Id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.payments[p.Id] = *p
	return nil
}

func (r *paymentRepo) GetForUpdate(ctx context.Context, id ulid.ULID) (*obligation.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Payments.GetForUpdate"); err != nil {
		return nil, err
	}
	p, ok := r.s.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *paymentRepo) GetView(ctx context.Context, id ulid.ULID) (*obligation.PaymentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Payments.GetView"); err != nil {
		return nil, err
	}
	p, ok := r.s.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.view(p), nil
}

func (r *paymentRepo) ListByObligation(ctx context.Context, obligationID ulid.ULID) ([]*obligation.Payment, error) {
	r.s.mu.Lock()
	if err := r.s.fail("Payments.ListByObligation"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	r.s.mu.Unlock()

	var out []*obligation.Payment
	for _, p := range r.s.ActivePayments(obligationID) {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (r *paymentRepo) ListViews(ctx context.Context, filter obligation.PaymentFilter) ([]*obligation.PaymentView, error) {
	r.s.mu.Lock()
	if err := r.s.fail("Payments.ListViews"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	r.s.mu.Unlock()

	all := r.s.AllPayments()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*obligation.PaymentView
	for _, p := range all {
		if !p.IsActive {
			continue
		}
		if p.Orphaned && !filter.IncludeOrphaned {
			continue
		}
		if filter.ObligationId != nil && p.ObligationId != *filter.ObligationId {
			continue
		}
		if filter.From != nil && p.DueDate.Before(pkg.Date(*filter.From)) {
			continue
		}
		if filter.To != nil && p.DueDate.After(pkg.Date(*filter.To)) {
			continue
		}
		v := r.view(p)
		if filter.Kind != nil && v.Kind != *filter.Kind {
			continue
		}
		if filter.CategoryId != nil && v.CategoryId != *filter.CategoryId {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *paymentRepo) DeactivateByIDs(ctx context.Context, ids []ulid.ULID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Payments.DeactivateByIDs"); err != nil {
		return err
	}
	for _, id := range ids {
		p, ok := r.s.payments[id]
		if !ok {
			continue
		}
		p.IsActive = false
		p.UpdatedAt = at
		r.s.payments[id] = p
	}
	return nil
}

// view must be called with the store lock held.
func (r *paymentRepo) view(p obligation.Payment) *obligation.PaymentView {
	ob := r.s.obligations[p.ObligationId]
	return &obligation.PaymentView{
		Payment:            p,
		Kind:               ob.Kind,
		CategoryId:         ob.CategoryId,
		Title:              ob.Title,
		ReminderDaysBefore: ob.ReminderDaysBefore,
		ObligationActive:   ob.IsActive,
	}
}
