package obligation

import (
	"context"
	"time"

	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type ListFilter struct {
	Kind            *Kind
	CategoryId      *ulid.ULID
	IncludeInactive bool
}

type Repository interface {
	Create(ctx context.Context, obligation *Obligation) error
	Update(ctx context.Context, obligation *Obligation) error
	GetByID(ctx context.Context, id ulid.ULID) (*Obligation, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Obligation, int64, error)
}

// PaymentFilter holds the predicates the store can evaluate. Derived statuses
// are filtered by the caller after reconciliation.
type PaymentFilter struct {
	ObligationId    *ulid.ULID
	From            *time.Time
	To              *time.Time
	Kind            *Kind
	CategoryId      *ulid.ULID
	IncludeOrphaned bool
}

type PaymentRepository interface {
	CreateBatch(ctx context.Context, payments []*Payment) error
	Update(ctx context.Context, payment *Payment) error
	// GetForUpdate loads a payment locking its row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id ulid.ULID) (*Payment, error)
	GetView(ctx context.Context, id ulid.ULID) (*PaymentView, error)
	ListByObligation(ctx context.Context, obligationID ulid.ULID) ([]*Payment, error)
	// ListViews returns active payments matching filter ordered by due date.
	ListViews(ctx context.Context, filter PaymentFilter) ([]*PaymentView, error)
	// DeactivateByIDs soft-deletes the payments, stamping updated_at with at.
	DeactivateByIDs(ctx context.Context, ids []ulid.ULID, at time.Time) error
}
