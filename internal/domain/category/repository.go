package category

import (
	"context"

	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id ulid.ULID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, pagination *pkg.PaginationParams) ([]*Category, int64, error)
	ListByIDs(ctx context.Context, ids []ulid.ULID) ([]*Category, error)
}
