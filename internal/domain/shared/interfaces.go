package shared

import (
	"context"
)

// Transactor runs fn as one atomic unit against the store: every write made
// through ctx inside fn commits together or is rolled back.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
