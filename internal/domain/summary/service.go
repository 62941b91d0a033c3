package summary

import (
	"context"
	"slices"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// CategoryNamer resolves display names for category ids. Unknown ids are
// simply absent from the result.
type CategoryNamer interface {
	Names(ctx context.Context, ids []ulid.ULID) (map[ulid.ULID]string, error)
}

type Filter struct {
	From       *time.Time
	To         *time.Time
	Kind       *obligation.Kind
	CategoryId *ulid.ULID
}

type Summary struct {
	AsOf       time.Time               `json:"asOf"`
	Totals     Totals                  `json:"totals"`
	Counts     obligation.StatusCounts `json:"counts"`
	ByPeriod   []PeriodTotal           `json:"byPeriod"`
	ByCategory []CategoryTotal         `json:"byCategory"`
}

type Service struct {
	Payments   *payment.Service
	Categories CategoryNamer
}

func NewService(payments *payment.Service, categories CategoryNamer) *Service {
	return &Service{
		Payments:   payments,
		Categories: categories,
	}
}

// Summarize projects the active payments matching filter, orphaned ones
// included, as seen at asOf.
func (s *Service) Summarize(ctx context.Context, filter Filter, asOf time.Time) (*Summary, error) {
	asOf = pkg.Date(asOf)
	views, err := s.Payments.Views(ctx, obligation.PaymentFilter{
		From:            filter.From,
		To:              filter.To,
		Kind:            filter.Kind,
		CategoryId:      filter.CategoryId,
		IncludeOrphaned: true,
	}, asOf)
	if err != nil {
		return nil, err
	}

	projector := NewProjector(views)

	var names map[ulid.ULID]string
	if s.Categories != nil {
		if ids := projector.CategoryIDs(); len(ids) > 0 {
			names, err = s.Categories.Names(ctx, ids)
			if err != nil {
				return nil, err
			}
		}
	}

	byPeriod := slices.Collect(projector.ByPeriod())
	if byPeriod == nil {
		byPeriod = []PeriodTotal{}
	}

	return &Summary{
		AsOf:       asOf,
		Totals:     projector.Totals(),
		Counts:     obligation.CountStatuses(views),
		ByPeriod:   byPeriod,
		ByCategory: projector.ByCategory(names),
	}, nil
}
