package summary

import (
	"iter"
	"sort"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type KindTotals struct {
	Kind        obligation.Kind `json:"kind"`
	Total       decimal.Decimal `json:"total"`
	Settled     decimal.Decimal `json:"settled"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type Totals struct {
	Total       decimal.Decimal `json:"total"`
	Settled     decimal.Decimal `json:"settled"`
	Outstanding decimal.Decimal `json:"outstanding"`
	ByKind      []KindTotals    `json:"byKind"`
}

type PeriodTotal struct {
	Period       pkg.YearMonth   `json:"period"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	TotalSettled decimal.Decimal `json:"totalSettled"`
}

type CategoryTotal struct {
	CategoryId   ulid.ULID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// Projector aggregates an already filtered set of payment views. It holds no
// state besides the input and never writes.
type Projector struct {
	views []*obligation.PaymentView
}

func NewProjector(views []*obligation.PaymentView) *Projector {
	return &Projector{views: views}
}

// Totals sums every view by kind. Outstanding is always total minus settled,
// so an empty input yields zeros for every kind.
func (p *Projector) Totals() Totals {
	byKind := make(map[obligation.Kind]*KindTotals, len(obligation.Kinds))
	for _, k := range obligation.Kinds {
		byKind[k] = &KindTotals{Kind: k, Total: decimal.Zero, Settled: decimal.Zero}
	}

	for _, v := range p.views {
		kt, ok := byKind[v.Kind]
		if !ok {
			continue
		}
		kt.Total = kt.Total.Add(v.Amount)
		if v.IsSettled() {
			kt.Settled = kt.Settled.Add(v.Amount)
		}
	}

	out := Totals{
		Total:   decimal.Zero,
		Settled: decimal.Zero,
		ByKind:  make([]KindTotals, 0, len(obligation.Kinds)),
	}
	for _, k := range obligation.Kinds {
		kt := byKind[k]
		kt.Outstanding = kt.Total.Sub(kt.Settled)
		out.Total = out.Total.Add(kt.Total)
		out.Settled = out.Settled.Add(kt.Settled)
		out.ByKind = append(out.ByKind, *kt)
	}
	out.Outstanding = out.Total.Sub(out.Settled)
	return out
}

// ByPeriod yields one entry per calendar month touched by a due date, oldest
// first. Grouping happens when iteration starts, so the sequence can be ranged
// over any number of times.
func (p *Projector) ByPeriod() iter.Seq[PeriodTotal] {
	return func(yield func(PeriodTotal) bool) {
		groups := make(map[pkg.YearMonth]*PeriodTotal)
		for _, v := range p.views {
			ym := pkg.YearMonthOf(v.DueDate)
			pt, ok := groups[ym]
			if !ok {
				pt = &PeriodTotal{Period: ym, TotalDue: decimal.Zero, TotalSettled: decimal.Zero}
				groups[ym] = pt
			}
			pt.TotalDue = pt.TotalDue.Add(v.Amount)
			if v.IsSettled() {
				pt.TotalSettled = pt.TotalSettled.Add(v.Amount)
			}
		}

		periods := make([]pkg.YearMonth, 0, len(groups))
		for ym := range groups {
			periods = append(periods, ym)
		}
		sort.Slice(periods, func(i, j int) bool {
			return periods[i].Before(periods[j])
		})

		for _, ym := range periods {
			if !yield(*groups[ym]) {
				return
			}
		}
	}
}

// ByCategory sums amounts per category, largest first. names labels the
// entries and may be nil.
func (p *Projector) ByCategory(names map[ulid.ULID]string) []CategoryTotal {
	groups := make(map[ulid.ULID]decimal.Decimal)
	for _, v := range p.views {
		total, ok := groups[v.CategoryId]
		if !ok {
			total = decimal.Zero
		}
		groups[v.CategoryId] = total.Add(v.Amount)
	}

	out := make([]CategoryTotal, 0, len(groups))
	for id, total := range groups {
		out = append(out, CategoryTotal{CategoryId: id, CategoryName: names[id], Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].CategoryId.Compare(out[j].CategoryId) < 0
	})
	return out
}

// CategoryIDs returns the distinct categories present in the input.
func (p *Projector) CategoryIDs() []ulid.ULID {
	seen := make(map[ulid.ULID]bool)
	ids := make([]ulid.ULID, 0)
	for _, v := range p.views {
		if seen[v.CategoryId] {
			continue
		}
		seen[v.CategoryId] = true
		ids = append(ids, v.CategoryId)
	}
	return ids
}
