package report

import (
	"context"
	"fmt"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/domain/summary"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	PaymentsSheet = "Parcelas"
	SummarySheet  = "Resumo"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var paymentHeaders = []interface{}{"Vencimento", "Titulo", "Tipo", "Categoria", "Valor", "Status", "Quitada em"}

var kindLabels = map[obligation.Kind]string{
	obligation.KindExpense:    "Despesa",
	obligation.KindIncome:     "Receita",
	obligation.KindReceivable: "A receber",
}

var statusLabels = map[obligation.Status]string{
	obligation.StatusPending:  "Pendente",
	obligation.StatusOverdue:  "Atrasada",
	obligation.StatusPaid:     "Paga",
	obligation.StatusReceived: "Recebida",
}

type Service struct {
	Payments   *payment.Service
	Categories summary.CategoryNamer
}

func NewService(payments *payment.Service, categories summary.CategoryNamer) *Service {
	return &Service{
		Payments:   payments,
		Categories: categories,
	}
}

// FileName is the suggested attachment name for an export made at asOf.
func FileName(asOf time.Time) string {
	return fmt.Sprintf("parcelas_%s.xlsx", asOf.Format("20060102"))
}

// Export builds a workbook with one row per matching payment and a sheet
// with totals by kind. The caller owns the returned file and must close it.
func (s *Service) Export(ctx context.Context, filter payment.ListFilter, asOf time.Time) (*excelize.File, error) {
	asOf = pkg.Date(asOf)
	views, err := s.Payments.FilterViews(ctx, filter, asOf)
	if err != nil {
		return nil, err
	}

	projector := summary.NewProjector(views)
	var names map[ulid.ULID]string
	if s.Categories != nil {
		if ids := projector.CategoryIDs(); len(ids) > 0 {
			names, err = s.Categories.Names(ctx, ids)
			if err != nil {
				return nil, err
			}
		}
	}

	f := excelize.NewFile()
	if err := writePayments(f, views, names); err != nil {
		f.Close()
		return nil, fmt.Errorf("planilha de parcelas: %w", err)
	}
	if err := writeTotals(f, projector.Totals(), asOf); err != nil {
		f.Close()
		return nil, fmt.Errorf("planilha de resumo: %w", err)
	}
	return f, nil
}

func writePayments(f *excelize.File, views []*obligation.PaymentView, names map[ulid.ULID]string) error {
	if err := f.SetSheetName("Sheet1", PaymentsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(PaymentsSheet, "A1", &paymentHeaders); err != nil {
		return err
	}
	money, err := moneyStyle(f)
	if err != nil {
		return err
	}

	for idx, v := range views {
		paidAt := ""
		if v.PaidAt != nil {
			paidAt = v.PaidAt.Format(pkg.DateLayout)
		}
		row := []interface{}{
			v.DueDate.Format(pkg.DateLayout),
			v.Title,
			kindLabels[v.Kind],
			names[v.CategoryId],
			nil,
			statusLabels[v.Status],
			paidAt,
		}
		if err := f.SetSheetRow(PaymentsSheet, fmt.Sprintf("A%d", idx+2), &row); err != nil {
			return err
		}
		if err := setAmount(f, PaymentsSheet, 5, idx+2, v.Amount, money); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 12, "B": 30, "C": 12, "D": 18, "E": 12, "F": 12, "G": 12}
	for col, width := range widths {
		if err := f.SetColWidth(PaymentsSheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeTotals(f *excelize.File, totals summary.Totals, asOf time.Time) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	header := []interface{}{"Tipo", "Total", "Quitado", "Em aberto"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	money, err := moneyStyle(f)
	if err != nil {
		return err
	}

	row := 2
	for _, kt := range totals.ByKind {
		if err := f.SetCellStr(SummarySheet, fmt.Sprintf("A%d", row), kindLabels[kt.Kind]); err != nil {
			return err
		}
		for col, amount := range []decimal.Decimal{kt.Total, kt.Settled, kt.Outstanding} {
			if err := setAmount(f, SummarySheet, col+2, row, amount, money); err != nil {
				return err
			}
		}
		row++
	}

	footer := []interface{}{"Referencia", asOf.Format(pkg.DateLayout)}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row+1), &footer); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "D", 14)
}

func moneyStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{NumFmt: 2})
}

// setAmount writes amount as a numeric cell from its exact decimal text.
func setAmount(f *excelize.File, sheet string, col, row int, amount decimal.Decimal, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellDefault(sheet, cell, amount.StringFixed(2)); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
