package fx

import (
	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/domain/report"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/summary"
	"Paydue/internal/pkg"
	"Paydue/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler HTTP
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	obligationSvc *obligation.Service,
	paymentSvc *payment.Service,
	summarySvc *summary.Service,
	categorySvc *category.Service,
	settingsSvc *settings.Service,
	reportSvc *report.Service,
) *routes.Handler {
	return &routes.Handler{
		ObligationService: obligationSvc,
		PaymentService:    paymentSvc,
		SummaryService:    summarySvc,
		CategoryService:   categorySvc,
		SettingsService:   settingsSvc,
		ReportService:     reportSvc,
		Today:             pkg.Today,
	}
}
