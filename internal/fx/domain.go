package fx

import (
	"context"

	"Paydue/config"
	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/domain/report"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/summary"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newSettingsService,
		newCategoryService,
		obligation.NewService,
		payment.NewService,
		newSummaryService,
		newReportService,
	),
	fx.Invoke(
		seedDefaultCategories,
	),
)

func newSettingsService(repo settings.Repository, cfg *config.Config) *settings.Service {
	return settings.NewService(repo, settings.Defaults{
		NotificationsEnabled:      cfg.Reminders.NotificationsEnabled,
		DefaultReminderDaysBefore: cfg.Reminders.DefaultDaysBefore,
	})
}

func newCategoryService(repo category.Repository) *category.Service {
	return category.NewService(repo)
}

func newSummaryService(payments *payment.Service, categories *category.Service) *summary.Service {
	return summary.NewService(payments, categories)
}

func newReportService(payments *payment.Service, categories *category.Service) *report.Service {
	return report.NewService(payments, categories)
}

func seedDefaultCategories(lc fx.Lifecycle, svc *category.Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.EnsureDefaults(ctx)
		},
	})
}

