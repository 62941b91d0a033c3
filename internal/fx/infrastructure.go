package fx

import (
	"context"

	"Paydue/config"
	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/shared"
	"Paydue/internal/infrastructure"
	"Paydue/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		fx.Annotate(newObligationRepository, fx.As(new(obligation.Repository))),
		fx.Annotate(newPaymentRepository, fx.As(new(obligation.PaymentRepository))),
		fx.Annotate(newCategoryRepository, fx.As(new(category.Repository))),
		fx.Annotate(newSettingsRepository, fx.As(new(settings.Repository))),
		fx.Annotate(infrastructure.NewGormTransactor, fx.As(new(shared.Transactor))),
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logger.Info().Msg("Fechando conexão com banco de dados")
			return sqlDB.Close()
		},
	})

	return db, nil
}

func newObligationRepository(db *gorm.DB) *infrastructure.ObligationRepository {
	return &infrastructure.ObligationRepository{DB: db}
}

func newPaymentRepository(db *gorm.DB) *infrastructure.PaymentRepository {
	return &infrastructure.PaymentRepository{DB: db}
}

func newCategoryRepository(db *gorm.DB) *infrastructure.CategoryRepository {
	return &infrastructure.CategoryRepository{DB: db}
}

func newSettingsRepository(db *gorm.DB) *infrastructure.SettingsRepository {
	return &infrastructure.SettingsRepository{DB: db}
}
