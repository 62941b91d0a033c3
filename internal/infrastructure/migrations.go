package infrastructure

import (
	"Paydue/internal/logger"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []interface{}{
		&categoryDB{},
		&obligationDB{},
		&paymentDB{},
		&settingsDB{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *categoryDB:
		return "Category"
	case *obligationDB:
		return "Obligation"
	case *paymentDB:
		return "Payment"
	case *settingsDB:
		return "Settings"
	default:
		return "Unknown"
	}
}
