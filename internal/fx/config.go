package fx

import (
	"log"

	"Paydue/config"
	"Paydue/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
	fx.Invoke(
		initLogger,
	),
)

// LoadEnvFiles reads .env from the working directory or the repository root.
// Missing files are not an error; the environment may already be set.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: não foi possível carregar .env do diretório atual: %v", err)
	}
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Aviso: não foi possível carregar ../../.env: %v", err)
	}
}

func loadConfig() (*config.Config, error) {
	LoadEnvFiles()
	return config.Load()
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg)
}
