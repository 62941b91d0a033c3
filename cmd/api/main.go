package main

import (
	"fmt"
	"os"

	"Paydue/config"
	appfx "Paydue/internal/fx"
	"Paydue/internal/infrastructure"
	"Paydue/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// @title        Paydue API
// @version      1.0
// @description  Obrigacoes parceladas, quitacao de parcelas e resumos.
// @BasePath     /api
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API HTTP",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migracoes do banco e sai",
		RunE:  runMigrate,
	}

	rootCmd := &cobra.Command{
		Use:           "paydue",
		Short:         "Agenda de obrigacoes parceladas e quitacao de parcelas",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	app := fx.New(appfx.AppModule)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	appfx.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg)

	db, err := infrastructure.Open(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := infrastructure.RunMigrations(db); err != nil {
		return err
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("Migracoes aplicadas")
	return nil
}
