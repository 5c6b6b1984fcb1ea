package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/placeholder"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/usecases/seeding"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/log"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	log.Configure("info")
	logrus.SetOutput(os.Stderr)
	logrus.Info("Iniciando script de seed...")

	if err := run(); err != nil {
		logrus.WithError(err).Error("Seed falhou")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	if err := log.Configure(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := placeholder.Load(cfg.Seed.DatasetPath)
	if err != nil {
		return err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	defer conn.Close()

	service := seeding.NewService(conn, seeding.NewBcryptHasher(cfg.Seed.HashCost), dataset, cfg)

	summary, err := service.Seed(ctx)
	if err != nil {
		return err
	}

	fmt.Println(utils.PrettyJson(summary))
	return nil
}
