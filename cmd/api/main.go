package main

import (
	"context"

	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/api"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/placeholder"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/scheduler"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/usecases/seeding"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Configure(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	dataset, err := placeholder.Load(cfg.Seed.DatasetPath)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar dataset do seed")
	}

	hasher := seeding.NewBcryptHasher(cfg.Seed.HashCost)
	seedService := seeding.NewService(pgConn, hasher, dataset, cfg)

	seedSyncService := scheduler.NewSeedSyncService(seedService, cfg)
	if err := seedSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do seed")
	} else {
		logrus.Info("Agendador do seed iniciado com sucesso")
	}

	server := api.New(cfg, seedService, seedSyncService)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	cancel()
	seedSyncService.Wait()
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
