package seeding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/repository"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/log"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/utils"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mocks/mock_seeder.go -package=mocks . Seeder

type Seeder interface {
	// Seed cria as tabelas e insere o dataset em uma única transação
	Seed(ctx context.Context) (*domain.SeedSummary, error)

	// Status informa, para cada tabela, se ela existe e quantos registros tem
	Status(ctx context.Context) (*domain.SeedStatus, error)
}

type Service struct {
	conn    postgres.Conn
	hasher  PasswordHasher
	dataset *domain.Dataset
	workers int

	// seedMutex serializa execuções do seed dentro do processo
	seedMutex sync.Mutex
	now       func() time.Time
}

func NewService(conn postgres.Conn, hasher PasswordHasher, dataset *domain.Dataset, cfg *config.Config) *Service {
	workers := cfg.Seed.HashWorkers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		conn:    conn,
		hasher:  hasher,
		dataset: dataset,
		workers: workers,
		now:     time.Now,
	}
}

func (s *Service) Seed(ctx context.Context) (*domain.SeedSummary, error) {
	s.seedMutex.Lock()
	defer s.seedMutex.Unlock()

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)
	logger.Info("Populando banco de dados...")

	summary := &domain.SeedSummary{
		RunID:     runID,
		StartedAt: s.now(),
	}

	scope, err := s.conn.BeginScope(ctx)
	if err != nil {
		return nil, s.fail(logger, StageBegin, err)
	}
	defer func() {
		if err := scope.Release(); err != nil {
			logger.WithError(err).Warn("Erro ao desfazer transação")
		}
	}()

	schemaRepo := repository.NewSchemaRepository(scope)

	if err := schemaRepo.EnsureExtension(ctx); err != nil {
		return nil, s.fail(logger, StageExtension, err)
	}

	if err := schemaRepo.CreateTables(ctx); err != nil {
		return nil, s.fail(logger, StageSchema, err)
	}
	logger.Info("Tabelas criadas")

	logger.Info("Gerando hash das senhas...")
	users, err := s.hashUsers(ctx)
	if err != nil {
		return nil, s.fail(logger, StageHash, err)
	}

	steps := []struct {
		table    string
		stage    Stage
		received int
		insert   func() (int64, error)
	}{
		{
			table:    domain.TableUsers,
			stage:    StageInsertUsers,
			received: len(users),
			insert: func() (int64, error) {
				return repository.NewUserRepository(scope).InsertUsers(ctx, users)
			},
		},
		{
			table:    domain.TableCustomers,
			stage:    StageInsertCustomers,
			received: len(s.dataset.Customers),
			insert: func() (int64, error) {
				return repository.NewCustomerRepository(scope).InsertCustomers(ctx, s.dataset.Customers)
			},
		},
		{
			table:    domain.TableInvoices,
			stage:    StageInsertInvoices,
			received: len(s.dataset.Invoices),
			insert: func() (int64, error) {
				return repository.NewInvoiceRepository(scope).InsertInvoices(ctx, s.dataset.Invoices)
			},
		},
		{
			table:    domain.TableRevenue,
			stage:    StageInsertRevenue,
			received: len(s.dataset.Revenue),
			insert: func() (int64, error) {
				return repository.NewRevenueRepository(scope).InsertRevenue(ctx, s.dataset.Revenue)
			},
		},
	}

	for _, step := range steps {
		logger.WithField("table", step.table).Info("Inserindo registros...")

		inserted, err := step.insert()
		if err != nil {
			return nil, s.fail(logger, step.stage, err)
		}

		summary.Tables = append(summary.Tables, domain.TableSeedResult{
			Table:    step.table,
			Received: step.received,
			Inserted: inserted,
			Skipped:  int64(step.received) - inserted,
		})
	}

	if err := scope.Commit(); err != nil {
		return nil, s.fail(logger, StageCommit, err)
	}

	summary.FinishedAt = s.now()
	summary.DurationMS = summary.FinishedAt.Sub(summary.StartedAt).Milliseconds()

	logger.WithField("duration_ms", summary.DurationMS).Info("Banco de dados populado com sucesso")

	return summary, nil
}

// hashUsers devolve uma cópia dos usuários com as senhas já em hash.
// Todos os hashes terminam antes do retorno; qualquer falha cancela os demais.
func (s *Service) hashUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, len(s.dataset.Users))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for i, user := range s.dataset.Users {
		i, user := i, user
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			hashed, err := s.hasher.Hash(user.Password)
			if err != nil {
				return fmt.Errorf("erro ao gerar hash da senha de %s: %w", user.Email, err)
			}

			user.Password = hashed
			users[i] = user
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Service) Status(ctx context.Context) (*domain.SeedStatus, error) {
	schemaRepo := repository.NewSchemaRepository(s.conn)

	status := &domain.SeedStatus{Tables: make([]domain.TableStatus, 0, len(domain.SeedTables))}
	for _, table := range domain.SeedTables {
		tableStatus, err := schemaRepo.TableStatus(ctx, table)
		if err != nil {
			return nil, NewSeedError(StageStatus, err)
		}
		status.Tables = append(status.Tables, *tableStatus)
	}

	return status, nil
}

func (s *Service) fail(logger log.Logger, stage Stage, cause error) error {
	seedErr := NewSeedError(stage, cause)

	logger.WithFields(log.Fields{
		"stage": string(stage),
		"error": cause.Error(),
	}).Error("Erro ao popular banco de dados")

	return seedErr
}
