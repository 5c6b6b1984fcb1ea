//go:build integration

package seeding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/repository"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/placeholder"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

type SeedIntegrationTestSuite struct {
	suite.Suite
	ctx  context.Context
	pgc  *pgcontainer.PostgresContainer
	conn *postgres.Connection
	cfg  *config.Config
}

func TestSeedIntegration(t *testing.T) {
	suite.Run(t, new(SeedIntegrationTestSuite))
}

func (s *SeedIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := pgcontainer.Run(s.ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("dashboard"),
		pgcontainer.WithUsername("user"),
		pgcontainer.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgc = pgc

	dsn, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.cfg = &config.Config{
		Database: config.Database{DSN: dsn, MaxOpenConns: 5},
		Seed:     config.Seed{HashCost: bcrypt.MinCost, HashWorkers: 4},
	}

	conn, err := postgres.NewConnection(s.ctx, s.cfg.Database)
	s.Require().NoError(err)
	s.conn = conn
}

func (s *SeedIntegrationTestSuite) TearDownSuite() {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.pgc != nil {
		s.NoError(s.pgc.Terminate(s.ctx))
	}
}

func (s *SeedIntegrationTestSuite) SetupTest() {
	_, err := s.conn.ExecContext(s.ctx, "DROP TABLE IF EXISTS users, customers, invoices, revenue")
	s.Require().NoError(err)
}

func (s *SeedIntegrationTestSuite) newService(dataset *domain.Dataset) *Service {
	return NewService(s.conn, NewBcryptHasher(s.cfg.Seed.HashCost), dataset, s.cfg)
}

func (s *SeedIntegrationTestSuite) defaultDataset() *domain.Dataset {
	dataset, err := placeholder.Default()
	s.Require().NoError(err)
	return dataset
}

func (s *SeedIntegrationTestSuite) rowCounts() map[string]int64 {
	status, err := s.newService(s.defaultDataset()).Status(s.ctx)
	s.Require().NoError(err)

	counts := make(map[string]int64)
	for _, table := range status.Tables {
		if table.Exists {
			counts[table.Table] = table.Rows
		}
	}
	return counts
}

func (s *SeedIntegrationTestSuite) TestSeed_BancoVazio() {
	summary, err := s.newService(s.defaultDataset()).Seed(s.ctx)
	s.Require().NoError(err)

	s.Equal(map[string]int64{"users": 1, "customers": 6, "invoices": 13, "revenue": 12}, s.rowCounts())
	for _, table := range summary.Tables {
		s.Equal(int64(table.Received), table.Inserted, table.Table)
		s.Zero(table.Skipped, table.Table)
	}

	user, err := repository.NewUserRepository(s.conn).GetUserByEmail(s.ctx, "user@nextmail.com")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal("User", user.Name)
	s.NotEqual("123456", user.Password)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123456")))

	revenue, err := repository.NewRevenueRepository(s.conn).GetRevenueByMonth(s.ctx, "Jan")
	s.Require().NoError(err)
	s.Equal(int64(2000), revenue.Revenue)
}

func (s *SeedIntegrationTestSuite) TestSeed_Idempotente() {
	service := s.newService(s.defaultDataset())

	_, err := service.Seed(s.ctx)
	s.Require().NoError(err)
	before := s.rowCounts()

	summary, err := service.Seed(s.ctx)
	s.Require().NoError(err)

	s.Equal(before, s.rowCounts())
	for _, table := range summary.Tables {
		s.Zero(table.Inserted, table.Table)
		s.Equal(int64(table.Received), table.Skipped, table.Table)
	}
}

func (s *SeedIntegrationTestSuite) TestSeed_NaoSobrescreveRegistrosExistentes() {
	service := s.newService(s.defaultDataset())

	_, err := service.Seed(s.ctx)
	s.Require().NoError(err)

	_, err = s.conn.ExecContext(s.ctx, "UPDATE revenue SET revenue = 9999 WHERE month = 'Jan'")
	s.Require().NoError(err)

	_, err = service.Seed(s.ctx)
	s.Require().NoError(err)

	revenue, err := repository.NewRevenueRepository(s.conn).GetRevenueByMonth(s.ctx, "Jan")
	s.Require().NoError(err)
	s.Equal(int64(9999), revenue.Revenue)
}

func (s *SeedIntegrationTestSuite) TestSeed_FalhaDesfazTudo() {
	dataset := s.defaultDataset()
	dataset.Invoices[0].Amount = 3_000_000_000 // não cabe em INT

	_, err := s.newService(dataset).Seed(s.ctx)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrDatabaseOperation))

	var seedErr *SeedError
	s.Require().True(errors.As(err, &seedErr))
	s.Equal(StageInsertInvoices, seedErr.Stage)
	s.Equal("22003", seedErr.SQLState)

	// nem as tabelas criadas na mesma transação devem sobrar
	s.Empty(s.rowCounts())
}

func (s *SeedIntegrationTestSuite) TestSeed_ExecucoesConcorrentes() {
	service := s.newService(s.defaultDataset())

	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := service.Seed(s.ctx)
			errs <- err
		}()
	}

	for i := 0; i < 3; i++ {
		s.NoError(<-errs)
	}

	s.Equal(map[string]int64{"users": 1, "customers": 6, "invoices": 13, "revenue": 12}, s.rowCounts())
}
