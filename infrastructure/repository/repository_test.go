package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestSchemaRepository_CreateTables(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSchemaRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, table := range domain.SeedTables {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureExtension(context.Background()))
	require.NoError(t, repo.CreateTables(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaRepository_CreateTables_Erro(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSchemaRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users (")).
		WillReturnError(errors.New("permission denied"))

	err := repo.CreateTables(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao criar tabela users")
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaRepository_TableStatus(t *testing.T) {
	t.Run("Tabela inexistente - não conta registros", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewSchemaRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT to_regclass($1) IS NOT NULL")).
			WithArgs("revenue").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		status, err := repo.TableStatus(context.Background(), "revenue")
		require.NoError(t, err)
		assert.Equal(t, &domain.TableStatus{Table: "revenue"}, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Tabela existente - retorna contagem", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewSchemaRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT to_regclass($1) IS NOT NULL")).
			WithArgs("revenue").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM revenue")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		status, err := repo.TableStatus(context.Background(), "revenue")
		require.NoError(t, err)
		assert.Equal(t, &domain.TableStatus{Table: "revenue", Exists: true, Rows: 12}, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_InsertUsers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	users := []domain.User{
		{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", Password: "$2a$10$hash"},
		{ID: "510544b2-4001-4271-9855-fec4b6a6442a", Name: "Other", Email: "other@nextmail.com", Password: "$2a$10$other"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,name,email,password) VALUES ($1,$2,$3,$4),($5,$6,$7,$8) ON CONFLICT DO NOTHING")).
		WithArgs(
			users[0].ID, users[0].Name, users[0].Email, users[0].Password,
			users[1].ID, users[1].Name, users[1].Email, users[1].Password,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.InsertUsers(context.Background(), users)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_InsertUsers_Vazio(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	inserted, err := repo.InsertUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	t.Run("Usuário encontrado", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password FROM users WHERE email = $1")).
			WithArgs("user@nextmail.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
				AddRow("410544b2-4001-4271-9855-fec4b6a6442a", "User", "user@nextmail.com", "$2a$10$hash"))

		user, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")
		require.NoError(t, err)
		assert.Equal(t, "User", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Usuário inexistente - retorna nil sem erro", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password FROM users WHERE email = $1")).
			WithArgs("nobody@nextmail.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(context.Background(), "nobody@nextmail.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCustomerRepository_InsertCustomers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepository(db)

	customer := domain.Customer{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers (id,name,email,image_url) VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO NOTHING")).
		WithArgs(customer.ID, customer.Name, customer.Email, customer.ImageURL).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.InsertCustomers(context.Background(), []domain.Customer{customer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_InsertInvoices(t *testing.T) {
	t.Run("Faturas com id", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewInvoiceRepository(db)

		invoice := domain.Invoice{
			ID:         "1e0b6c4c-1c1f-4f3a-9d3c-2b8a0c6f7a10",
			CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa",
			Amount:     15795,
			Status:     domain.InvoiceStatusPending,
			Date:       "2022-12-06",
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices (id,customer_id,amount,status,date) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING")).
			WithArgs(invoice.ID, invoice.CustomerID, invoice.Amount, "pending", invoice.Date).
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.InsertInvoices(context.Background(), []domain.Invoice{invoice})
		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fatura sem id - erro antes de acessar o banco", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewInvoiceRepository(db)

		_, err := repo.InsertInvoices(context.Background(), []domain.Invoice{{CustomerID: "x", Date: "2022-12-06"}})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvoiceRepository_GetInvoiceByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInvoiceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1")).
		WithArgs("1e0b6c4c-1c1f-4f3a-9d3c-2b8a0c6f7a10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status", "date"}).
			AddRow("1e0b6c4c-1c1f-4f3a-9d3c-2b8a0c6f7a10", "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", 15795, "pending", time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC)))

	invoice, err := repo.GetInvoiceByID(context.Background(), "1e0b6c4c-1c1f-4f3a-9d3c-2b8a0c6f7a10")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "2022-12-06", invoice.Date)
	assert.Equal(t, int64(15795), invoice.Amount)
}

func TestRevenueRepository_InsertRevenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRevenueRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revenue (month,revenue) VALUES ($1,$2),($3,$4) ON CONFLICT (month) DO NOTHING")).
		WithArgs("Jan", int64(2000), "Feb", int64(1800)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	inserted, err := repo.InsertRevenue(context.Background(), []domain.Revenue{
		{Month: "Jan", Revenue: 2000},
		{Month: "Feb", Revenue: 1800},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueRepository_InsertRevenue_ErroDoBanco(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRevenueRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revenue")).
		WillReturnError(errors.New("value too long for type character varying(4)"))

	_, err := repo.InsertRevenue(context.Background(), []domain.Revenue{{Month: "Jan", Revenue: 2000}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao inserir receitas")
	assert.Contains(t, err.Error(), "value too long")
}
