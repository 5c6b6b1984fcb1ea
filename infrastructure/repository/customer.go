package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/pkg/errors"
)

const customersTable = domain.TableCustomers

type CustomerRepository interface {
	InsertCustomers(ctx context.Context, customers []domain.Customer) (int64, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
}

type customerRepository struct {
	conn postgres.Queryer
}

func NewCustomerRepository(conn postgres.Queryer) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) InsertCustomers(ctx context.Context, customers []domain.Customer) (int64, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Insert(customersTable).
		Columns("id", "name", "email", "image_url").
		Suffix("ON CONFLICT (id) DO NOTHING")

	for _, customer := range customers {
		queryBuilder = queryBuilder.Values(customer.ID, customer.Name, customer.Email, customer.ImageURL)
	}

	inserted, err := execInsert(ctx, r.conn, queryBuilder)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao inserir clientes")
	}

	return inserted, nil
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select("id", "name", "email", "image_url").
		From(customersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}

	var customer domain.Customer
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar cliente")
	}

	return &customer, nil
}
