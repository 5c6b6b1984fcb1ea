package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/pkg/errors"
)

const revenueTable = domain.TableRevenue

type RevenueRepository interface {
	InsertRevenue(ctx context.Context, revenue []domain.Revenue) (int64, error)
	GetRevenueByMonth(ctx context.Context, month string) (*domain.Revenue, error)
}

type revenueRepository struct {
	conn postgres.Queryer
}

func NewRevenueRepository(conn postgres.Queryer) RevenueRepository {
	return &revenueRepository{
		conn: conn,
	}
}

func (r *revenueRepository) InsertRevenue(ctx context.Context, revenue []domain.Revenue) (int64, error) {
	if len(revenue) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Insert(revenueTable).
		Columns("month", "revenue").
		Suffix("ON CONFLICT (month) DO NOTHING")

	for _, item := range revenue {
		queryBuilder = queryBuilder.Values(item.Month, item.Revenue)
	}

	inserted, err := execInsert(ctx, r.conn, queryBuilder)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao inserir receitas")
	}

	return inserted, nil
}

func (r *revenueRepository) GetRevenueByMonth(ctx context.Context, month string) (*domain.Revenue, error) {
	query, args, err := squirrel.
		Select("month", "revenue").
		From(revenueTable).
		Where(squirrel.Eq{"month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}

	var revenue domain.Revenue
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&revenue.Month, &revenue.Revenue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar receita")
	}

	return &revenue, nil
}
