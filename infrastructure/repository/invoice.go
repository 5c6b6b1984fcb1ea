package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/utils"
	"github.com/pkg/errors"
)

const invoicesTable = domain.TableInvoices

type InvoiceRepository interface {
	InsertInvoices(ctx context.Context, invoices []domain.Invoice) (int64, error)
	GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)
}

type invoiceRepository struct {
	conn postgres.Queryer
}

func NewInvoiceRepository(conn postgres.Queryer) InvoiceRepository {
	return &invoiceRepository{
		conn: conn,
	}
}

// InsertInvoices exige o id preenchido: é ele que torna o ON CONFLICT efetivo
func (r *invoiceRepository) InsertInvoices(ctx context.Context, invoices []domain.Invoice) (int64, error) {
	if len(invoices) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Insert(invoicesTable).
		Columns("id", "customer_id", "amount", "status", "date").
		Suffix("ON CONFLICT (id) DO NOTHING")

	for _, invoice := range invoices {
		if invoice.ID == "" {
			return 0, errors.Errorf("fatura do cliente %s em %s sem id", invoice.CustomerID, invoice.Date)
		}
		queryBuilder = queryBuilder.Values(invoice.ID, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.Date)
	}

	inserted, err := execInsert(ctx, r.conn, queryBuilder)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao inserir faturas")
	}

	return inserted, nil
}

func (r *invoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query, args, err := squirrel.
		Select("id", "customer_id", "amount", "status", "date").
		From(invoicesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}

	var (
		invoice domain.Invoice
		status  string
		date    time.Time
	)
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &status, &date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar fatura")
	}

	invoice.Status = domain.InvoiceStatus(status)
	invoice.Date = date.Format(utils.DateLayout)

	return &invoice, nil
}
