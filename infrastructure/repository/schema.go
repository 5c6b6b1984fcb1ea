package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/pkg/errors"
)

const createExtensionSQL = `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`

// tableDefinitions segue a ordem de domain.SeedTables
var tableDefinitions = []struct {
	table string
	ddl   string
}{
	{
		table: domain.TableUsers,
		ddl: `CREATE TABLE IF NOT EXISTS users (
			id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
	},
	{
		table: domain.TableCustomers,
		ddl: `CREATE TABLE IF NOT EXISTS customers (
			id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			image_url VARCHAR(255) NOT NULL
		)`,
	},
	{
		table: domain.TableInvoices,
		ddl: `CREATE TABLE IF NOT EXISTS invoices (
			id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
			customer_id UUID NOT NULL,
			amount INT NOT NULL,
			status VARCHAR(255) NOT NULL,
			date DATE NOT NULL
		)`,
	},
	{
		table: domain.TableRevenue,
		ddl: `CREATE TABLE IF NOT EXISTS revenue (
			month VARCHAR(4) NOT NULL UNIQUE,
			revenue INT NOT NULL
		)`,
	},
}

type SchemaRepository interface {
	EnsureExtension(ctx context.Context) error
	CreateTables(ctx context.Context) error
	TableStatus(ctx context.Context, table string) (*domain.TableStatus, error)
}

type schemaRepository struct {
	conn postgres.Queryer
}

func NewSchemaRepository(conn postgres.Queryer) SchemaRepository {
	return &schemaRepository{
		conn: conn,
	}
}

// EnsureExtension instala a extensão uuid-ossp, usada pelos DEFAULT das chaves
func (r *schemaRepository) EnsureExtension(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createExtensionSQL); err != nil {
		return errors.Wrap(err, "erro ao criar extensão uuid-ossp")
	}

	return nil
}

func (r *schemaRepository) CreateTables(ctx context.Context) error {
	for _, definition := range tableDefinitions {
		if _, err := r.conn.ExecContext(ctx, definition.ddl); err != nil {
			return errors.Wrapf(err, "erro ao criar tabela %s", definition.table)
		}
	}

	return nil
}

func (r *schemaRepository) TableStatus(ctx context.Context, table string) (*domain.TableStatus, error) {
	status := &domain.TableStatus{Table: table}

	err := r.conn.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&status.Exists)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao verificar tabela %s", table)
	}

	if !status.Exists {
		return status, nil
	}

	query, args, err := squirrel.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&status.Rows); err != nil {
		return nil, errors.Wrapf(err, "erro ao contar registros de %s", table)
	}

	return status, nil
}
