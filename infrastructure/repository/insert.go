package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/pkg/errors"
)

// execInsert executa um INSERT em lote e devolve quantas linhas foram de fato inseridas.
// Linhas ignoradas pelo ON CONFLICT não entram em RowsAffected.
func execInsert(ctx context.Context, conn postgres.Queryer, builder squirrel.InsertBuilder) (int64, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir consulta")
	}

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao obter linhas inseridas")
	}

	return affected, nil
}
