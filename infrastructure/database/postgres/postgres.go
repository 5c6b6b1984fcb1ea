package postgres

import (
	"context"
	"database/sql"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	_ "github.com/lib/pq"
)

type Conn interface {
	Queryer
	BeginScope(context.Context) (*Scope, error)
	Close() error
	Ping(context.Context) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// BeginScope abre uma transação com escopo explícito.
// O chamador deve sempre adiar Release; Commit só é chamado no caminho de sucesso.
func (c *Connection) BeginScope(ctx context.Context) (*Scope, error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Scope{tx: tx}, nil
}
