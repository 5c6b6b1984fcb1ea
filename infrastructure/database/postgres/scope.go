package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

var ErrScopeClosed = errors.New("postgres: transação já finalizada")

// Scope é uma transação adquirida por BeginScope.
// Ou é confirmada por Commit, ou é descartada por Release; nunca fica pela metade.
type Scope struct {
	tx   *sql.Tx
	mu   sync.Mutex
	done bool
}

func (s *Scope) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.tx.ExecContext(ctx, query, args...)
}

func (s *Scope) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, query, args...)
}

func (s *Scope) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.tx.QueryRowContext(ctx, query, args...)
}

// Commit confirma a transação
func (s *Scope) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrScopeClosed
	}
	s.done = true

	return s.tx.Commit()
}

// Release desfaz a transação se ela ainda não foi confirmada. Depois de Commit não faz nada.
func (s *Scope) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}
	s.done = true

	return s.tx.Rollback()
}

// Done informa se a transação já foi confirmada ou desfeita
func (s *Scope) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}
