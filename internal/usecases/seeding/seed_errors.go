package seeding

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDatabaseOperation é o único erro exposto pelo seed; o estágio e a causa original vêm em SeedError
var ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")

// Stage identifica em que ponto do seed a falha ocorreu
type Stage string

const (
	StageBegin           Stage = "begin"
	StageExtension       Stage = "extension"
	StageSchema          Stage = "schema"
	StageHash            Stage = "hash"
	StageInsertUsers     Stage = "insert_users"
	StageInsertCustomers Stage = "insert_customers"
	StageInsertInvoices  Stage = "insert_invoices"
	StageInsertRevenue   Stage = "insert_revenue"
	StageCommit          Stage = "commit"
	StageStatus          Stage = "status"
)

// SeedError carrega a falha original de qualquer estágio do seed
type SeedError struct {
	Err      error  // Sempre ErrDatabaseOperation
	Stage    Stage  // Estágio em que a falha ocorreu
	Cause    error  // Erro original, repassado sem alteração
	SQLState string // Código SQLSTATE quando a causa vem do Postgres
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.Stage, e.Cause)
}

func (e *SeedError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}

// NewSeedError cria um SeedError, extraindo o SQLSTATE quando a causa é um *pq.Error
func NewSeedError(stage Stage, cause error) *SeedError {
	seedErr := &SeedError{
		Err:   ErrDatabaseOperation,
		Stage: stage,
		Cause: cause,
	}

	var pqErr *pq.Error
	if errors.As(cause, &pqErr) {
		seedErr.SQLState = string(pqErr.Code)
	}

	return seedErr
}
