package utils

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// invoiceNamespace é o namespace dos ids derivados de faturas. Não alterar: mudar o valor
// gera ids novos e duplica as faturas já populadas.
var invoiceNamespace = uuid.MustParse("6f1c1b0e-4d52-4a8e-9b0c-3f7d8f0d2a11")

// GenerateID gera um id curto, usado para identificar execuções do seed nos logs
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}

// InvoiceID deriva um UUID estável a partir dos campos que identificam uma fatura.
// customerID é normalizado antes, já que o Postgres guarda UUIDs em minúsculas.
func InvoiceID(customerID string, amount int64, date string) (string, error) {
	customer, err := uuid.Parse(customerID)
	if err != nil {
		return "", fmt.Errorf("customer_id inválido %q: %w", customerID, err)
	}

	name := fmt.Sprintf("%s|%d|%s", customer.String(), amount, date)
	return uuid.NewSHA1(invoiceNamespace, []byte(name)).String(), nil
}

// IsUUID informa se s é um UUID válido
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
