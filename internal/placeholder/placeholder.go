// Package placeholder fornece o dataset fixo usado para popular o banco do dashboard
package placeholder

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed placeholder-data.json
var embedded []byte

// ErrInvalidDataset é retornado quando algum registro não passa na validação
var ErrInvalidDataset = errors.New("dataset inválido")

const maxMonthLength = 4

// Default retorna o dataset embutido no binário
func Default() (*domain.Dataset, error) {
	return Parse(embedded)
}

// Load lê o dataset de path; com path vazio usa o dataset embutido
func Load(path string) (*domain.Dataset, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler dataset %s", path)
	}

	return Parse(raw)
}

// Parse decodifica, valida e completa os ids das faturas
func Parse(raw []byte) (*domain.Dataset, error) {
	var dataset domain.Dataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar dataset")
	}

	for i := range dataset.Invoices {
		invoice := &dataset.Invoices[i]
		if invoice.ID != "" {
			continue
		}

		// customer_id inválido deixa o id vazio; Validate reporta os dois
		if id, err := utils.InvoiceID(invoice.CustomerID, invoice.Amount, invoice.Date); err == nil {
			invoice.ID = id
		}
	}

	if err := Validate(&dataset); err != nil {
		return nil, err
	}

	return &dataset, nil
}

// Validate confere os campos obrigatórios e as chaves únicas de cada tabela
func Validate(dataset *domain.Dataset) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	emails := make(map[string]bool)
	userIDs := make(map[string]bool)
	for i, user := range dataset.Users {
		if !utils.IsUUID(user.ID) {
			add("users[%d]: id inválido %q", i, user.ID)
		}
		if user.Name == "" || user.Email == "" || user.Password == "" {
			add("users[%d]: name, email e password são obrigatórios", i)
		}
		if emails[user.Email] {
			add("users[%d]: email duplicado %q", i, user.Email)
		}
		if userIDs[strings.ToLower(user.ID)] {
			add("users[%d]: id duplicado %q", i, user.ID)
		}
		emails[user.Email] = true
		userIDs[strings.ToLower(user.ID)] = true
	}

	customerIDs := make(map[string]bool)
	for i, customer := range dataset.Customers {
		if !utils.IsUUID(customer.ID) {
			add("customers[%d]: id inválido %q", i, customer.ID)
		}
		if customer.Name == "" || customer.Email == "" || customer.ImageURL == "" {
			add("customers[%d]: name, email e image_url são obrigatórios", i)
		}
		if customerIDs[strings.ToLower(customer.ID)] {
			add("customers[%d]: id duplicado %q", i, customer.ID)
		}
		customerIDs[strings.ToLower(customer.ID)] = true
	}

	invoiceIDs := make(map[string]bool)
	for i, invoice := range dataset.Invoices {
		if !utils.IsUUID(invoice.ID) {
			add("invoices[%d]: id inválido %q", i, invoice.ID)
		}
		if !utils.IsUUID(invoice.CustomerID) {
			add("invoices[%d]: customer_id inválido %q", i, invoice.CustomerID)
		}
		if invoice.Amount < 0 {
			add("invoices[%d]: amount negativo", i)
		}
		if invoice.Status == "" {
			add("invoices[%d]: status é obrigatório", i)
		}
		if _, err := utils.ParseDate(invoice.Date); err != nil {
			add("invoices[%d]: date inválida %q", i, invoice.Date)
		}
		if invoiceIDs[strings.ToLower(invoice.ID)] {
			add("invoices[%d]: id duplicado %q", i, invoice.ID)
		}
		invoiceIDs[strings.ToLower(invoice.ID)] = true
	}

	months := make(map[string]bool)
	for i, revenue := range dataset.Revenue {
		if revenue.Month == "" || len(revenue.Month) > maxMonthLength {
			add("revenue[%d]: month deve ter entre 1 e %d caracteres", i, maxMonthLength)
		}
		if revenue.Revenue < 0 {
			add("revenue[%d]: revenue negativa", i)
		}
		if months[revenue.Month] {
			add("revenue[%d]: month duplicado %q", i, revenue.Month)
		}
		months[revenue.Month] = true
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidDataset, strings.Join(problems, "; "))
	}

	return nil
}
