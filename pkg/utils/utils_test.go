package utils

import (
	"testing"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceID(t *testing.T) {
	first, err := InvoiceID("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", 15795, "2022-12-06")
	require.NoError(t, err)
	second, err := InvoiceID("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", 15795, "2022-12-06")
	require.NoError(t, err)
	other, err := InvoiceID("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", 666, "2023-06-27")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, IsUUID(first))
}

func TestInvoiceID_IgnoraCaixaDoCustomerID(t *testing.T) {
	upper, err := InvoiceID("CC27C14A-0ACF-4F4A-A6C9-D45682C144B9", 3040, "2022-10-29")
	require.NoError(t, err)
	lower, err := InvoiceID("cc27c14a-0acf-4f4a-a6c9-d45682c144b9", 3040, "2022-10-29")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestInvoiceID_CustomerIDInvalido(t *testing.T) {
	_, err := InvoiceID("cliente-1", 3040, "2022-10-29")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 10)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2023-06-27")
	require.NoError(t, err)
	assert.Equal(t, 2023, date.Year())

	_, err = ParseDate("")
	assert.Error(t, err)

	_, err = ParseDate("27/06/2023")
	assert.Error(t, err)
}

func TestPrettyJson(t *testing.T) {
	out := PrettyJson(map[string]int{"revenue": 2000})
	assert.Equal(t, "{\n  \"revenue\": 2000\n}", out)
}

func TestPrettyJson_ResumoDoSeed(t *testing.T) {
	summary := &domain.SeedSummary{
		RunID: "run-001",
		Tables: []domain.TableSeedResult{
			{Table: domain.TableRevenue, Received: 12, Inserted: 12},
		},
	}

	var out string
	require.NotPanics(t, func() { out = PrettyJson(summary) })

	assert.Contains(t, out, "\n  \"run_id\": \"run-001\"")
	assert.Contains(t, out, "\"table\": \"revenue\"")
}
