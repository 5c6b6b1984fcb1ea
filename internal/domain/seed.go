package domain

import "time"

const (
	TableUsers     = "users"
	TableCustomers = "customers"
	TableInvoices  = "invoices"
	TableRevenue   = "revenue"
)

// SeedTables lista as tabelas na ordem em que são populadas
var SeedTables = []string{TableUsers, TableCustomers, TableInvoices, TableRevenue}

type TableSeedResult struct {
	Table    string `json:"table"`
	Received int    `json:"received"`
	Inserted int64  `json:"inserted"`
	Skipped  int64  `json:"skipped"`
}

type SeedSummary struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	DurationMS int64             `json:"duration_ms"`
	Tables     []TableSeedResult `json:"tables"`
}

type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
	Rows   int64  `json:"rows"`
}

type SeedStatus struct {
	Tables []TableStatus `json:"tables"`
}
