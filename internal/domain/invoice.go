package domain

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice representa uma fatura. Amount está em centavos e Date no formato YYYY-MM-DD.
// CustomerID referencia customers.id apenas por convenção, não há foreign key.
type Invoice struct {
	ID         string        `json:"id,omitempty"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}
