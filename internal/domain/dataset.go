package domain

// Dataset é o conjunto fixo de registros usado para popular o banco
type Dataset struct {
	Users     []User     `json:"users"`
	Customers []Customer `json:"customers"`
	Invoices  []Invoice  `json:"invoices"`
	Revenue   []Revenue  `json:"revenue"`
}
