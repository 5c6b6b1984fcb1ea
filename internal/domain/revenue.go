package domain

// Revenue é a receita de um mês; Month é a abreviação de até 4 caracteres (Jan, Feb, ...)
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}
