package domain

// User é um usuário do dashboard. Password guarda o texto puro no dataset e o hash bcrypt no banco.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
