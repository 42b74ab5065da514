package entity

import "time"

// Perfis válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador" // monta e confirma divisões de carga
)

// User representa um usuário do back-office (operador de expedição ou admin).
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
