package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero" // operario de bodega: puede mover stock
)

// User representa un usuario de la API (autenticación JWT).
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt
	Name         string
	Role         string // "admin" | "bodeguero"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
