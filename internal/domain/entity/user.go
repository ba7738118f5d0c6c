package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleTecnico   = "tecnico"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleBodeguero || r == RoleTecnico
}

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Nombre       string
	Role         string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
