package entity

import "time"

// Roles válidos para User. Se eligen al registrarse; no existe flujo de elevación.
const (
	RoleUser       = "user"
	RoleSales      = "sales"
	RoleProduction = "production"
	RoleAdmin      = "admin"
)

// ValidRole indica si el rol pertenece al conjunto soportado.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleSales, RoleProduction, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // user, sales, production, admin
	CreatedAt    time.Time
}

// Actor es la identidad resuelta de una petición (salida de la capacidad de
// identidad). Se pasa explícitamente a cada caso de uso; no hay estado de
// autenticación ambiente.
type Actor struct {
	ID   string
	Role string
}

// HasRole indica si el actor tiene alguno de los roles indicados.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
