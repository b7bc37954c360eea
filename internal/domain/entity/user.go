package entity

import "time"

// Roles del sistema (RBAC).
const (
	RoleAdmin        = "ADMIN"        // acceso total, incluido gestión de usuarios
	RoleEstoque      = "ESTOQUE"      // crea y edita productos y movimientos
	RoleVisualizacao = "VISUALIZACAO" // solo lectura y exportación
)

// User usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ADMIN | ESTOQUE | VISUALIZACAO
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}
