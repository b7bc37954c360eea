// Package auth define el control de acceso por roles (RBAC) del sistema.
package auth

import "github.com/estoquepro/estoque-api/internal/domain/entity"

// Permission acción autorizable.
type Permission string

const (
	PermissionCreate      Permission = "CREATE"
	PermissionRead        Permission = "READ"
	PermissionUpdate      Permission = "UPDATE"
	PermissionDelete      Permission = "DELETE"
	PermissionExport      Permission = "EXPORT"
	PermissionManageUsers Permission = "MANAGE_USERS"
)

// rolePermissions mapa de permisos por rol.
var rolePermissions = map[string][]Permission{
	entity.RoleAdmin:        {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete, PermissionExport, PermissionManageUsers},
	entity.RoleEstoque:      {PermissionCreate, PermissionRead, PermissionUpdate, PermissionExport},
	entity.RoleVisualizacao: {PermissionRead, PermissionExport},
}

// HasPermission reporta si el rol tiene el permiso indicado.
func HasPermission(role string, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// RolePermissions devuelve los permisos del rol (nil si el rol no existe).
func RolePermissions(role string) []Permission {
	return rolePermissions[role]
}
