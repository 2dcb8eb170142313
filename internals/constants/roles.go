package constants

import "strings"

// Role akun aplikasi survei: admin puskesmas, kader lapangan, super admin.
const (
	RoleAdmin      = "admin"
	RoleKader      = "kader"
	RoleSuperAdmin = "super_admin"
)

var AllowedRoles = []string{RoleAdmin, RoleKader, RoleSuperAdmin}

// IsAdminRole: admin dan super_admin sama-sama punya hak kelola.
func IsAdminRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	return role == RoleAdmin || role == RoleSuperAdmin ||
		strings.Contains(role, "admin") || strings.Contains(role, "super")
}

// IsSuperAdminRole: laporan & statistik hanya untuk super admin.
func IsSuperAdminRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	return role == RoleSuperAdmin || strings.Contains(role, "super")
}
