package model

import "strconv"

// Permission is one value of the closed permission set. The numeric code is
// what gets persisted inside an account's permissions string, so codes are
// stable: never renumber an existing permission.
type Permission int

const (
	// PermissionUser marks an ordinary authenticated user.
	PermissionUser Permission = 1

	// PermissionAdmin marks an elevated operator.
	PermissionAdmin Permission = 2
)

// AllPermissions lists every known permission.
var AllPermissions = []Permission{
	PermissionUser,
	PermissionAdmin,
}

// Code returns the decimal string form used inside stored permission strings.
func (p Permission) Code() string {
	return strconv.Itoa(int(p))
}

// Label returns the human-readable name of the permission.
func (p Permission) Label() string {
	switch p {
	case PermissionUser:
		return "ordinary user"
	case PermissionAdmin:
		return "administrator"
	default:
		return "unknown"
	}
}

func (p Permission) String() string {
	return p.Label()
}
