package enums

import "fmt"

// AdminRole is the coarse role carried inside access tokens. Fine-grained
// permissions live on the warehouse role record.
type AdminRole string

const (
	AdminRoleSuperuser AdminRole = "superuser"
	AdminRoleAdmin     AdminRole = "admin"
	AdminRoleSeller    AdminRole = "seller"
	AdminRoleManager   AdminRole = "manager"
	AdminRoleCustomer  AdminRole = "customer"
)

var validAdminRoles = []AdminRole{
	AdminRoleSuperuser,
	AdminRoleAdmin,
	AdminRoleSeller,
	AdminRoleManager,
	AdminRoleCustomer,
}

// IsValid reports whether the value matches the canonical admin role enum.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAdminRole converts the raw string to AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
