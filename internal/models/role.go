package models

// RoleName is one of the enumerated permission tags carried by a user.
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// Role is the persisted record for a role name.
type Role struct {
	ID   string   `json:"id"`
	Name RoleName `json:"name"`
}

// ContainsRole reports whether roles holds role.
func ContainsRole(roles []RoleName, role RoleName) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
