package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// User represents an account that owns questions.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	FullName     string     `json:"fullName"`
	Roles        []RoleName `json:"roles"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// JSON string field for DB storage
	RolesJSON string `json:"-"`
}

// HasRole reports whether the user carries the given role tag.
func (u User) HasRole(role RoleName) bool {
	return ContainsRole(u.Roles, role)
}

// PrepareForSave marshals the role set into RolesJSON for DB storage.
func (u *User) PrepareForSave() {
	if u.Roles == nil {
		u.Roles = []RoleName{}
	}
	rolesBytes, _ := json.Marshal(u.Roles)
	u.RolesJSON = string(rolesBytes)
}

// PrepareForAPI unmarshals RolesJSON back into the role set.
func (u *User) PrepareForAPI() error {
	if u.RolesJSON != "" {
		if err := json.Unmarshal([]byte(u.RolesJSON), &u.Roles); err != nil {
			return fmt.Errorf("decode roles: %w", err)
		}
	}
	if u.Roles == nil {
		u.Roles = []RoleName{}
	}
	return nil
}
