package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued to AgriSure staff and integrations.
type Claims struct {
	jwt.RegisteredClaims
	InsurerID string   `json:"insurer_id,omitempty"`
	Roles     []string `json:"roles"`
}

func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

const (
	RoleAdmin        = "admin"
	RoleAdjuster     = "adjuster"
	RoleInvestigator = "investigator"
	RoleAPIClient    = "api_client"
)
