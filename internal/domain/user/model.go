package user

import "strings"

// Principal is the caller identity resolved from an access token.
type Principal struct {
	UserID  string
	Email   string
	Roles   []string
	IsAdmin bool
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}
