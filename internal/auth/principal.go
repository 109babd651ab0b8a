package auth

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// RoleSet is a set of role names with O(1) membership.
type RoleSet map[Role]struct{}

func RolesOf(names ...string) RoleSet {
	s := make(RoleSet, len(names))
	for _, n := range names {
		s[Role(n)] = struct{}{}
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for r := range s {
		names = append(names, string(r))
	}
	return names
}

// Principal is the authenticated actor behind a request. It is produced
// per request from the bearer token and never persisted.
type Principal struct {
	ID    uuid.UUID
	Roles RoleSet
}

func (p *Principal) HasRole(r Role) bool {
	return p != nil && p.Roles.Has(r)
}
