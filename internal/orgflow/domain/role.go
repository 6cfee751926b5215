package domain

import "slices"

// Role is an organization-level role held by a member.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts a wire value into a Role. Matching is exact.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// RoleSet is the exact set of roles permitted for an action. There is no
// implied hierarchy: OWNER is only allowed if the set names it.
type RoleSet []Role

var (
	// OwnerOnly permits only organization owners.
	OwnerOnly = RoleSet{RoleOwner}

	// Managers permits owners and admins.
	Managers = RoleSet{RoleOwner, RoleAdmin}

	// AnyMember permits every role.
	AnyMember = RoleSet{RoleOwner, RoleAdmin, RoleMember}
)

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	return slices.Contains(s, r)
}

// Strings returns the roles as plain strings, used in log attributes.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}
