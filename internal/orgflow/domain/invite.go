package domain

import "time"

// Invite is a pending, single-use grant of a role in an organization. The raw
// token is never stored; TokenHash holds its fingerprint.
type Invite struct {
	ID             string
	Email          string
	OrganizationID string
	Role           Role
	TokenHash      string
	CreatedBy      string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired reports whether the invite is past its expiry at now.
func (i Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
