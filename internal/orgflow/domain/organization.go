package domain

import (
	"regexp"
	"time"
)

// slugPattern accepts lowercase letters, digits and hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s is an acceptable organization slug.
func ValidSlug(s string) bool {
	return len(s) <= 64 && slugPattern.MatchString(s)
}

type Organization struct {
	ID        string
	Name      string
	Slug      string
	OwnerID   string // Creator; role data lives in Membership
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership is the (organization, user, role) authorization record.
type Membership struct {
	OrganizationID string
	UserID         string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Member is a Membership joined with the member's profile.
type Member struct {
	Membership

	Email string
	Name  string
}
