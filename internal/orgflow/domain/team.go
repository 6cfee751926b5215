package domain

import "time"

type Team struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TeamMember struct {
	TeamID    string
	UserID    string
	Email     string
	Name      string
	CreatedAt time.Time
}
