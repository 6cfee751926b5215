package domain

import "time"

// MaxCommentLength bounds comment content in bytes.
const MaxCommentLength = 4000

type Comment struct {
	ID        string
	TaskID    string
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author details, filled on reads.
	AuthorEmail string
	AuthorName  string
}
