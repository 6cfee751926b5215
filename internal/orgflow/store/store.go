package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories returned by a Tx operate on that
// transaction only, so a multi-row mutation is written against the Tx it was
// handed and never against the outer Store.
type Store interface {
	Users() Users
	Organizations() Organizations
	Memberships() Memberships
	Invites() Invites
	Teams() Teams
	Tasks() Tasks
	Comments() Comments
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Organizations interface {
	// CreateOrganization inserts an organization. Returns ErrAlreadyExists
	// when the slug is taken.
	CreateOrganization(ctx context.Context, o domain.Organization) error

	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// ListOrganizationsForUser returns every organization the user is a member of.
	ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error)

	UpdateOrganizationName(ctx context.Context, id, name string) error

	// DeleteOrganization removes the organization row. Dependent teams,
	// invites, tasks and notifications cascade per schema.
	DeleteOrganization(ctx context.Context, id string) error
}

type Memberships interface {
	// FindMembership returns ErrNotFound when the user has no membership in the org.
	FindMembership(ctx context.Context, orgID, userID string) (domain.Membership, error)

	// FindMembershipByEmail resolves the membership of the user registered
	// with email, if any.
	FindMembershipByEmail(ctx context.Context, orgID, email string) (domain.Membership, error)

	ListMembers(ctx context.Context, orgID string) ([]domain.Member, error)

	// CreateMembership returns ErrAlreadyExists for a duplicate (org, user).
	CreateMembership(ctx context.Context, m domain.Membership) error

	UpdateMembershipRole(ctx context.Context, orgID, userID string, role domain.Role) error
	DeleteMembership(ctx context.Context, orgID, userID string) error
	DeleteMembershipsByOrganization(ctx context.Context, orgID string) error

	CountOwners(ctx context.Context, orgID string) (int, error)
}

type Invites interface {
	// UpsertInvite writes the invite keyed on (email, organization). An
	// existing row keeps its ID and gets the new role, token hash and expiry.
	UpsertInvite(ctx context.Context, inv domain.Invite) (domain.Invite, error)

	// GetInviteByTokenHash returns the invite regardless of expiry.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// DeleteInvite returns ErrNotFound when no row was deleted.
	DeleteInvite(ctx context.Context, id string) error
}

type Teams interface {
	CreateTeam(ctx context.Context, t domain.Team) error
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)
	ListTeams(ctx context.Context, orgID string) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, t domain.Team) error
	DeleteTeam(ctx context.Context, id string) error

	// AddTeamMember returns ErrAlreadyExists for a duplicate (team, user).
	AddTeamMember(ctx context.Context, teamID, userID string) error
	IsTeamMember(ctx context.Context, teamID, userID string) (bool, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)

	// RemoveTeamMember returns ErrNotFound when the user is not on the team.
	RemoveTeamMember(ctx context.Context, teamID, userID string) error

	// RemoveUserFromOrganizationTeams drops the user from every team of the org.
	RemoveUserFromOrganizationTeams(ctx context.Context, orgID, userID string) error
}

type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)
	ListTasks(ctx context.Context, orgID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error

	// AddAssignee returns ErrAlreadyExists for a duplicate (task, user).
	AddAssignee(ctx context.Context, taskID, userID string) error
	IsAssignee(ctx context.Context, taskID, userID string) (bool, error)
	ListAssignees(ctx context.Context, taskID string) ([]domain.TaskAssignee, error)

	// RemoveAssignee returns ErrNotFound when the user is not assigned.
	RemoveAssignee(ctx context.Context, taskID, userID string) error
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) error

	// GetCommentByID returns the comment with its author details.
	GetCommentByID(ctx context.Context, id string) (domain.Comment, error)

	// ListComments returns the task's comments, newest first.
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)

	UpdateCommentContent(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	GetNotificationByID(ctx context.Context, id string) (domain.Notification, error)

	// ListNotifications returns the user's notifications in the org, newest first.
	ListNotifications(ctx context.Context, userID, orgID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkNotificationRead sets read_at only when it is still null.
	MarkNotificationRead(ctx context.Context, id string, at time.Time) error

	// MarkAllNotificationsRead marks every unread notification of the user in
	// the org and returns how many rows changed.
	MarkAllNotificationsRead(ctx context.Context, userID, orgID string, at time.Time) (int64, error)
}
