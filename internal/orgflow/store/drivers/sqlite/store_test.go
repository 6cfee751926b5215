package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st *Store, email string) domain.User {
	t.Helper()

	u := domain.User{ID: idx.MustNew().String(), Email: email, Name: email, PasswordHash: "argon2:dummy"}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedOrg(t *testing.T, st *Store, owner domain.User, slug string) domain.Organization {
	t.Helper()
	ctx := context.Background()

	org := domain.Organization{ID: idx.MustNew().String(), Name: slug, Slug: slug, OwnerID: owner.ID}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, org))
	require.NoError(t, st.Memberships().CreateMembership(ctx, domain.Membership{
		OrganizationID: org.ID, UserID: owner.ID, Role: domain.RoleOwner,
	}))
	return org
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	u := seedUser(t, st, "ada@example.com")

	got, err := st.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	err = st.Users().CreateUser(ctx, domain.User{ID: idx.MustNew().String(), Email: u.Email, Name: "dup"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemberships(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	bob := seedUser(t, st, "bob@example.com")
	org := seedOrg(t, st, owner, "acme")

	require.NoError(t, st.Memberships().CreateMembership(ctx, domain.Membership{
		OrganizationID: org.ID, UserID: bob.ID, Role: domain.RoleMember,
	}))

	t.Run("duplicate membership", func(t *testing.T) {
		err := st.Memberships().CreateMembership(ctx, domain.Membership{
			OrganizationID: org.ID, UserID: bob.ID, Role: domain.RoleAdmin,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("find by email", func(t *testing.T) {
		m, err := st.Memberships().FindMembershipByEmail(ctx, org.ID, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, m.Role)

		_, err = st.Memberships().FindMembershipByEmail(ctx, org.ID, "BOB@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("count owners follows role changes", func(t *testing.T) {
		n, err := st.Memberships().CountOwners(ctx, org.ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		require.NoError(t, st.Memberships().UpdateMembershipRole(ctx, org.ID, bob.ID, domain.RoleOwner))
		n, err = st.Memberships().CountOwners(ctx, org.ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("list members joins profiles", func(t *testing.T) {
		members, err := st.Memberships().ListMembers(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, "owner@example.com", members[0].Email)
	})

	t.Run("organization delete requires memberships removed first", func(t *testing.T) {
		other := seedOrg(t, st, owner, "other")
		require.Error(t, st.Organizations().DeleteOrganization(ctx, other.ID))

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Memberships().DeleteMembershipsByOrganization(ctx, other.ID); err != nil {
				return err
			}
			return tx.Organizations().DeleteOrganization(ctx, other.ID)
		})
		require.NoError(t, err)

		_, err = st.Organizations().GetOrganizationByID(ctx, other.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	org := seedOrg(t, st, owner, "acme")

	first, err := st.Invites().UpsertInvite(ctx, domain.Invite{
		ID: idx.MustNew().String(), Email: "new@example.com", OrganizationID: org.ID,
		Role: domain.RoleMember, TokenHash: "hash-1", CreatedBy: owner.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	t.Run("re-invite keeps the row and rotates the token", func(t *testing.T) {
		second, err := st.Invites().UpsertInvite(ctx, domain.Invite{
			ID: idx.MustNew().String(), Email: "new@example.com", OrganizationID: org.ID,
			Role: domain.RoleAdmin, TokenHash: "hash-2", CreatedBy: owner.ID,
			ExpiresAt: time.Now().Add(2 * time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
		require.Equal(t, domain.RoleAdmin, second.Role)

		_, err = st.Invites().GetInviteByTokenHash(ctx, "hash-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := st.Invites().GetInviteByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		require.Equal(t, first.ID, got.ID)
	})

	t.Run("delete is single use", func(t *testing.T) {
		require.NoError(t, st.Invites().DeleteInvite(ctx, first.ID))
		require.ErrorIs(t, st.Invites().DeleteInvite(ctx, first.ID), store.ErrNotFound)
	})
}

func TestTeamsAndTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	org := seedOrg(t, st, owner, "acme")

	team := domain.Team{ID: idx.MustNew().String(), OrganizationID: org.ID, Name: "Platform"}
	require.NoError(t, st.Teams().CreateTeam(ctx, team))
	require.NoError(t, st.Teams().AddTeamMember(ctx, team.ID, owner.ID))
	require.ErrorIs(t, st.Teams().AddTeamMember(ctx, team.ID, owner.ID), store.ErrAlreadyExists)

	due := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	task := domain.Task{
		ID: idx.MustNew().String(), OrganizationID: org.ID, TeamID: team.ID,
		Title: "Ship it", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityHigh,
		DueDate: &due, CreatedBy: owner.ID,
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))
	require.NoError(t, st.Tasks().AddAssignee(ctx, task.ID, owner.ID))

	ok, err := st.Tasks().IsAssignee(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := st.Tasks().GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, team.ID, got.TeamID)
	require.NotNil(t, got.DueDate)
	require.True(t, due.Equal(*got.DueDate))

	// Deleting the team detaches its tasks instead of removing them.
	require.NoError(t, st.Teams().DeleteTeam(ctx, team.ID))
	got, err = st.Tasks().GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, got.TeamID)

	require.NoError(t, st.Tasks().RemoveAssignee(ctx, task.ID, owner.ID))
	require.ErrorIs(t, st.Tasks().RemoveAssignee(ctx, task.ID, owner.ID), store.ErrNotFound)
}

func TestComments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	org := seedOrg(t, st, owner, "acme")
	task := domain.Task{
		ID: idx.MustNew().String(), OrganizationID: org.ID, Title: "Discuss",
		Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow, CreatedBy: owner.ID,
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))

	first := domain.Comment{ID: idx.MustNew().String(), TaskID: task.ID, UserID: owner.ID, Content: "first"}
	second := domain.Comment{ID: idx.MustNew().String(), TaskID: task.ID, UserID: owner.ID, Content: "second"}
	require.NoError(t, st.Comments().CreateComment(ctx, first))
	require.NoError(t, st.Comments().CreateComment(ctx, second))

	got, err := st.Comments().GetCommentByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Content)
	require.Equal(t, owner.Email, got.AuthorEmail)

	list, err := st.Comments().ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)

	require.NoError(t, st.Comments().UpdateCommentContent(ctx, first.ID, "edited"))
	require.ErrorIs(t, st.Comments().UpdateCommentContent(ctx, "missing", "x"), store.ErrNotFound)

	require.NoError(t, st.Comments().DeleteComment(ctx, first.ID))
	require.ErrorIs(t, st.Comments().DeleteComment(ctx, first.ID), store.ErrNotFound)

	// Comments cascade with their task.
	require.NoError(t, st.Tasks().DeleteTask(ctx, task.ID))
	_, err = st.Comments().GetCommentByID(ctx, second.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotifications(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	org := seedOrg(t, st, owner, "acme")

	base := time.Now().UTC().Truncate(time.Second)
	var ids []string
	for i := range 3 {
		n := domain.Notification{
			ID: idx.MustNew().String(), UserID: owner.ID, OrganizationID: org.ID,
			Type: domain.NotificationTaskAssigned, Message: "hello",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, st.Notifications().CreateNotification(ctx, n))
		ids = append(ids, n.ID)
	}

	list, err := st.Notifications().ListNotifications(ctx, owner.ID, org.ID, false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, ids[2], list[0].ID, "newest first")

	first := base.Add(time.Minute)
	require.NoError(t, st.Notifications().MarkNotificationRead(ctx, ids[0], first))
	require.NoError(t, st.Notifications().MarkNotificationRead(ctx, ids[0], first.Add(time.Hour)))

	n, err := st.Notifications().GetNotificationByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, n.ReadAt)
	require.True(t, first.Equal(*n.ReadAt), "read_at is set once")

	unread, err := st.Notifications().ListNotifications(ctx, owner.ID, org.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	changed, err := st.Notifications().MarkAllNotificationsRead(ctx, owner.ID, org.ID, base.Add(2*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 2, changed)
}
