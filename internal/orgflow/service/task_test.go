package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/stretchr/testify/require"
)

func TestTeams(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	member := env.register(t, "member@example.com")
	outsider := env.register(t, "outsider@example.com")
	org := env.createOrg(t, owner, "acme")
	env.join(t, org, owner, member, domain.RoleMember)

	_, err := env.teams.CreateTeam(ctx, org.ID, member.ID, "Nope", "")
	require.ErrorIs(t, err, domain.ErrInsufficientRole)

	team, err := env.teams.CreateTeam(ctx, org.ID, owner.ID, "Core", "platform")
	require.NoError(t, err)

	require.ErrorIs(t, env.teams.AddTeamMember(ctx, team.ID, owner.ID, outsider.ID), domain.ErrNotMember)
	require.NoError(t, env.teams.AddTeamMember(ctx, team.ID, owner.ID, member.ID))
	require.ErrorIs(t, env.teams.AddTeamMember(ctx, team.ID, owner.ID, member.ID), domain.ErrConflict)

	members, err := env.teams.ListTeamMembers(ctx, team.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, member.Email, members[0].Email)

	_, err = env.teams.GetTeam(ctx, team.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrNotMember)

	updated, err := env.teams.UpdateTeam(ctx, team.ID, owner.ID, "Core Platform", "")
	require.NoError(t, err)
	require.Equal(t, "Core Platform", updated.Name)

	require.NoError(t, env.teams.RemoveTeamMember(ctx, team.ID, owner.ID, member.ID))
	require.ErrorIs(t, env.teams.RemoveTeamMember(ctx, team.ID, owner.ID, member.ID), domain.ErrNotFound)

	require.NoError(t, env.teams.DeleteTeam(ctx, team.ID, owner.ID))
	_, err = env.teams.GetTeam(ctx, team.ID, owner.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	member := env.register(t, "member@example.com")
	org := env.createOrg(t, owner, "acme")
	other := env.createOrg(t, owner, "other")
	env.join(t, org, owner, member, domain.RoleMember)

	foreignTeam, err := env.teams.CreateTeam(ctx, other.ID, owner.ID, "Elsewhere", "")
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		task, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "write docs"})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusTodo, task.Status)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
		require.Empty(t, task.TeamID)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: " "})
		require.ErrorIs(t, err, domain.ErrInvalid)

		_, err = env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "x", Status: "LATER"})
		require.ErrorIs(t, err, domain.ErrInvalid)

		_, err = env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "x", TeamID: foreignTeam.ID})
		require.ErrorIs(t, err, domain.ErrNotFound)

		_, err = env.tasks.CreateTask(ctx, org.ID, member.ID, NewTask{Title: "x"})
		require.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("assignees may update", func(t *testing.T) {
		task, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "fix bug"})
		require.NoError(t, err)

		done := domain.TaskStatusDone
		_, err = env.tasks.UpdateTask(ctx, task.ID, member.ID, TaskPatch{Status: &done})
		require.ErrorIs(t, err, domain.ErrInsufficientRole)

		_, err = env.tasks.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.NoError(t, err)

		due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
		updated, err := env.tasks.UpdateTask(ctx, task.ID, member.ID, TaskPatch{Status: &done, DueDate: &due})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusDone, updated.Status)
		require.NotNil(t, updated.DueDate)
		require.True(t, due.Equal(*updated.DueDate))

		updated, err = env.tasks.UpdateTask(ctx, task.ID, member.ID, TaskPatch{ClearDueDate: true})
		require.NoError(t, err)
		require.Nil(t, updated.DueDate)
	})

	t.Run("assignment rules", func(t *testing.T) {
		team, err := env.teams.CreateTeam(ctx, org.ID, owner.ID, "Core", "")
		require.NoError(t, err)
		task, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "team task", TeamID: team.ID})
		require.NoError(t, err)

		_, err = env.tasks.AssignUser(ctx, task.ID, member.ID, member.ID)
		require.ErrorIs(t, err, domain.ErrInsufficientRole)

		_, err = env.tasks.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.ErrorIs(t, err, domain.ErrInvalid, "target must be on the task's team")

		require.NoError(t, env.teams.AddTeamMember(ctx, team.ID, owner.ID, member.ID))
		a, err := env.tasks.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.NoError(t, err)
		require.Equal(t, member.Email, a.Email)

		_, err = env.tasks.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.ErrorIs(t, err, domain.ErrConflict)

		assignees, err := env.tasks.ListAssignees(ctx, task.ID, member.ID)
		require.NoError(t, err)
		require.Len(t, assignees, 1)

		require.NoError(t, env.tasks.UnassignUser(ctx, task.ID, owner.ID, member.ID))
		require.ErrorIs(t, env.tasks.UnassignUser(ctx, task.ID, owner.ID, member.ID), domain.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		task, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "temp"})
		require.NoError(t, err)

		require.ErrorIs(t, env.tasks.DeleteTask(ctx, task.ID, member.ID), domain.ErrInsufficientRole)
		require.NoError(t, env.tasks.DeleteTask(ctx, task.ID, owner.ID))

		_, err = env.tasks.GetTask(ctx, task.ID, owner.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAssignUserRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	outsider := env.register(t, "outsider@example.com")
	org := env.createOrg(t, owner, "acme")

	task, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "t"})
	require.NoError(t, err)

	_, err = env.tasks.AssignUser(ctx, task.ID, owner.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrNotMember)

	list, err := env.store.Notifications().ListNotifications(ctx, outsider.ID, org.ID, false)
	require.NoError(t, err)
	require.Empty(t, list)

	t.Run("notification failure undoes the assignment", func(t *testing.T) {
		member := env.register(t, "member@example.com")
		env.join(t, org, owner, member, domain.RoleMember)

		failing := &TaskService{
			Store:         &faultStore{Store: env.store, createNotification: errInjected},
			Authz:         env.authz,
			Notifications: env.notes,
		}
		_, err := failing.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.ErrorIs(t, err, domain.ErrStoreFailure)

		assigned, err := env.store.Tasks().IsAssignee(ctx, task.ID, member.ID)
		require.NoError(t, err)
		require.False(t, assigned)

		_, err = env.tasks.AssignUser(ctx, task.ID, owner.ID, member.ID)
		require.NoError(t, err)
	})
}

// TestInviteToLiveNotification walks the full flow: A owns an org and invites
// B, B registers and accepts, A assigns B a task, and B's open stream receives
// the persisted notification within the assigning call.
func TestInviteToLiveNotification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.register(t, "a@x.com")
	org := env.createOrg(t, a, "o")

	_, t1, err := env.invites.Invite(ctx, org.ID, a.ID, "b@x.com", domain.RoleMember)
	require.NoError(t, err)

	b := env.register(t, "b@x.com")
	m, err := env.invites.Accept(ctx, b.ID, t1)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, m.Role)

	_, err = env.invites.Accept(ctx, b.ID, t1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	stream := &captureConn{id: "b-stream"}
	require.NoError(t, env.registry.Register(b.ID, stream))

	task, err := env.tasks.CreateTask(ctx, org.ID, a.ID, NewTask{Title: "ship"})
	require.NoError(t, err)
	_, err = env.tasks.AssignUser(ctx, task.ID, a.ID, b.ID)
	require.NoError(t, err)

	// heartbeat plus the assignment, delivered before AssignUser returned
	require.Equal(t, 2, stream.count())

	list, err := env.notes.List(ctx, org.ID, b.ID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.NotificationTaskAssigned, list[0].Type)
	require.Equal(t, task.ID, *list[0].EntityID)
	require.Contains(t, string(stream.frames[1]), list[0].ID)

	require.Equal(t, 1, env.owners(t, org))
}
