package orgflow_test

import (
	"testing"

	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
	"github.com/stretchr/testify/require"
)

// TestLiveNotifications checks that both notification kinds reach an open
// stream and are listed afterwards.
func TestLiveNotifications(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := orgflowsdk.NewClient(baseURL)
	ctx := t.Context()

	owner, _ := signUp(t, client, "owner@example.com")
	worker, workerUser := signUp(t, client, "worker@example.com")

	org, err := owner.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)

	ownerStream, err := owner.Stream(ctx)
	require.NoError(t, err)
	defer ownerStream.Close()

	workerStream, err := worker.Stream(ctx)
	require.NoError(t, err)
	defer workerStream.Close()

	ev, err := ownerStream.Next()
	require.NoError(t, err)
	require.NotNil(t, ev.Heartbeat)

	ev, err = workerStream.Next()
	require.NoError(t, err)
	require.NotNil(t, ev.Heartbeat)

	join(t, owner, worker, org.ID, workerUser.Email, "MEMBER")

	accepted := nextNotification(t, ownerStream)
	require.Equal(t, orgflowsdk.NotificationInviteAccepted, accepted.Type)
	require.Equal(t, "worker@example.com accepted your invitation", accepted.Message)

	team, err := owner.CreateTeam(ctx, org.ID, orgflowsdk.TeamRequest{Name: "Platform"})
	require.NoError(t, err)
	require.NoError(t, owner.AddTeamMember(ctx, team.ID, workerUser.ID))

	task, err := owner.CreateTask(ctx, org.ID, orgflowsdk.CreateTaskRequest{Title: "Rotate keys", TeamID: team.ID, Priority: "HIGH"})
	require.NoError(t, err)

	_, err = owner.AssignUser(ctx, task.ID, workerUser.ID)
	require.NoError(t, err)

	assigned := nextNotification(t, workerStream)
	require.Equal(t, orgflowsdk.NotificationTaskAssigned, assigned.Type)
	require.Equal(t, task.ID, *assigned.EntityID)

	unread, err := worker.ListNotifications(ctx, org.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, assigned.ID, unread[0].ID)

	// Assignees may move their own task along
	status := "IN_PROGRESS"
	updated, err := worker.UpdateTask(ctx, task.ID, orgflowsdk.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "IN_PROGRESS", updated.Status)
}

// nextNotification skips heartbeats until a notification frame arrives.
func nextNotification(t *testing.T, s *orgflowsdk.Stream) *orgflowsdk.Notification {
	t.Helper()

	for {
		ev, err := s.Next()
		require.NoError(t, err)
		if ev.Notification != nil {
			return ev.Notification
		}
	}
}
