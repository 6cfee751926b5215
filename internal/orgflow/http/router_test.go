package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/live"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/orgflow/pkg/cryptox"
	"github.com/aussiebroadwan/orgflow/pkg/jwtx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

const testIssuer = "orgflow-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestServer(t *testing.T) (*httptest.Server, *live.Registry) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, testIssuer, 0)

	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := live.NewRegistry(logger, m)

	authz := &service.Authorizer{Store: st, Metrics: m}
	notes := &service.NotificationService{
		Store:     st,
		Authz:     authz,
		Publisher: live.NewDispatcher(reg, m),
		Metrics:   m,
	}

	router := NewRouter(verifier, "test", st, reg, m, logger)
	router.UserService = &service.UserService{
		Store:     st,
		Hasher:    cryptox.NewPasswordHasher("test-pepper"),
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: time.Hour,
	}
	router.OrganizationService = &service.OrganizationService{Store: st, Authz: authz}
	router.InviteService = &service.InviteService{Store: st, Authz: authz, Notifications: notes}
	router.TeamService = &service.TeamService{Store: st, Authz: authz}
	router.TaskService = &service.TaskService{Store: st, Authz: authz, Notifications: notes}
	router.CommentService = &service.CommentService{Store: st, Authz: authz}
	router.NotificationService = notes
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		reg.Close()
		srv.Close()
	})
	return srv, reg
}

func login(t *testing.T, client *orgflowsdk.Client, email string) *orgflowsdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := client.Register(ctx, orgflowsdk.RegisterRequest{Email: email, Name: email, Password: "correct horse battery"})
	require.NoError(t, err)
	session, err := client.Login(ctx, email, "correct horse battery")
	require.NoError(t, err)
	return session
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind domain.Kind
		want int
	}{
		{domain.KindNotMember, http.StatusForbidden},
		{domain.KindInsufficientRole, http.StatusForbidden},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindLastOwner, http.StatusBadRequest},
		{domain.KindAlreadyMember, http.StatusBadRequest},
		{domain.KindExpired, http.StatusBadRequest},
		{domain.KindEmailMismatch, http.StatusBadRequest},
		{domain.KindInvalid, http.StatusBadRequest},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindUnauthenticated, http.StatusUnauthorized},
		{domain.KindStoreFailure, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			require.Equal(t, tt.want, StatusFor(tt.kind))
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health orgflowsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)

	liveness, err := orgflowsdk.NewClient(srv.URL).GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "test", liveness.Version)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestRequiresAuthentication(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/organizations")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, err = orgflowsdk.NewClient(srv.URL).NewSession("garbage").Me(context.Background())
	require.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := orgflowsdk.NewClient(srv.URL)
	alice := login(t, client, "alice@example.com")

	_, err := alice.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme"})
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeValidation), "missing slug: %v", err)

	_, err = alice.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "Not A Slug"})
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeInvalid), "bad slug: %v", err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/organizations", strings.NewReader("{"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrganizationFlow(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := orgflowsdk.NewClient(srv.URL)

	alice := login(t, client, "alice@example.com")
	bob := login(t, client, "bob@example.com")
	carol := login(t, client, "carol@example.com")

	org, err := alice.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)

	_, err = bob.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Other", Slug: "acme"})
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeConflict))

	t.Run("non members are forbidden", func(t *testing.T) {
		_, err := bob.GetOrganization(ctx, org.ID)
		var apiErr *orgflowsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, orgflowsdk.CodeNotMember, apiErr.Code)
	})

	t.Run("unknown organization is not found", func(t *testing.T) {
		_, err := alice.GetOrganization(ctx, "missing")
		require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeNotFound))
	})

	inv, err := alice.Invite(ctx, org.ID, orgflowsdk.InviteRequest{Email: "bob@example.com", Role: "MEMBER"})
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)

	t.Run("wrong email cannot accept", func(t *testing.T) {
		_, err := carol.AcceptInvite(ctx, inv.Token)
		var apiErr *orgflowsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, orgflowsdk.CodeEmailMismatch, apiErr.Code)
	})

	m, err := bob.AcceptInvite(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, "MEMBER", m.Role)

	t.Run("members cannot invite", func(t *testing.T) {
		_, err := bob.Invite(ctx, org.ID, orgflowsdk.InviteRequest{Email: "carol@example.com", Role: "MEMBER"})
		require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeInsufficientRole))
	})

	t.Run("sole owner cannot leave", func(t *testing.T) {
		me, err := alice.Me(ctx)
		require.NoError(t, err)
		err = alice.RemoveMember(ctx, org.ID, me.ID)
		var apiErr *orgflowsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, orgflowsdk.CodeLastOwner, apiErr.Code)
	})

	members, err := alice.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	notes, err := alice.ListNotifications(ctx, org.ID, true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, orgflowsdk.NotificationInviteAccepted, notes[0].Type)

	read, err := alice.MarkAllNotificationsRead(ctx, org.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, read.Updated)

	require.NoError(t, alice.DeleteOrganization(ctx, org.ID))
	_, err = alice.GetOrganization(ctx, org.ID)
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeNotFound))
}

func TestAssignmentStreamsNotification(t *testing.T) {
	t.Parallel()
	srv, reg := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client := orgflowsdk.NewClient(srv.URL)

	alice := login(t, client, "alice@example.com")
	bob := login(t, client, "bob@example.com")
	bobUser, err := bob.Me(ctx)
	require.NoError(t, err)

	org, err := alice.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	inv, err := alice.Invite(ctx, org.ID, orgflowsdk.InviteRequest{Email: bobUser.Email, Role: "MEMBER"})
	require.NoError(t, err)
	_, err = bob.AcceptInvite(ctx, inv.Token)
	require.NoError(t, err)

	stream, err := bob.Stream(ctx)
	require.NoError(t, err)
	defer stream.Close()

	ev, err := stream.Next()
	require.NoError(t, err)
	require.NotNil(t, ev.Heartbeat, "first frame is a heartbeat")
	require.Eventually(t, func() bool { return reg.Count() == 1 }, time.Second, 10*time.Millisecond)

	task, err := alice.CreateTask(ctx, org.ID, orgflowsdk.CreateTaskRequest{Title: "Ship it"})
	require.NoError(t, err)
	require.Equal(t, "TODO", task.Status)
	require.Equal(t, "MEDIUM", task.Priority)

	_, err = alice.AssignUser(ctx, task.ID, bobUser.ID)
	require.NoError(t, err)

	ev, err = stream.Next()
	require.NoError(t, err)
	require.NotNil(t, ev.Notification)
	require.Equal(t, orgflowsdk.NotificationTaskAssigned, ev.Notification.Type)
	require.Equal(t, task.ID, *ev.Notification.EntityID)
	require.Equal(t, "You have been assigned to task: Ship it", ev.Notification.Message)

	n, err := bob.MarkNotificationRead(ctx, ev.Notification.ID)
	require.NoError(t, err)
	require.NotNil(t, n.ReadAt)

	_, err = alice.MarkNotificationRead(ctx, ev.Notification.ID)
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeForbidden))

	require.NoError(t, stream.Close())
	require.Eventually(t, func() bool { return reg.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStreamAcceptsQueryToken(t *testing.T) {
	t.Parallel()
	srv, reg := newTestServer(t)
	client := orgflowsdk.NewClient(srv.URL)
	alice := login(t, client, "alice@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/notifications/stream?access_token="+alice.AccessToken(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	ev, err := orgflowsdk.NewStream(resp.Body).Next()
	require.NoError(t, err)
	require.NotNil(t, ev.Heartbeat)
	require.Equal(t, 1, reg.Count())
}

func TestCommentRoutes(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := orgflowsdk.NewClient(srv.URL)

	alice := login(t, client, "alice@example.com")
	bob := login(t, client, "bob@example.com")

	org, err := alice.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	inv, err := alice.Invite(ctx, org.ID, orgflowsdk.InviteRequest{Email: "bob@example.com", Role: "MEMBER"})
	require.NoError(t, err)
	_, err = bob.AcceptInvite(ctx, inv.Token)
	require.NoError(t, err)

	task, err := alice.CreateTask(ctx, org.ID, orgflowsdk.CreateTaskRequest{Title: "review"})
	require.NoError(t, err)

	c, err := bob.AddComment(ctx, task.ID, "looks good")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", c.AuthorEmail)

	_, err = bob.AddComment(ctx, task.ID, "")
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeValidation))

	_, err = alice.UpdateComment(ctx, c.ID, "edited by owner")
	var apiErr *orgflowsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, orgflowsdk.CodeForbidden, apiErr.Code)

	updated, err := bob.UpdateComment(ctx, c.ID, "looks great")
	require.NoError(t, err)
	require.Equal(t, "looks great", updated.Content)

	list, err := alice.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, alice.DeleteComment(ctx, c.ID))
	err = bob.DeleteComment(ctx, c.ID)
	require.True(t, orgflowsdk.IsCode(err, orgflowsdk.CodeNotFound))
}
