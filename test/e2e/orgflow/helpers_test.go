package orgflow_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for orgflow end-to-end tests.
 * This includes container setup, account bootstrap, and assertions.
 */

const (
	testImageName = "orgflow-test:latest"

	testPassword = "correct horse battery"
	testSecret   = "e2e-secret-0123456789abcdef012345"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building orgflow Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up orgflow Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/orgflow/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupContainer starts orgflow on the embedded sqlite store and returns the
// base URL.
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ORGFLOW_DATABASE_FILE":          "/tmp/orgflow.db",
			"ORGFLOW_PEPPER_FILE":            "/tmp/pepper",
			"ORGFLOW_ISSUER":                 "orgflow-e2e",
			"ORGFLOW_SSE_HEARTBEAT_INTERVAL": "1s",
			"JWT_SECRET":                     testSecret,
			"ENV":                            "test",
			"LOG_LEVEL":                      "info",
			"LOG_FORMAT":                     "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// signUp registers email and returns a logged in session with the user.
func signUp(t *testing.T, client *orgflowsdk.Client, email string) (*orgflowsdk.Session, *orgflowsdk.UserResponse) {
	t.Helper()

	user, err := client.Register(t.Context(), orgflowsdk.RegisterRequest{Email: email, Name: email, Password: testPassword})
	require.NoError(t, err)

	session, err := client.Login(t.Context(), email, testPassword)
	require.NoError(t, err)
	return session, user
}

// join invites email into orgID from inviter and accepts it as invitee.
func join(t *testing.T, inviter, invitee *orgflowsdk.Session, orgID, email, role string) {
	t.Helper()

	inv, err := inviter.Invite(t.Context(), orgID, orgflowsdk.InviteRequest{Email: email, Role: role})
	require.NoError(t, err)

	_, err = invitee.AcceptInvite(t.Context(), inv.Token)
	require.NoError(t, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *orgflowsdk.HealthResponse, err error) {
	t.Helper()

	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertCode checks err is an API error with the given status and code.
func assertCode(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *orgflowsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
}
