package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

func TestLoadConfigDefaults(t *testing.T) {
	// envconfig only applies defaults to unset variables.
	for _, key := range []string{"PORT", "ORGFLOW_DATABASE_DRIVER", "ORGFLOW_ISSUER", "JWT_SECRET", "ORGFLOW_ACCESS_TOKEN_TTL",
		"ORGFLOW_INVITE_TTL", "ORGFLOW_SSE_HEARTBEAT_INTERVAL", "ORGFLOW_SSE_BUFFER", "FRONTEND_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "orgflow", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	require.Equal(t, 30*time.Second, cfg.HeartbeatInterval)
	require.Equal(t, 16, cfg.StreamBuffer)
	require.Equal(t, "http://localhost:3000", cfg.FrontendURL)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := Config{DatabaseDriver: "sqlite", HeartbeatInterval: time.Second, StreamBuffer: 1}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"postgres without url", func(c *Config) { c.DatabaseDriver = "postgres" }},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }},
		{"zero heartbeat", func(c *Config) { c.HeartbeatInterval = 0 }},
		{"zero buffer", func(c *Config) { c.StreamBuffer = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestApplicationServesRoutes(t *testing.T) {
	dir := t.TempDir()
	application, err := New(Config{
		Env:                 "test",
		LogLevel:            "error",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		DatabaseDriver:      "sqlite",
		DatabaseFile:        ":memory:",
		Issuer:              "orgflow-test",
		AccessTokenTTL:      time.Hour,
		PepperFile:          filepath.Join(dir, "pepper"),
		InviteTTL:           time.Hour,
		HeartbeatInterval:   time.Minute,
		StreamBuffer:        4,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := orgflowsdk.NewClient(srv.URL)

	_, err = client.Register(ctx, orgflowsdk.RegisterRequest{Email: "a@example.com", Name: "A", Password: "correct horse battery"})
	require.NoError(t, err)
	session, err := client.Login(ctx, "a@example.com", "correct horse battery")
	require.NoError(t, err)

	org, err := session.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	require.Equal(t, "acme", org.Slug)

	require.FileExists(t, filepath.Join(dir, "pepper"))

	shutdown := make(chan error, 1)
	go func() { shutdown <- application.Shutdown() }()
	select {
	case err := <-shutdown:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown blocked")
	}
}
