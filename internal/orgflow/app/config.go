package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env                 string        `envconfig:"ENV" default:"dev"`        // dev, staging, prod
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error
	LogFormat           string        `envconfig:"LOG_FORMAT" default:"json"`
	Port                int           `envconfig:"PORT" default:"8080"`
	ShutdownGracePeriod time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`

	// FrontendURL is the single allowed CORS origin.
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	DatabaseDriver string `envconfig:"ORGFLOW_DATABASE_DRIVER" default:"sqlite"` // sqlite, postgres
	DatabaseFile   string `envconfig:"ORGFLOW_DATABASE_FILE" default:"orgflow.db"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`

	Issuer string `envconfig:"ORGFLOW_ISSUER" default:"orgflow"`

	// JWTSecret signs access tokens. When empty a random secret is generated
	// and tokens do not survive a restart.
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	AccessTokenTTL time.Duration `envconfig:"ORGFLOW_ACCESS_TOKEN_TTL" default:"1h"`
	PepperFile     string        `envconfig:"ORGFLOW_PEPPER_FILE" default:"pepper"`
	InviteTTL      time.Duration `envconfig:"ORGFLOW_INVITE_TTL" default:"168h"`

	HeartbeatInterval time.Duration `envconfig:"ORGFLOW_SSE_HEARTBEAT_INTERVAL" default:"30s"`
	StreamBuffer      int           `envconfig:"ORGFLOW_SSE_BUFFER" default:"16"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown ORGFLOW_DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("ORGFLOW_SSE_HEARTBEAT_INTERVAL must be positive")
	}
	if c.StreamBuffer < 1 {
		return fmt.Errorf("ORGFLOW_SSE_BUFFER must be at least 1")
	}
	return nil
}
