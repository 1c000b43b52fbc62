package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: marketplace
  sslmode: require
  max_open_conns: 30
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
auth:
  jwt_public_key: "test-key"
  api_keys:
    - key-one
    - key-two
marketplace:
  admin_address: "0x00000000000000000000000000000000000000Ad"
  min_listing_price: 10
  verification_fee: 500
  default_fee_pct: 3
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 30, cfg.Database.MaxOpenConns)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "test-key", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
				assert.Equal(t,
					domain.NormalizeAddress("0x00000000000000000000000000000000000000Ad"),
					domain.NormalizeAddress(cfg.Marketplace.AdminAddress.String()))
				assert.Equal(t, uint64(10), cfg.Marketplace.MinListingPrice)
				assert.Equal(t, uint64(500), cfg.Marketplace.VerificationFee)
				assert.Equal(t, uint64(3), cfg.Marketplace.DefaultFeePct)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: marketplace
marketplace:
  admin_address: "0x00000000000000000000000000000000000000Ad"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "MARKETPLACE_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, uint64(1), cfg.Marketplace.MinListingPrice)
				assert.Equal(t, uint64(100), cfg.Marketplace.VerificationFee)
				assert.Equal(t, uint64(2), cfg.Marketplace.DefaultFeePct)
			},
		},
		{
			name: "missing admin address",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
		{
			name: "fee above ceiling",
			configFile: `
marketplace:
  admin_address: "0x00000000000000000000000000000000000000Ad"
  default_fee_pct: 11
`,
			expectError: true,
		},
		{
			name:        "invalid yaml",
			configFile:  "debug: [unclosed",
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.configFile)

			cfg, err := LoadAPIConfig(path, t.TempDir())
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfigFromEnv(t *testing.T) {
	t.Setenv("FF_MARKETPLACE_DATABASE_HOST", "db.internal")
	t.Setenv("FF_MARKETPLACE_DATABASE_USER", "envuser")
	t.Setenv("FF_MARKETPLACE_MARKETPLACE_ADMIN_ADDRESS", "0x00000000000000000000000000000000000000Ad")
	t.Setenv("FF_MARKETPLACE_MARKETPLACE_VERIFICATION_FEE", "250")

	// Point at an empty directory so no config file is picked up
	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "envuser", cfg.Database.User)
	assert.Equal(t, uint64(250), cfg.Marketplace.VerificationFee)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass",
		DBName:   "marketplace",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=user password=pass dbname=marketplace sslmode=disable",
		cfg.DSN())
}
