package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
  write_timeout: 15
  idle_timeout: 60
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
temporal:
  host_port: "temporal:7233"
  namespace: "scorer"
  scoring_task_queue: "scoring"
auth:
  jwt_public_key: "test-key"
  api_keys:
    - key-one
    - key-two
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "scorer", cfg.Temporal.Namespace)
				assert.Equal(t, "scoring", cfg.Temporal.ScoringTaskQueue)
				assert.Equal(t, "test-key", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "default", cfg.Temporal.Namespace)
				assert.Equal(t, "passport-scoring", cfg.Temporal.ScoringTaskQueue)
			},
		},
		{
			name: "invalid yaml",
			configFile: `
database:
  port: not-a-number
`,
			expectError: true, // Invalid port should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadScoringWorkerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *ScoringWorkerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
temporal:
  host_port: "temporal:7233"
  scoring_task_queue: "scoring"
nats:
  url: "nats://localhost:4222"
  max_reconnects: 5
  reconnect_wait: "5s"
  connection_name: "test-connection"
registry:
  url: "https://registry.example.com"
  timeout: "10s"
scorer:
  threshold: "20"
  weights:
    Ens: "2.2"
    Google: "1.0"
validator:
  trusted_issuers:
    - "did:key:test-issuer"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *ScoringWorkerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "https://registry.example.com", cfg.Registry.URL)
				assert.Equal(t, 10*time.Second, cfg.Registry.Timeout)
				assert.Equal(t, "20", cfg.Scorer.Threshold)
				assert.Equal(t, "2.2", cfg.Scorer.Weights["Ens"])
				assert.Equal(t, "1.0", cfg.Scorer.Weights["Google"])
				assert.Equal(t, []string{"did:key:test-issuer"}, cfg.Validator.TrustedIssuers)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
registry:
  url: "https://registry.example.com"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *ScoringWorkerConfig) {
				// Check defaults
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "passport-scorer-worker", cfg.NATS.ConnectionName)
				assert.Equal(t, 30*time.Second, cfg.Registry.Timeout)
				assert.Equal(t, "0", cfg.Scorer.Threshold)
				assert.Equal(t, 50, cfg.Temporal.MaxConcurrentActivityExecutionSize)
				assert.Equal(t, float64(50), cfg.Temporal.WorkerActivitiesPerSecond)
				assert.Equal(t, 10, cfg.Temporal.MaxConcurrentActivityTaskPollers)
			},
		},
		{
			name: "missing registry url",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadScoringWorkerConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
  max_open_conns: 10
  max_idle_conns: 5
rescore_sweeper:
  batch_size: 250
  grace_period: "30m"
  worker:
    pool_size: 20
    queue_size: 250
`,
			expectError: false,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 10, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5, cfg.Database.MaxIdleConns)
				assert.Equal(t, 250, cfg.RescoreSweeper.BatchSize)
				assert.Equal(t, 30*time.Minute, cfg.RescoreSweeper.GracePeriod)
				assert.Equal(t, 20, cfg.RescoreSweeper.Worker.WorkerPoolSize)
				assert.Equal(t, 250, cfg.RescoreSweeper.Worker.WorkerQueueSize)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				// Check defaults
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, 100, cfg.RescoreSweeper.BatchSize)
				assert.Equal(t, 10*time.Minute, cfg.RescoreSweeper.GracePeriod)
				assert.Equal(t, 50, cfg.RescoreSweeper.Worker.WorkerPoolSize)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadSweeperConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestAPIConfigEnvOverride(t *testing.T) {
	t.Setenv("PASSPORT_SCORER_DATABASE_HOST", "env-host")
	t.Setenv("PASSPORT_SCORER_SERVER_PORT", "9999")
	t.Setenv("PASSPORT_SCORER_DEBUG", "true")

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(`
database:
  host: file-host
  user: testuser
  password: testpass
  dbname: testdb
`), 0600)
	require.NoError(t, err)

	cfg, err := LoadAPIConfig(configFile, tmpDir)
	require.NoError(t, err)

	// Environment variables override file values
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Debug)
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "scorer",
		Password: "secret",
		DBName:   "passport",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=scorer password=secret dbname=passport sslmode=disable", cfg.DSN())
}
