package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	ScoringTaskQueue                   string  `mapstructure:"scoring_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// RegistryConfig holds the upstream credential registry configuration
type RegistryConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ScorerConfig holds scoring weights and the binary threshold
type ScorerConfig struct {
	// Weights maps provider name to the weight string a stamp contributes
	Weights map[string]string `mapstructure:"weights"`
	// Threshold turns the scorer binary when positive
	Threshold string `mapstructure:"threshold"`
}

// ValidatorConfig holds credential validation configuration
type ValidatorConfig struct {
	TrustedIssuers []string `mapstructure:"trusted_issuers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// RescoreSweeperConfig holds configuration for the rescore sweeper
type RescoreSweeperConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	GracePeriod time.Duration `mapstructure:"grace_period"`
	Worker      WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// ScoringWorkerConfig holds configuration for the scoring worker
type ScoringWorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Registry   RegistryConfig  `mapstructure:"registry"`
	Scorer     ScorerConfig    `mapstructure:"scorer"`
	Validator  ValidatorConfig `mapstructure:"validator"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Temporal       TemporalConfig       `mapstructure:"temporal"`
	RescoreSweeper RescoreSweeperConfig `mapstructure:"rescore_sweeper"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.scoring_task_queue", "passport-scoring")

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadScoringWorkerConfig loads configuration for the scoring worker
func LoadScoringWorkerConfig(configFile string, envPath string) (*ScoringWorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.scoring_task_queue", "passport-scoring")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 50)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 10)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "passport-scorer-worker")
	v.SetDefault("registry.timeout", "30s")
	v.SetDefault("scorer.threshold", "0")

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config ScoringWorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Registry.URL == "" {
		return nil, errors.New("registry.url is required")
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.scoring_task_queue", "passport-scoring")
	v.SetDefault("rescore_sweeper.batch_size", 100)
	v.SetDefault("rescore_sweeper.grace_period", "10m")
	v.SetDefault("rescore_sweeper.worker.pool_size", 50)
	v.SetDefault("rescore_sweeper.worker.queue_size", 100)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("PASSPORT_SCORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	// Common config keys
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.scoring_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Registry
		"registry.url",
		"registry.timeout",
		// Scorer
		"scorer.threshold",
		// Validator
		"validator.trusted_issuers",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Rescore sweeper
		"rescore_sweeper.batch_size",
		"rescore_sweeper.grace_period",
		"rescore_sweeper.worker.pool_size",
		"rescore_sweeper.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	// Create candidates list
	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
