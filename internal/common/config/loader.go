// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like TICKETING_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from multiple locations so the agent behaves the same
// whether started from the repo root, a cmd dir, or a test package.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("✅ Loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf("⚠️  .env file not found in any location, using system environment variables\n")
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "hr-service-agent"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7500
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 8080
	}
	if cfg.Server.ExternalURL == "" {
		cfg.Server.ExternalURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Relay.Port == 0 {
		cfg.Relay.Port = 5000
	}
	if cfg.Relay.TargetURL == "" {
		cfg.Relay.TargetURL = fmt.Sprintf("http://localhost:%d/webhook", cfg.Server.Port)
	}
	if cfg.Relay.Timeout == 0 {
		cfg.Relay.Timeout = 10000
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "Dr. Reddy's Laboratories Limited"
	}
	if cfg.Company.Address == "" {
		cfg.Company.Address = "8-2-337, Road No. 3, Banjara Hills, Hyderabad - 500034"
	}
	if cfg.Company.HRHelpdesk == "" {
		cfg.Company.HRHelpdesk = "hr.helpdesk@drreddy.com"
	}
	if cfg.Company.FiscalStart == "" {
		cfg.Company.FiscalStart = "april"
	}
	if cfg.Ticketing.Timeout == 0 {
		cfg.Ticketing.Timeout = 10000
	}
	if cfg.Documents.OutputDir == "" {
		cfg.Documents.OutputDir = "hr_outputs"
	}
	if cfg.Audit.Table == "" {
		cfg.Audit.Table = "processed_tickets"
	}
	if cfg.Audit.Index == "" {
		cfg.Audit.Index = "hr-ticket-outcomes"
	}
	if cfg.Notifications.Region == "" {
		cfg.Notifications.Region = "ap-south-1"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}
	if cfg.Database.Postgres.Host == "" {
		cfg.Database.Postgres.Host = "localhost"
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 {
		cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// applyEnvOverrides covers the handful of secrets that are only ever set via
// environment, even when a yaml config is present.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TICKETING_BASE_URL"); v != "" {
		cfg.Ticketing.BaseURL = v
	}
	if v := os.Getenv("TICKETING_API_KEY"); v != "" {
		cfg.Ticketing.APIKey = v
	}
	if v := os.Getenv("RENDER_EXTERNAL_URL"); v != "" {
		cfg.Server.ExternalURL = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Postgres.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Database.Redis.Password = v
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", cfg.Server.Port)
	}
	if cfg.Server.Port == cfg.Server.MetricsPort {
		return fmt.Errorf("server and metrics ports must differ")
	}
	if cfg.Audit.Enabled && cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("audit enabled but no postgres database configured")
	}
	if cfg.Notifications.Enabled && cfg.Notifications.FromAddress == "" {
		return fmt.Errorf("notifications enabled but no from_address configured")
	}
	return nil
}
