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

// Load reads the base YAML config, merges the environment-specific overlay
// and environment variables, applies defaults and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable env override like TRIAGE_CATALOG_PATH
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

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or any parent holding
// go.mod, so tests running from package directories pick it up too.
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
				return
			}
		}
	}
}

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
		cfg.App.Name = "gastro-triage"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.App.MetricsAddr == "" {
		cfg.App.MetricsAddr = ":8080"
	}
	if cfg.Camunda.BrokerAddress == "" {
		cfg.Camunda.BrokerAddress = "localhost:26500"
	}
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 32
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
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}
	if cfg.Triage.CatalogPath == "" {
		cfg.Triage.CatalogPath = "configs/catalog.json"
	}
	if cfg.Triage.CatalogCacheTTL == 0 {
		cfg.Triage.CatalogCacheTTL = 300
	}
	if cfg.Triage.MaxTextLength == 0 {
		cfg.Triage.MaxTextLength = 4000
	}
	if cfg.Triage.MaxSymptomCount == 0 {
		cfg.Triage.MaxSymptomCount = 25
	}
	if cfg.Triage.MaxCandidates == 0 {
		cfg.Triage.MaxCandidates = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Triage.MaxCandidates < 1 {
		return fmt.Errorf("triage.max_candidates must be positive")
	}
	if cfg.Triage.MaxSymptomCount < 1 {
		return fmt.Errorf("triage.max_symptom_count must be positive")
	}
	if cfg.Triage.MaxTextLength < 1 {
		return fmt.Errorf("triage.max_text_length must be positive")
	}
	if !cfg.Triage.CatalogFromDB && cfg.Triage.CatalogPath == "" {
		return fmt.Errorf("triage.catalog_path is required when catalog_from_db is false")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug/info/warn/error", cfg.Logging.Level)
	}
	return nil
}

// WorkerSettings returns the per-worker config with the camunda-level
// defaults filled in for anything unset.
func (c *Config) WorkerSettings(taskType string) WorkerConfig {
	wc, ok := c.Workers[taskType]
	if !ok {
		wc = WorkerConfig{Enabled: true}
	}
	if wc.MaxJobsActive == 0 {
		wc.MaxJobsActive = c.Camunda.MaxJobsActive
	}
	if wc.Timeout == 0 {
		wc.Timeout = 10000
	}
	return wc
}
