// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Triage        TriageConfig            `mapstructure:"triage"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Triage Engine Config ---

// TriageConfig carries the engine limits and catalog locations. The limits
// guard the validation boundary; the engine itself never truncates silently.
type TriageConfig struct {
	CatalogPath         string `mapstructure:"catalog_path"`          // JSON catalog file, fallback when postgres is disabled
	CatalogFromDB       bool   `mapstructure:"catalog_from_db"`       // load catalog from postgres instead of file
	CatalogCacheTTL     int    `mapstructure:"catalog_cache_ttl"`     // seconds; 0 disables the redis cache
	EmergencyPhrasePath string `mapstructure:"emergency_phrase_path"` // optional override of the built-in phrase list
	MaxTextLength       int    `mapstructure:"max_text_length"`       // characters accepted per message
	MaxSymptomCount     int    `mapstructure:"max_symptom_count"`     // entries accepted in a symptom list
	MaxCandidates       int    `mapstructure:"max_candidates"`        // ranked diseases returned per decision
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Observability and Alerting ---

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NotificationConfig configures the emergency alert dispatch channel.
type NotificationConfig struct {
	AWSRegion     string `mapstructure:"aws_region"`
	AlertTopicARN string `mapstructure:"alert_topic_arn"`
	AlertEmail    string `mapstructure:"alert_email"`
	SenderEmail   string `mapstructure:"sender_email"`
}
