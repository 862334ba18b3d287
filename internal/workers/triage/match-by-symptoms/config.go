// internal/workers/triage/match-by-symptoms/config.go
package matchbysymptoms

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
