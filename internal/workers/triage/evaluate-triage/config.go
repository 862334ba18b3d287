// internal/workers/triage/evaluate-triage/config.go
package evaluatetriage

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
