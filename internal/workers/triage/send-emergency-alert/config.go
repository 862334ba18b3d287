// internal/workers/triage/send-emergency-alert/config.go
package sendemergencyalert

import "time"

type Config struct {
	AWSRegion     string
	AlertTopicARN string
	AlertEmail    string
	SenderEmail   string
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion: "us-east-1",
		Timeout:   15 * time.Second,
	}
}
