// internal/workers/directory/classify-chat-intent/config.go
package classifychatintent

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
