package recommendation

import (
	"fmt"
	"time"
)

type Config struct {
	Recommendations   int           `mapstructure:"recommendations"`
	SearchSize        int           `mapstructure:"search_size"`
	VisibilityTimeout time.Duration `mapstructure:"visibility_timeout"`
	WaitTime          time.Duration `mapstructure:"wait_time"`
	Timeout           time.Duration `mapstructure:"timeout"`
	Subject           string        `mapstructure:"subject"`
}

func DefaultConfig() *Config {
	return &Config{
		Recommendations:   3,
		SearchSize:        1000,
		VisibilityTimeout: 10 * time.Second,
		WaitTime:          10 * time.Second,
		Timeout:           30 * time.Second,
		Subject:           "Your Restaurant Recommendation from Chatbot",
	}
}

func (c *Config) Validate() error {
	if c.Recommendations <= 0 {
		return fmt.Errorf("recommendations must be positive")
	}
	if c.SearchSize < c.Recommendations {
		return fmt.Errorf("search_size must be at least recommendations (%d)", c.Recommendations)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}
