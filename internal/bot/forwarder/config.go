package forwarder

import "fmt"

type Config struct {
	// UserID is the fixed conversation identity sent to the dialog engine
	// and echoed as the message id.
	UserID string
}

func DefaultConfig() *Config {
	return &Config{UserID: "123"}
}

func (c *Config) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	return nil
}
