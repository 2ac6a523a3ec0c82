package dialog

import "fmt"

type Config struct {
	// DefaultPrompts replace validator failures that carry no message,
	// keyed by slot name. Slots without an entry defer to the engine's
	// build-time prompt.
	DefaultPrompts map[string]string

	GreetingMessage    string
	ThankYouMessage    string
	FulfillmentMessage string
}

func DefaultConfig() *Config {
	return &Config{
		DefaultPrompts:     map[string]string{},
		GreetingMessage:    "Hi there, how can I help you?",
		ThankYouMessage:    "You are welcome!",
		FulfillmentMessage: "You're all set. Expect my suggestions shortly! Have a good day.",
	}
}

func (c *Config) Validate() error {
	if c.GreetingMessage == "" {
		return fmt.Errorf("greeting message is required")
	}
	if c.ThankYouMessage == "" {
		return fmt.Errorf("thank you message is required")
	}
	if c.FulfillmentMessage == "" {
		return fmt.Errorf("fulfillment message is required")
	}
	return nil
}
