package recommendation

import (
	"context"
	"time"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const (
	StatusIdle        = "idle"
	StatusDelivered   = "delivered"
	StatusUndelivered = "undelivered"
)

// Queue is the consuming side of the reservation queue.
type Queue interface {
	Receive(ctx context.Context, max int, visibility, wait time.Duration) ([]models.QueueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type Search interface {
	SearchByCuisine(ctx context.Context, cuisine string, size int) ([]models.SearchHit, error)
}

type Store interface {
	GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type HandlerOptions struct {
	Config *Config
	Queue  Queue
	Search Search
	Store  Store
	Email  EmailSender
	Logger logger.Logger
}

// Output is the result of one run. It is also the variable set a Zeebe job
// completes with.
type Output struct {
	RunID       string   `json:"runId"`
	Status      string   `json:"status"`
	Delivered   bool     `json:"delivered"`
	MessageID   string   `json:"messageId,omitempty"`
	Recipient   string   `json:"recipient,omitempty"`
	Cuisine     string   `json:"cuisine,omitempty"`
	BusinessIDs []string `json:"businessIds,omitempty"`
	Message     string   `json:"message,omitempty"`
}
