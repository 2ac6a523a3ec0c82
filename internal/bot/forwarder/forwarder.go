// Package forwarder relays chat text to the dialog engine and wraps the
// reply in the chat gateway's message envelope.
package forwarder

import (
	"context"
	"strconv"
	"time"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

// DialogEngine is satisfied by *aws.LexClient.
type DialogEngine interface {
	PostText(ctx context.Context, userID, text string) (int, string, error)
}

type Forwarder struct {
	config *Config
	engine DialogEngine
	now    func() time.Time
	logger logger.Logger
}

func NewForwarder(config *Config, engine DialogEngine, log logger.Logger) *Forwarder {
	return &Forwarder{
		config: config,
		engine: engine,
		now:    time.Now,
		logger: logger.ForComponent(log, "request-forwarder"),
	}
}

// Forward posts text and returns the reply. Engine errors are returned as
// they are.
func (f *Forwarder) Forward(ctx context.Context, text string) (*models.ForwardResponse, error) {
	status, reply, err := f.engine.PostText(ctx, f.config.UserID, text)
	if err != nil {
		metrics.ForwardedMessages.WithLabelValues("error").Inc()
		f.logger.Error("dialog engine request failed", map[string]interface{}{"error": err})
		return nil, err
	}

	metrics.ForwardedMessages.WithLabelValues(strconv.Itoa(status)).Inc()
	f.logger.Debug("dialog engine replied", map[string]interface{}{"statusCode": status})

	return &models.ForwardResponse{
		StatusCode: status,
		Messages: []models.ChatMessage{{
			Type: models.MessageTypeUnstructured,
			Unstructured: models.UnstructuredMessage{
				ID:        f.config.UserID,
				Text:      reply,
				Timestamp: f.now().Format(models.ChatTimestampLayout),
			},
		}},
	}, nil
}
