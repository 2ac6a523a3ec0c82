// Package dispatch routes code hook events to the intent handlers.
package dispatch

import (
	"context"

	"github.com/google/uuid"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

type HandlerFunc func(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error)

// IntentHandlers is satisfied by *dialog.Controller.
type IntentHandlers interface {
	HandleGreeting(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error)
	HandleDiningSuggestion(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error)
	HandleThankYou(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error)
}

type Dispatcher struct {
	handlers [numIntents]HandlerFunc
	logger   logger.Logger
}

func NewDispatcher(h IntentHandlers, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: [numIntents]HandlerFunc{
			IntentGreeting:         h.HandleGreeting,
			IntentDiningSuggestion: h.HandleDiningSuggestion,
			IntentThankYou:         h.HandleThankYou,
		},
		logger: logger.ForComponent(log, "intent-dispatcher"),
	}
}

// Dispatch runs the handler registered for the event's intent. Unknown
// intents fail with UNSUPPORTED_INTENT.
func (d *Dispatcher) Dispatch(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error) {
	name := event.CurrentIntent.Name
	log := d.logger.WithFields(map[string]interface{}{
		"turnId":           uuid.NewString(),
		"intent":           name,
		"invocationSource": event.InvocationSource,
		"userId":           event.UserID,
	})

	intent, ok := ParseIntent(name)
	if !ok {
		metrics.DialogTurns.WithLabelValues("unsupported", "error").Inc()
		log.Warn("unsupported intent", nil)
		return models.DialogResponse{}, errors.NewUnsupportedIntentError(name)
	}

	log.Debug("dispatching turn", nil)
	resp, err := d.handlers[intent](ctx, event)
	if err != nil {
		metrics.DialogTurns.WithLabelValues(intent.String(), "error").Inc()
		log.Error("turn failed", map[string]interface{}{
			"error":     err,
			"errorCode": string(errors.CodeOf(err)),
		})
		return models.DialogResponse{}, err
	}

	metrics.DialogTurns.WithLabelValues(intent.String(), resp.DialogAction.Type).Inc()
	log.Info("turn handled", map[string]interface{}{
		"dialogAction": resp.DialogAction.Type,
	})
	return resp, nil
}
