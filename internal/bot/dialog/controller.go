// Package dialog drives the code hook state machine for each intent.
package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/validation"
	"dining-concierge/internal/models"
)

// SlotValidator is satisfied by *slotvalidation.Validator.
type SlotValidator interface {
	Validate(slots models.SlotSet) models.ValidationResult
}

// ReservationQueue accepts serialized reservation requests.
type ReservationQueue interface {
	Send(ctx context.Context, body string) (int, error)
}

type Controller struct {
	config    *Config
	validator SlotValidator
	contract  *validation.Validator
	queue     ReservationQueue
	logger    logger.Logger
}

// NewController compiles the reservation message schema so nothing is
// enqueued that the recommendation worker would refuse.
func NewController(config *Config, validator SlotValidator, queue ReservationQueue, log logger.Logger) (*Controller, error) {
	contract, err := validation.NewReservationValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile reservation schema: %w", err)
	}
	return &Controller{
		config:    config,
		validator: validator,
		contract:  contract,
		queue:     queue,
		logger:    logger.ForComponent(log, "dialog-controller"),
	}, nil
}

// HandleGreeting closes the intent with the greeting, whatever the phase.
func (c *Controller) HandleGreeting(_ context.Context, event *models.ConversationEvent) (models.DialogResponse, error) {
	return models.Close(event.SessionAttributes, models.FulfillmentStateFulfilled,
		models.PlainText(c.config.GreetingMessage)), nil
}

// HandleThankYou closes the intent with the acknowledgement, whatever the phase.
func (c *Controller) HandleThankYou(_ context.Context, event *models.ConversationEvent) (models.DialogResponse, error) {
	return models.Close(event.SessionAttributes, models.FulfillmentStateFulfilled,
		models.PlainText(c.config.ThankYouMessage)), nil
}

// HandleDiningSuggestion validates slots during DialogCodeHook and enqueues
// the reservation during FulfillmentCodeHook.
func (c *Controller) HandleDiningSuggestion(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error) {
	switch event.InvocationSource {
	case models.InvocationDialogCodeHook:
		return c.validate(event), nil
	case models.InvocationFulfillmentCodeHook:
		return c.fulfill(ctx, event)
	default:
		return models.DialogResponse{}, errors.NewUnknownInvocationSourceError(event.InvocationSource)
	}
}

func (c *Controller) validate(event *models.ConversationEvent) models.DialogResponse {
	slots := event.CurrentIntent.Slots.Clone()

	result := c.validator.Validate(slots)
	if result.Valid {
		return models.Delegate(event.SessionAttributes, slots)
	}

	slots.Clear(result.ViolatedSlot)

	var message *models.Message
	switch {
	case result.Message != nil:
		message = models.PlainText(*result.Message)
	case c.config.DefaultPrompts[result.ViolatedSlot] != "":
		message = models.PlainText(c.config.DefaultPrompts[result.ViolatedSlot])
	}

	c.logger.Info("eliciting slot", map[string]interface{}{
		"intent": event.CurrentIntent.Name,
		"slot":   result.ViolatedSlot,
	})

	return models.ElicitSlot(event.SessionAttributes, event.CurrentIntent.Name, slots, result.ViolatedSlot, message)
}

func (c *Controller) fulfill(ctx context.Context, event *models.ConversationEvent) (models.DialogResponse, error) {
	request := models.NewReservationRequest(event.CurrentIntent.Slots)

	res, err := c.contract.ValidateValue(request)
	if err != nil {
		return models.DialogResponse{}, errors.NewInvalidRequestError(err.Error())
	}
	if !res.Valid {
		c.logger.Warn("reservation rejected before enqueue", map[string]interface{}{
			"errors": res.GetErrorMessages(),
		})
		return models.DialogResponse{}, errors.NewInvalidRequestError(strings.Join(res.GetErrorMessages(), "; "))
	}

	body, err := json.Marshal(request)
	if err != nil {
		return models.DialogResponse{}, errors.NewQueueSendError(err)
	}

	status, err := c.queue.Send(ctx, string(body))
	if err != nil {
		c.logger.Error("failed to enqueue reservation", map[string]interface{}{
			"error":   err,
			"cuisine": request.Cuisine,
		})
		return models.DialogResponse{}, err
	}

	metrics.ReservationsEnqueued.Inc()
	c.logger.Info("reservation enqueued", map[string]interface{}{
		"statusCode": status,
		"cuisine":    request.Cuisine,
		"date":       request.Date,
	})

	return models.Close(event.SessionAttributes, models.FulfillmentStateFulfilled,
		models.PlainText(c.config.FulfillmentMessage)), nil
}
