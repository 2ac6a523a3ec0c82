// Package recommendation drains one queued reservation request per run and
// emails the diner a set of restaurant suggestions for the requested cuisine.
package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/validation"
	"dining-concierge/internal/models"
)

const (
	TaskType = "restaurant-recommendation"
)

type Handler struct {
	config    *Config
	queue     Queue
	search    Search
	store     Store
	email     EmailSender
	schema    *validation.Validator
	jobErrors *errors.JobErrorHandler
	shuffle   func(n int, swap func(i, j int))
	logger    logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Queue == nil || opts.Search == nil || opts.Store == nil || opts.Email == nil {
		return nil, fmt.Errorf("queue, search, store and email are required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	schema, err := validation.NewReservationValidator()
	if err != nil {
		return nil, err
	}

	log := opts.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    opts.Config,
		queue:     opts.Queue,
		search:    opts.Search,
		store:     opts.Store,
		email:     opts.Email,
		schema:    schema,
		jobErrors: errors.NewJobErrorHandler(log),
		shuffle:   rand.Shuffle,
		logger:    log,
	}, nil
}

// Handle runs one unit of work for an activated Zeebe job. Job variables
// are not read; the queue is the only input.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx)
	if err != nil {
		h.jobErrors.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

// Execute performs one run: receive, validate, delete, search, pick, fetch,
// format and email. An empty queue is not an error.
func (h *Handler) Execute(ctx context.Context) (*Output, error) {
	start := time.Now()
	output, err := h.execute(ctx)
	metrics.RecommendationRunDuration.Observe(time.Since(start).Seconds())

	status := "failed"
	if err == nil {
		status = output.Status
	}
	metrics.RecommendationRuns.WithLabelValues(status).Inc()
	return output, err
}

func (h *Handler) execute(ctx context.Context) (*Output, error) {
	runID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"runId": runID})

	msgs, err := h.queue.Receive(ctx, 1, h.config.VisibilityTimeout, h.config.WaitTime)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		log.Debug("queue empty", nil)
		return &Output{RunID: runID, Status: StatusIdle}, nil
	}
	msg := msgs[0]

	req, err := h.decode(msg.Body)
	if err != nil {
		log.Error("rejecting queued request", map[string]interface{}{
			"messageId": msg.ID,
			"error":     err,
		})
		return nil, err
	}

	if err := h.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		return nil, err
	}

	ids, err := h.pick(ctx, req.Cuisine)
	if err != nil {
		return nil, err
	}

	restaurants := make([]*models.Restaurant, 0, len(ids))
	for _, id := range ids {
		r, err := h.store.GetRestaurant(ctx, id)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}

	body := formatMessage(req, restaurants)
	output := &Output{
		RunID:       runID,
		Status:      StatusUndelivered,
		Recipient:   req.EmailAddress,
		Cuisine:     req.Cuisine,
		BusinessIDs: ids,
		Message:     body,
	}

	messageID, err := h.email.SendEmail(ctx, req.EmailAddress, h.config.Subject, body)
	if err != nil {
		log.Error("email delivery failed", map[string]interface{}{
			"recipient": req.EmailAddress,
			"error":     err,
		})
		return output, nil
	}

	output.Status = StatusDelivered
	output.Delivered = true
	output.MessageID = messageID
	log.Info("recommendation sent", map[string]interface{}{
		"recipient": req.EmailAddress,
		"cuisine":   req.Cuisine,
		"messageId": messageID,
	})
	return output, nil
}

func (h *Handler) decode(body string) (models.ReservationRequest, error) {
	var req models.ReservationRequest

	result, err := h.schema.ValidateJSON(body)
	if err != nil {
		return req, errors.NewInvalidMessageError(err.Error())
	}
	if !result.Valid {
		return req, errors.NewInvalidMessageError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return req, errors.NewInvalidMessageError(err.Error())
	}
	return req, nil
}

// pick returns Recommendations distinct business ids drawn without
// replacement from the search hits.
func (h *Handler) pick(ctx context.Context, cuisine string) ([]string, error) {
	hits, err := h.search.SearchByCuisine(ctx, cuisine, h.config.SearchSize)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(hits))
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		if _, ok := seen[hit.BusinessID]; ok {
			continue
		}
		seen[hit.BusinessID] = struct{}{}
		ids = append(ids, hit.BusinessID)
	}

	want := h.config.Recommendations
	if len(ids) < want {
		return nil, errors.NewInsufficientMatchesError(cuisine, len(ids), want)
	}

	h.shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids[:want], nil
}

func formatMessage(req models.ReservationRequest, restaurants []*models.Restaurant) string {
	items := make([]string, 0, len(restaurants))
	for i, r := range restaurants {
		items = append(items, fmt.Sprintf("%d. %s, %s", i+1, r.Name, r.Address))
	}
	return fmt.Sprintf(
		"Hello! Here are my %s restaurant suggestions for %s people, for %s at %s: %s. Enjoy your meal!",
		req.Cuisine, req.NumberOfPeople, req.Date, req.Time, strings.Join(items, "; "),
	)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
