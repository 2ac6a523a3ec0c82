// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"dining-concierge/internal/common/logger"
)

// JobHandler completes or fails the job itself through the JobClient.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	JobType        string
	Name           string
	MaxJobsActive  int
	Timeout        time.Duration
	RequestTimeout time.Duration
}

type CamundaWorker struct {
	worker  worker.JobWorker
	logger  logger.Logger
	jobType string
}

// NewWorker opens a job worker for opts.JobType. Jobs are activated
// immediately; Stop closes the worker but not the client.
func NewWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(opts.JobType).
		Handler(handler.Handle).
		Name(opts.Name).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		RequestTimeout(opts.RequestTimeout).
		Open()

	log = log.WithFields(map[string]interface{}{"jobType": opts.JobType})
	log.Info("job worker opened", map[string]interface{}{"maxJobsActive": opts.MaxJobsActive})

	return &CamundaWorker{
		worker:  jobWorker,
		logger:  log,
		jobType: opts.JobType,
	}
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping job worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
