package scheduler

import (
	"context"
	"fmt"

	"agency_portal_backend/internal/provisioning"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	pipeline *provisioning.Pipeline
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pipeline *provisioning.Pipeline, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		pipeline: pipeline,
		log:      log,
	}

	mux.HandleFunc(TaskProvisioningBackfill, w.handleProvisioningBackfill)

	return w, nil
}

func (w *Worker) handleProvisioningBackfill(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProvisioningBackfillPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	w.log.Info("running provisioning backfill", "lead_id", leadID)
	return w.pipeline.Provision(ctx, leadID)
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
