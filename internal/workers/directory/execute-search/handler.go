// internal/workers/directory/execute-search/handler.go
package executesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "supplier-search/internal/common/errors"
	"supplier-search/internal/common/logger"
	"supplier-search/internal/common/metrics"
	"supplier-search/internal/models"
	"supplier-search/internal/search"
)

const TaskType = "execute-search"

// Searcher runs one search request end to end.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*models.SearchPage, error)
}

type Handler struct {
	config       *Config
	engine       Searcher
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, engine Searcher, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       engine,
		logger:       scoped,
		errorHandler: apperrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, apperrors.NewQueryParseFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	code := "INTERNAL_ERROR"
	if stdErr, ok := err.(*apperrors.StandardError); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()

	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewQueryParseFailedError("input cannot be nil")
	}
	if input.Offset < 0 {
		return nil, apperrors.NewInvalidPaginationError(fmt.Sprintf("offset must be non-negative, got %d", input.Offset))
	}
	if input.Limit < 0 {
		return nil, apperrors.NewInvalidPaginationError(fmt.Sprintf("limit must be non-negative, got %d", input.Limit))
	}

	req := search.Request{
		Query:          input.Query,
		Locations:      input.Locations,
		Certifications: input.Certifications,
		VerifiedOnly:   input.VerifiedOnly,
		Offset:         input.Offset,
		Limit:          input.Limit,
	}
	for _, t := range input.EntityTypes {
		req.EntityTypes = append(req.EntityTypes, models.EntityType(t))
	}

	page, err := h.engine.Search(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewStoreTimeoutError()
		}
		return nil, err
	}

	results := page.Results
	if results == nil {
		results = []models.Listing{}
	}
	return &Output{
		Results: results,
		Total:   page.Total,
		HasMore: page.HasMore,
	}, nil
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
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
