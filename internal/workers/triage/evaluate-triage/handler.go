// internal/workers/triage/evaluate-triage/handler.go
package evaluatetriage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "gastro-triage/internal/common/errors"
	"gastro-triage/internal/common/logger"
	"gastro-triage/internal/common/metrics"
	"gastro-triage/internal/common/observability"
	"gastro-triage/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-triage"
)

type Handler struct {
	config *Config
	engine *triage.Engine
	logger logger.Logger
	errors *apperrors.ErrorHandler
	obs    *observability.Observability
}

func NewHandler(config *Config, engine *triage.Engine, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: engine,
		logger: scoped,
		errors: apperrors.NewErrorHandler(scoped),
	}
}

// WithObservability attaches the otel instruments. Optional; metrics are
// skipped when absent so tests need no meter provider.
func (h *Handler) WithObservability(obs *observability.Observability) *Handler {
	h.obs = obs
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	defer func(start time.Time) {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}(time.Now())

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, apperrors.NewValidationError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr, ok := err.(*apperrors.StandardError)
		if !ok {
			stdErr = apperrors.NewEvaluationError(err)
		}
		h.failJob(client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	decision, err := h.engine.Evaluate(input.Message, input.Context)
	if err != nil {
		return nil, err
	}

	metrics.TriageEvaluationDuration.Observe(time.Since(start).Seconds())
	metrics.TriageEvaluations.WithLabelValues(string(decision.RiskLevel)).Inc()
	if h.obs != nil {
		h.obs.RecordDecision(ctx, string(decision.RiskLevel))
		h.obs.RecordDecisionDuration(ctx, time.Since(start), string(decision.RiskLevel))
	}
	if decision.EmergencyDetected {
		metrics.TriageEmergencies.Inc()
	}

	h.logger.Info("triage decision produced", map[string]interface{}{
		"conversationId":    input.ConversationID,
		"riskLevel":         decision.RiskLevel,
		"urgencyLevel":      decision.UrgencyLevel,
		"emergencyDetected": decision.EmergencyDetected,
		"extractedSymptoms": len(decision.ExtractedSymptoms),
		"candidates":        len(decision.Candidates),
	})

	return &Output{
		Triage:            decision,
		RiskLevel:         string(decision.RiskLevel),
		UrgencyLevel:      string(decision.UrgencyLevel),
		EmergencyDetected: decision.EmergencyDetected,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()

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
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *apperrors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errors.HandleJobError(context.Background(), client, job, stdErr)
}

// Execute exposes the core path for tests and embedding callers.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
