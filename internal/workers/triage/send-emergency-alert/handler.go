// internal/workers/triage/send-emergency-alert/handler.go
package sendemergencyalert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "gastro-triage/internal/common/errors"
	"gastro-triage/internal/common/logger"
	"gastro-triage/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-emergency-alert"
)

// Interfaces over the AWS clients so tests can mock dispatch.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		logger:    scoped,
		errors:    apperrors.NewErrorHandler(scoped),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewHandlerWithClients wires explicit clients; used by tests.
func NewHandlerWithClients(config *Config, log logger.Logger, sesClient SESService, snsClient SNSService) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		logger:    scoped,
		errors:    apperrors.NewErrorHandler(scoped),
		sesClient: sesClient,
		snsClient: snsClient,
	}
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
			stdErr = apperrors.NewAlertSendError(err)
		}
		h.failJob(client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// Only emergency decisions page anyone. The workflow normally gates on
	// the risk level before this task, the check here is the backstop.
	if input.RiskLevel != "emergency" {
		return &Output{
			AlertID: uuid.New().String(),
			Status:  StatusSkipped,
			SentAt:  time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	message := h.buildAlertMessage(input)
	subject := fmt.Sprintf("Emergencia detectada en conversación %s", input.ConversationID)

	if h.config.AlertTopicARN != "" {
		_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(h.config.AlertTopicARN),
			Subject:  aws.String(subject),
			Message:  aws.String(message),
		})
		if err != nil {
			return nil, apperrors.NewAlertSendError(fmt.Errorf("sns publish: %w", err))
		}
	}

	if h.config.AlertEmail != "" {
		_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
			Source: aws.String(h.config.SenderEmail),
			Destination: &sestypes.Destination{
				ToAddresses: []string{h.config.AlertEmail},
			},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(message)},
				},
			},
		})
		if err != nil {
			return nil, apperrors.NewAlertSendError(fmt.Errorf("ses send: %w", err))
		}
	}

	alertID := uuid.New().String()
	h.logger.Info("emergency alert dispatched", map[string]interface{}{
		"alertId":        alertID,
		"conversationId": input.ConversationID,
		"keywords":       input.MatchedKeywords,
	})

	return &Output{
		AlertID: alertID,
		Status:  StatusSent,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) buildAlertMessage(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conversación: %s\n", input.ConversationID)
	fmt.Fprintf(&b, "Nivel de riesgo: %s\n", input.RiskLevel)
	fmt.Fprintf(&b, "Urgencia: %s\n", input.UrgencyLevel)
	if len(input.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, "Frases detectadas: %s\n", strings.Join(input.MatchedKeywords, ", "))
	}
	return b.String()
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

// Execute exposes the core path for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
