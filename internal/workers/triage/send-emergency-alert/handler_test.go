// internal/workers/triage/send-emergency-alert/handler_test.go
package sendemergencyalert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gastro-triage/internal/common/errors"
	"gastro-triage/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		AWSRegion:     "us-east-1",
		AlertTopicARN: "arn:aws:sns:us-east-1:000000000000:triage-alerts",
		AlertEmail:    "guardia@example.com",
		SenderEmail:   "triage@example.com",
		Timeout:       5 * time.Second,
	}
}

func createTestInput(riskLevel string) *Input {
	return &Input{
		ConversationID:  "conv-003",
		RiskLevel:       riskLevel,
		UrgencyLevel:    "immediate",
		MatchedKeywords: []string{"vomitando sangre"},
	}
}

type mockSES struct {
	calls int
	err   error
	input *ses.SendEmailInput
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	calls int
	err   error
	input *sns.PublishInput
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SendsThroughBothChannels(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(createTestConfig(), logger.NewTestLogger(t), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput("emergency"))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.AlertID)
	assert.NotEmpty(t, output.SentAt)

	assert.Equal(t, 1, snsMock.calls)
	assert.Equal(t, 1, sesMock.calls)

	require.NotNil(t, snsMock.input)
	assert.Contains(t, *snsMock.input.Message, "conv-003")
	assert.Contains(t, *snsMock.input.Message, "vomitando sangre")

	require.NotNil(t, sesMock.input)
	assert.Equal(t, "triage@example.com", *sesMock.input.Source)
	assert.Equal(t, []string{"guardia@example.com"}, sesMock.input.Destination.ToAddresses)
}

func TestHandler_Execute_SkipsNonEmergency(t *testing.T) {
	tests := []string{"low", "medium", "high", ""}

	for _, riskLevel := range tests {
		t.Run("risk "+riskLevel, func(t *testing.T) {
			sesMock := &mockSES{}
			snsMock := &mockSNS{}
			handler := NewHandlerWithClients(createTestConfig(), logger.NewTestLogger(t), sesMock, snsMock)

			output, err := handler.Execute(context.Background(), createTestInput(riskLevel))
			require.NoError(t, err)

			assert.Equal(t, StatusSkipped, output.Status)
			assert.Zero(t, sesMock.calls)
			assert.Zero(t, snsMock.calls)
		})
	}
}

func TestHandler_Execute_EmailOnlyWhenNoTopic(t *testing.T) {
	cfg := createTestConfig()
	cfg.AlertTopicARN = ""

	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(cfg, logger.NewTestLogger(t), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput("emergency"))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.Zero(t, snsMock.calls)
	assert.Equal(t, 1, sesMock.calls)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_SNSFailure(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{err: errors.New("topic unreachable")}
	handler := NewHandlerWithClients(createTestConfig(), logger.NewTestLogger(t), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput("emergency"))
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlertSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)

	// SNS failed first, email is never attempted.
	assert.Zero(t, sesMock.calls)
}

func TestHandler_Execute_SESFailure(t *testing.T) {
	sesMock := &mockSES{err: errors.New("mailbox rejected")}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(createTestConfig(), logger.NewTestLogger(t), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput("emergency"))
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlertSendFailed, stdErr.Code)
}
