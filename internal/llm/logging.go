package llm

import (
	"context"
	"time"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// RequestRecorder persists one LLM request log entry. Implemented by the
// store's LLM log repository; nil disables persistence.
type RequestRecorder interface {
	RecordLLMRequest(ctx context.Context, entry *models.LLMRequestLog) error
}

// LoggingProvider is a decorator that logs every LLM call and records it
// best-effort through the RequestRecorder.
type LoggingProvider struct {
	inner    Provider
	name     string
	recorder RequestRecorder
	log      *logger.Logger
}

// WithLogging wraps a Provider with request logging. name is the provider
// name as configured ("anthropic", "openai", ...), recorded with each entry.
func WithLogging(p Provider, name string, rec RequestRecorder, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, name: name, recorder: rec, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	entry := &models.LLMRequestLog{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		entry.Model = resp.Model
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
	}

	if err != nil {
		entry.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"purpose", purpose,
			"model", entry.Model,
			"latency", latency,
			"error", err,
		)
	} else {
		l.log.Debug("llm request",
			"purpose", purpose,
			"model", entry.Model,
			"latency", latency,
			"input_tokens", entry.InputTokens,
			"output_tokens", entry.OutputTokens,
		)
	}

	// Recording is best-effort; a failed insert never fails the request.
	if l.recorder != nil {
		if recErr := l.recorder.RecordLLMRequest(ctx, entry); recErr != nil {
			l.log.Warn("failed to record llm request", "error", recErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
