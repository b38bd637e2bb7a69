package generation

import (
	"context"
	"fmt"
	"time"

	"oraculus/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oraculus_generation_requests_total",
			Help: "Total number of Generation Port operations.",
		},
		[]string{"operation", "status"},
	)
	generationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oraculus_generation_request_duration_seconds",
			Help:    "Histogram of Generation Port operation durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Default sampling parameters per operation. Choices are short and varied,
// continuations longer and steadier.
var (
	choicesTemperature      = 0.9
	choicesMaxTokens        = 200
	analysisTemperature     = 0.3
	analysisMaxTokens       = 400
	continuationTemperature = 0.8
	continuationMaxTokens   = 500
)

// Service implements Generator on top of a low-level AIClient: it builds
// prompts, enforces the context token budget and parses responses.
type Service struct {
	client          AIClient
	modelName       string
	maxContextToken int
	logger          *zap.Logger
}

var _ Generator = (*Service)(nil)

// NewService creates a Generator backed by client.
func NewService(client AIClient, modelName string, maxContextTokens int, logger *zap.Logger) *Service {
	return &Service{
		client:          client,
		modelName:       modelName,
		maxContextToken: maxContextTokens,
		logger:          logger.Named("Generator"),
	}
}

// ProposeChoices implements Generator.
func (s *Service) ProposeChoices(ctx context.Context, storyContext string, p model.Protagonist) ([]string, error) {
	storyContext = truncateContext(storyContext, s.modelName, s.maxContextToken, s.logger)

	raw, err := s.generate(ctx, "propose_choices", choicesSystemPrompt,
		buildChoicesInput(storyContext, p), Params{
			Temperature: &choicesTemperature,
			MaxTokens:   &choicesMaxTokens,
		})
	if err != nil {
		return nil, err
	}

	choices, err := ParseChoiceLines(raw)
	if err != nil {
		generationRequestsTotal.With(prometheus.Labels{"operation": "propose_choices", "status": "unparseable"}).Inc()
		return nil, err
	}
	return choices, nil
}

// AnalyzeFeedback implements Generator. Summaries with fewer than two
// records cannot be meaningfully distilled and are rejected up front.
func (s *Service) AnalyzeFeedback(ctx context.Context, storyContext string, summary model.FeedbackSummary) (model.ExpansionSuggestion, error) {
	if summary.Count < 2 {
		return model.ExpansionSuggestion{}, fmt.Errorf("%w: %d records", ErrInsufficientFeedback, summary.Count)
	}
	storyContext = truncateContext(storyContext, s.modelName, s.maxContextToken, s.logger)

	raw, err := s.generate(ctx, "analyze_feedback", analysisSystemPrompt,
		buildAnalysisInput(storyContext, summary), Params{
			Temperature: &analysisTemperature,
			MaxTokens:   &analysisMaxTokens,
		})
	if err != nil {
		return model.ExpansionSuggestion{}, err
	}

	suggestion, err := ParseAnalysis(raw, summary)
	if err != nil {
		generationRequestsTotal.With(prometheus.Labels{"operation": "analyze_feedback", "status": "unparseable"}).Inc()
		return model.ExpansionSuggestion{}, err
	}
	return suggestion, nil
}

// ContinueStory implements Generator.
func (s *Service) ContinueStory(ctx context.Context, storyContext string, p model.Protagonist, suggestion model.ExpansionSuggestion) (string, error) {
	storyContext = truncateContext(storyContext, s.modelName, s.maxContextToken, s.logger)

	raw, err := s.generate(ctx, "continue_story", continuationSystemPrompt,
		buildContinuationInput(storyContext, p, suggestion), Params{
			Temperature: &continuationTemperature,
			MaxTokens:   &continuationMaxTokens,
		})
	if err != nil {
		return "", err
	}
	return ParseContinuation(raw)
}

// generate runs one AIClient call with metrics around it.
func (s *Service) generate(ctx context.Context, operation, systemPrompt, userInput string, params Params) (string, error) {
	startTime := time.Now()
	raw, err := s.client.GenerateText(ctx, systemPrompt, userInput, params)
	duration := time.Since(startTime)

	generationRequestDuration.With(prometheus.Labels{"operation": operation}).Observe(duration.Seconds())
	if err != nil {
		generationRequestsTotal.With(prometheus.Labels{"operation": operation, "status": "error"}).Inc()
		s.logger.Warn("Generation call failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err))
		return "", err
	}

	generationRequestsTotal.With(prometheus.Labels{"operation": operation, "status": "success"}).Inc()
	return raw, nil
}
