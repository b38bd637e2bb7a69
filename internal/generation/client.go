// Package generation is the engine's port to the external text-generation
// service. Every operation can fail (missing credentials, timeout,
// unparseable response); failures are explicit errors the caller recovers
// from with a documented fallback, never fatal.
package generation

import (
	"context"
	"errors"

	"oraculus/internal/model"
)

// ErrGenerationFailed wraps any transport or API failure of the backing
// text-generation service.
var ErrGenerationFailed = errors.New("text generation failed")

// ErrUnparseableResponse indicates the service replied, but the reply
// could not be parsed into the expected shape.
var ErrUnparseableResponse = errors.New("unparseable generation response")

// ErrInsufficientFeedback indicates a feedback analysis was requested for
// a summary too small to analyze (fewer than two records).
var ErrInsufficientFeedback = errors.New("not enough feedback to analyze")

// Params are optional sampling parameters for a single request. Pointers
// distinguish "not set" from zero values.
type Params struct {
	Temperature *float64
	MaxTokens   *int
}

// AIClient is the low-level text-completion contract implemented by the
// OpenAI-compatible and Ollama adapters. The transport-level timeout lives
// here; callers never retry within the same call.
type AIClient interface {
	// GenerateText sends the system prompt and user input to the model
	// and returns the raw completion text.
	GenerateText(ctx context.Context, systemPrompt string, userInput string, params Params) (string, error)
}

// Generator is the high-level capability the narrative tree consumes.
// A nil Generator means the port is unavailable for the whole session
// (checked once at construction, not per call).
type Generator interface {
	// ProposeChoices produces exactly 3 short choice strings for the
	// current story context. Any response without at least one usable
	// line is a failure.
	ProposeChoices(ctx context.Context, storyContext string, p model.Protagonist) ([]string, error)
	// AnalyzeFeedback distills accumulated free-text feedback into
	// themes, improvements and expansion ideas. Only valid for summaries
	// with at least two records.
	AnalyzeFeedback(ctx context.Context, storyContext string, summary model.FeedbackSummary) (model.ExpansionSuggestion, error)
	// ContinueStory produces the narrative text for a new child node
	// synthesized from an expansion suggestion.
	ContinueStory(ctx context.Context, storyContext string, p model.Protagonist, suggestion model.ExpansionSuggestion) (string, error)
}
