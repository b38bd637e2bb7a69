package generation

import (
	"fmt"
	"strings"

	"oraculus/internal/model"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const choicesSystemPrompt = `You are generating choices for a dynamic text adventure game.

Generate exactly 3 interesting and distinct choices that:
1. Advance the story meaningfully
2. Reflect the protagonist's background
3. Offer different types of approaches (bold, cautious, creative)
4. Are each 6-12 words long

Return only the choices, one per line, without numbers or bullets.`

const analysisSystemPrompt = `You are analyzing player feedback for a branching text adventure game.

Distill the feedback into short, concrete items. Respond in exactly this format:

THEMES:
- <recurring theme in the feedback>

IMPROVEMENTS:
- <specific improvement players want>

EXPANSION IDEAS:
- <idea for how the story could continue from this point>

Use 1-3 items per section. Do not add any other text.`

const continuationSystemPrompt = `You are continuing a dynamic text adventure game.

Write the next scene of the story: a single narrative paragraph of 60-120 words,
second person, present tense, ending at a natural decision point. Incorporate the
expansion ideas where they fit. Return only the scene text.`

// buildChoicesInput renders the user message for a ProposeChoices call.
func buildChoicesInput(storyContext string, p model.Protagonist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current situation: %s\n\n", storyContext)
	fmt.Fprintf(&b, "Protagonist: %s\n", p)
	return b.String()
}

// buildAnalysisInput renders the user message for an AnalyzeFeedback call.
func buildAnalysisInput(storyContext string, summary model.FeedbackSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Story passage: %s\n\n", storyContext)
	fmt.Fprintf(&b, "Feedback: %d records, average rating %.1f of 5.\n", summary.Count, summary.AverageRating)
	if len(summary.Comments) > 0 {
		b.WriteString("Player comments:\n")
		for _, comment := range summary.Comments {
			fmt.Fprintf(&b, "- %s\n", comment)
		}
	}
	return b.String()
}

// buildContinuationInput renders the user message for a ContinueStory call.
func buildContinuationInput(storyContext string, p model.Protagonist, suggestion model.ExpansionSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Story so far: %s\n\n", storyContext)
	fmt.Fprintf(&b, "Protagonist: %s\n\n", p)
	if len(suggestion.Themes) > 0 {
		fmt.Fprintf(&b, "Themes players responded to: %s\n", strings.Join(suggestion.Themes, "; "))
	}
	if len(suggestion.Improvements) > 0 {
		fmt.Fprintf(&b, "Requested improvements: %s\n", strings.Join(suggestion.Improvements, "; "))
	}
	if len(suggestion.ExpansionIdeas) > 0 {
		fmt.Fprintf(&b, "Expansion ideas: %s\n", strings.Join(suggestion.ExpansionIdeas, "; "))
	}
	return b.String()
}

// truncateContext token-counts the story context and keeps only its tail
// when it exceeds the budget. The tail is what the player just read, so it
// matters most for coherent generation.
func truncateContext(text string, modelName string, maxTokens int, logger *zap.Logger) string {
	if maxTokens <= 0 {
		return text
	}
	tke, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		// Неизвестная модель: используем кодировку по умолчанию
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return text
		}
	}
	tokens := tke.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	logger.Debug("Story context truncated for prompt budget",
		zap.Int("tokens", len(tokens)), zap.Int("max_tokens", maxTokens))
	return tke.Decode(tokens[len(tokens)-maxTokens:])
}
