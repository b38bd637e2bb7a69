package generation

import (
	"fmt"
	"strings"

	"oraculus/internal/model"
)

// maxChoices is the contract cardinality for ProposeChoices.
const maxChoices = 3

// ParseChoiceLines extracts choice strings from a newline-delimited model
// response. List markers and numbering are stripped; a response without at
// least one usable line is an error.
func ParseChoiceLines(text string) ([]string, error) {
	var choices []string
	for _, line := range strings.Split(text, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		choices = append(choices, line)
		if len(choices) == maxChoices {
			break
		}
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: no choice lines in %d bytes of output", ErrUnparseableResponse, len(text))
	}
	return choices, nil
}

// ParseAnalysis parses the THEMES/IMPROVEMENTS/EXPANSION IDEAS response
// format into an ExpansionSuggestion, carrying through the summary's count
// and average. At least one section must contain an item.
func ParseAnalysis(text string, summary model.FeedbackSummary) (model.ExpansionSuggestion, error) {
	suggestion := model.ExpansionSuggestion{
		Count:         summary.Count,
		AverageRating: summary.AverageRating,
	}

	var current *[]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "THEMES:"):
			current = &suggestion.Themes
		case strings.EqualFold(line, "IMPROVEMENTS:"):
			current = &suggestion.Improvements
		case strings.EqualFold(line, "EXPANSION IDEAS:"):
			current = &suggestion.ExpansionIdeas
		default:
			if current == nil {
				continue // preamble chatter before the first section
			}
			if item := stripListMarker(line); item != "" {
				*current = append(*current, item)
			}
		}
	}

	if len(suggestion.Themes)+len(suggestion.Improvements)+len(suggestion.ExpansionIdeas) == 0 {
		return model.ExpansionSuggestion{}, fmt.Errorf("%w: no analysis sections found", ErrUnparseableResponse)
	}
	return suggestion, nil
}

// ParseContinuation validates and trims a continuation response.
func ParseContinuation(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty continuation", ErrUnparseableResponse)
	}
	return text, nil
}

// stripListMarker removes leading bullets and "1." / "1)" numbering.
func stripListMarker(line string) string {
	line = strings.TrimLeft(line, "-*• \t")
	// Отрезаем нумерацию вида "1." или "2)"
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == '.' || r == ')') && i > 0 && i < len(line)-1 {
			return strings.TrimSpace(line[i+1:])
		}
		break
	}
	return strings.TrimSpace(line)
}
