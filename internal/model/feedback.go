package model

import (
	"fmt"
	"time"
)

// Rating bounds for player feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackRecord is one piece of player feedback about a story node,
// append-only and grouped by node ID in the store.
type FeedbackRecord struct {
	ID          string    `json:"id"`
	NodeID      string    `json:"node_id"`
	ChoiceIndex int       `json:"choice_index"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Timestamp   time.Time `json:"timestamp"`
	// ProtagonistContext is a free-text snapshot kept for audit only.
	ProtagonistContext string `json:"protagonist_context,omitempty"`
}

// Validate rejects out-of-range input before it reaches storage.
func (r FeedbackRecord) Validate() error {
	if r.NodeID == "" {
		return fmt.Errorf("feedback node_id is required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, r.Rating)
	}
	if r.ChoiceIndex < 0 {
		return fmt.Errorf("choice_index must not be negative, got %d", r.ChoiceIndex)
	}
	return nil
}

// FeedbackSummary is derived on demand from the records of one node.
type FeedbackSummary struct {
	NodeID        string           `json:"node_id"`
	Count         int              `json:"count"`
	AverageRating float64          `json:"average_rating"`
	Comments      []string         `json:"comments"`
	Recent        []FeedbackRecord `json:"recent"`
}

// ExpansionSuggestion is the Generation Port's distillation of a feedback
// summary. It is ephemeral: consumed immediately by the expansion policy.
type ExpansionSuggestion struct {
	Themes         []string `json:"themes"`
	Improvements   []string `json:"improvements"`
	ExpansionIdeas []string `json:"expansion_ideas"`
	// Count and AverageRating are carried through from the summary the
	// analysis was produced from.
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}
