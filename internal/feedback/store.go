// Package feedback persists player feedback records grouped by story node
// and derives the summaries that drive the tree's expansion policy.
package feedback

import (
	"context"

	"oraculus/internal/model"
)

// Default gates for the two-factor expansion eligibility test. Volume
// alone (noisy single opinions) and quality alone (one rave review) are
// each insufficient signals, so both must pass.
const (
	DefaultMinCount  = 3
	DefaultMinAvg    = 3.5
	recentRecordsCap = 5
)

// Store is the persistent multi-map from node identity to feedback
// records, with derived summary statistics.
type Store interface {
	// Add validates and appends a record under record.NodeID, persisting
	// immediately.
	Add(ctx context.Context, record model.FeedbackRecord) error
	// SummaryFor computes the node's summary on demand. A node with no
	// records yields a zero-count summary with AverageRating 0.0.
	SummaryFor(ctx context.Context, nodeID string) model.FeedbackSummary
	// NodesEligibleForExpansion returns the IDs of nodes whose record
	// count is at least minCount AND whose average rating is at least
	// minAvg, in a stable order.
	NodesEligibleForExpansion(ctx context.Context, minCount int, minAvg float64) []string
	// ExpansionWatermark returns the feedback count recorded at the last
	// expansion of nodeID, 0 if the node was never expanded.
	ExpansionWatermark(ctx context.Context, nodeID string) int
	// SetExpansionWatermark records that nodeID was expanded while it had
	// count feedback records, persisting immediately.
	SetExpansionWatermark(ctx context.Context, nodeID string, count int) error
}
