package tree

import (
	"context"
	"fmt"

	"oraculus/internal/model"

	"go.uber.org/zap"
)

// expansionMinAnalyzable mirrors the Generation Port contract: analysis is
// only meaningful from two records.
const expansionMinAnalyzable = 2

// analysisQualityFloor re-checks average rating on the analysis result.
// It overlaps the eligibility gate on purpose, as a defense against the
// feedback state shifting between the scan and the analysis.
const analysisQualityFloor = 3.5

// TryExpand runs the feedback-driven mutation policy: for every node whose
// accumulated feedback passes the eligibility gate and whose feedback count
// moved past the watermark of its last expansion, it synthesizes one new
// child node from a feedback analysis. Returns the IDs of nodes actually
// created. Existing nodes are never mutated beyond gaining children.
func (t *Tree) TryExpand(ctx context.Context, p model.Protagonist) []string {
	if t.gen == nil {
		t.logger.Debug("Generation unavailable, skipping expansion")
		return nil
	}

	var created []string
	for _, nodeID := range t.feedback.NodesEligibleForExpansion(ctx, t.minCount, t.minAvg) {
		parent, ok := t.node(nodeID)
		if !ok {
			// Feedback file may be shared with another tree revision.
			t.logger.Warn("Eligible node not present in tree", zap.String("node", nodeID))
			continue
		}

		summary := t.feedback.SummaryFor(ctx, nodeID)
		if summary.Count < expansionMinAnalyzable {
			continue
		}
		if summary.Count <= t.feedback.ExpansionWatermark(ctx, nodeID) {
			// Nothing new since the branch this feedback already produced.
			continue
		}

		suggestion, err := t.gen.AnalyzeFeedback(ctx, parent.StoryText, summary)
		if err != nil {
			t.logger.Warn("Feedback analysis failed, skipping candidate",
				zap.String("node", nodeID), zap.Error(err))
			continue
		}
		if suggestion.AverageRating < analysisQualityFloor {
			t.logger.Debug("Analysis quality below floor, skipping candidate",
				zap.String("node", nodeID),
				zap.Float64("average_rating", suggestion.AverageRating))
			continue
		}

		storyText, err := t.gen.ContinueStory(ctx, parent.StoryText, p, suggestion)
		if err != nil {
			t.logger.Warn("Story continuation failed, aborting this expansion",
				zap.String("node", nodeID), zap.Error(err))
			continue
		}

		childID := fmt.Sprintf("%s_expanded_%d", parent.ID, len(parent.ChildIDs)+1)
		child := &model.StoryNode{
			ID:          childID,
			StoryText:   storyText,
			ChoiceLabel: "Continue the story",
			ParentID:    parent.ID,
			Generated:   true,
		}
		if err := t.addNode(child); err != nil {
			t.logger.Error("Could not attach expansion node",
				zap.String("node", childID), zap.Error(err))
			continue
		}
		if err := t.feedback.SetExpansionWatermark(ctx, nodeID, summary.Count); err != nil {
			t.logger.Warn("Could not persist expansion watermark",
				zap.String("node", nodeID), zap.Error(err))
		}

		t.logger.Info("Tree expanded from feedback",
			zap.String("parent", parent.ID),
			zap.String("child", childID),
			zap.Int("feedback_count", summary.Count),
			zap.Float64("average_rating", summary.AverageRating))
		created = append(created, childID)
	}
	return created
}
