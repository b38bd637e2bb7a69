package feedback_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"oraculus/internal/feedback"
	"oraculus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *feedback.FileStore {
	t.Helper()
	return feedback.NewFileStore(filepath.Join(t.TempDir(), "feedback.json"), zap.NewNop())
}

func record(nodeID string, rating int, comment string) model.FeedbackRecord {
	return model.FeedbackRecord{
		NodeID:      nodeID,
		ChoiceIndex: 0,
		Rating:      rating,
		Comment:     comment,
		Timestamp:   time.Now().UTC(),
	}
}

func TestFileStore_AddAndSummary(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, record("dark_path", 4, "loved the crystals")))
	require.NoError(t, s.Add(ctx, record("dark_path", 5, "")))
	require.NoError(t, s.Add(ctx, record("dark_path", 3, "a bit slow")))

	summary := s.SummaryFor(ctx, "dark_path")
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.0, summary.AverageRating, 1e-9)
	// Only non-empty comments are collected.
	assert.Equal(t, []string{"loved the crystals", "a bit slow"}, summary.Comments)
	assert.Len(t, summary.Recent, 3)
}

func TestFileStore_EmptySummary(t *testing.T) {
	s := newStore(t)
	summary := s.SummaryFor(context.Background(), "never_seen")
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Empty(t, summary.Comments)
}

func TestFileStore_RecentCappedAtFive(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		r := record("start", 5, "")
		r.ChoiceIndex = i
		require.NoError(t, s.Add(ctx, r))
	}
	summary := s.SummaryFor(ctx, "start")
	require.Len(t, summary.Recent, 5)
	// Most recent records win.
	assert.Equal(t, 3, summary.Recent[0].ChoiceIndex)
	assert.Equal(t, 7, summary.Recent[4].ChoiceIndex)
}

func TestFileStore_RejectsInvalidRating(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	assert.Error(t, s.Add(ctx, record("start", 0, "")))
	assert.Error(t, s.Add(ctx, record("start", 6, "")))
	assert.Error(t, s.Add(ctx, record("", 3, "")))

	// Rejected input must not corrupt state.
	assert.Equal(t, 0, s.SummaryFor(ctx, "start").Count)
}

func TestFileStore_ExpansionGating(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	// count=2, avg=5.0: count gate fails.
	require.NoError(t, s.Add(ctx, record("few", 5, "")))
	require.NoError(t, s.Add(ctx, record("few", 5, "")))

	// count=5, avg=3.0: rating gate fails.
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(ctx, record("meh", 3, "")))
	}

	// count=3, avg=4.0: eligible.
	require.NoError(t, s.Add(ctx, record("good", 4, "")))
	require.NoError(t, s.Add(ctx, record("good", 4, "")))
	require.NoError(t, s.Add(ctx, record("good", 4, "")))

	eligible := s.NodesEligibleForExpansion(ctx, feedback.DefaultMinCount, feedback.DefaultMinAvg)
	assert.Equal(t, []string{"good"}, eligible)
}

func TestFileStore_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	ctx := context.Background()

	first := feedback.NewFileStore(path, zap.NewNop())
	require.NoError(t, first.Add(ctx, record("start", 4, "nice")))
	require.NoError(t, first.SetExpansionWatermark(ctx, "start", 1))

	second := feedback.NewFileStore(path, zap.NewNop())
	assert.Equal(t, 1, second.SummaryFor(ctx, "start").Count)
	assert.Equal(t, 1, second.ExpansionWatermark(ctx, "start"))
}

func TestFeedbackRecord_RoundTrip(t *testing.T) {
	original := model.FeedbackRecord{
		ID:                 "rec-1",
		NodeID:             "light_path",
		ChoiceIndex:        2,
		Rating:             5,
		Comment:            "the librarian is great",
		Timestamp:          time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		ProtagonistContext: "Mira (female, 30) - a scholar",
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded model.FeedbackRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.True(t, original.Timestamp.Equal(decoded.Timestamp))
}
