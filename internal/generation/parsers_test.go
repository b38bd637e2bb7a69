package generation_test

import (
	"testing"

	"oraculus/internal/generation"
	"oraculus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoiceLines(t *testing.T) {
	t.Run("Plain lines", func(t *testing.T) {
		choices, err := generation.ParseChoiceLines("Open the chest\nLeave quietly\nCall out into the dark")
		require.NoError(t, err)
		assert.Equal(t, []string{"Open the chest", "Leave quietly", "Call out into the dark"}, choices)
	})

	t.Run("Strips bullets and numbering", func(t *testing.T) {
		choices, err := generation.ParseChoiceLines("1. Open the chest\n- Leave quietly\n* Call out\n2) Extra line")
		require.NoError(t, err)
		assert.Equal(t, []string{"Open the chest", "Leave quietly", "Call out"}, choices)
	})

	t.Run("Caps at three", func(t *testing.T) {
		choices, err := generation.ParseChoiceLines("a\nb\nc\nd\ne")
		require.NoError(t, err)
		assert.Len(t, choices, 3)
	})

	t.Run("Skips blank lines", func(t *testing.T) {
		choices, err := generation.ParseChoiceLines("\n\nOnly choice\n\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"Only choice"}, choices)
	})

	t.Run("Empty output is a failure", func(t *testing.T) {
		_, err := generation.ParseChoiceLines("   \n\n  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrUnparseableResponse)
	})
}

func TestParseAnalysis(t *testing.T) {
	summary := model.FeedbackSummary{NodeID: "dark_path", Count: 4, AverageRating: 4.25}

	t.Run("Full response", func(t *testing.T) {
		text := `THEMES:
- players enjoy the crystal cavern
- curiosity about the carvings

IMPROVEMENTS:
- more danger

EXPANSION IDEAS:
- a guardian awakens among the crystals`
		suggestion, err := generation.ParseAnalysis(text, summary)
		require.NoError(t, err)
		assert.Equal(t, []string{"players enjoy the crystal cavern", "curiosity about the carvings"}, suggestion.Themes)
		assert.Equal(t, []string{"more danger"}, suggestion.Improvements)
		assert.Equal(t, []string{"a guardian awakens among the crystals"}, suggestion.ExpansionIdeas)
		assert.Equal(t, 4, suggestion.Count)
		assert.InDelta(t, 4.25, suggestion.AverageRating, 1e-9)
	})

	t.Run("Ignores preamble chatter", func(t *testing.T) {
		text := "Here is my analysis:\n\nTHEMES:\n- mystery\n"
		suggestion, err := generation.ParseAnalysis(text, summary)
		require.NoError(t, err)
		assert.Equal(t, []string{"mystery"}, suggestion.Themes)
	})

	t.Run("No sections is a failure", func(t *testing.T) {
		_, err := generation.ParseAnalysis("I could not analyze this.", summary)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrUnparseableResponse)
	})
}

func TestParseContinuation(t *testing.T) {
	text, err := generation.ParseContinuation("  The corridor narrows ahead.  ")
	require.NoError(t, err)
	assert.Equal(t, "The corridor narrows ahead.", text)

	_, err = generation.ParseContinuation("   ")
	assert.ErrorIs(t, err, generation.ErrUnparseableResponse)
}
