package game_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"oraculus/internal/cache"
	"oraculus/internal/feedback"
	"oraculus/internal/game"
	"oraculus/internal/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionFixture(t *testing.T, input string) (*game.Session, *feedback.FileStore, *strings.Builder) {
	t.Helper()
	dir := t.TempDir()
	fb := feedback.NewFileStore(filepath.Join(dir, "feedback.json"), zap.NewNop())
	tr, err := tree.New(tree.SeedNodes(), tree.Options{
		Cache:    cache.NewFileCache(filepath.Join(dir, "cache.json"), zap.NewNop()),
		Feedback: fb,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	var out strings.Builder
	return game.NewSession(tr, fb, strings.NewReader(input), &out, zap.NewNop()), fb, &out
}

func TestSession_CharacterCreationAndQuit(t *testing.T) {
	// Name, gender, invalid age then valid, situation, "press enter", quit.
	input := strings.Join([]string{
		"Vera",
		"2",
		"abc",
		"200",
		"30",
		"2",
		"",
		"quit",
	}, "\n") + "\n"

	session, _, out := newSessionFixture(t, input)
	require.NoError(t, session.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "WELCOME TO ORACULUS")
	assert.Contains(t, text, "Please enter a valid number.")
	assert.Contains(t, text, "Age must be between 16 and 100.")
	assert.Contains(t, text, "Character created: Vera (female, 30) - A scholar who stumbled into a magical realm")
	assert.Contains(t, text, "dimly lit room")
	assert.Contains(t, text, "1. Examine the mysterious mirror")
	assert.Contains(t, text, "Thanks for playing Oraculus!")
}

func TestSession_ChoiceAdvancesAndRecordsFeedback(t *testing.T) {
	input := strings.Join([]string{
		"Vera", "2", "30", "1", "", // character creation
		"1",     // examine the mirror
		"5",     // rating
		"loved it", // comment
		"quit",
	}, "\n") + "\n"

	session, fb, out := newSessionFixture(t, input)
	require.NoError(t, session.Run(context.Background()))

	assert.Contains(t, out.String(), "Feedback recorded")
	assert.Contains(t, out.String(), "ornate mirror")

	summary := fb.SummaryFor(context.Background(), "start")
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, []string{"loved it"}, summary.Comments)
}

func TestSession_SkippedFeedbackAndEOF(t *testing.T) {
	// Input runs dry mid-loop; the session treats it as quitting.
	input := strings.Join([]string{
		"", "1", "30", "1", "", // defaults: name Adventurer, male
		"2", // approach the door
		"",  // skip rating
	}, "\n") + "\n"

	session, fb, out := newSessionFixture(t, input)
	require.NoError(t, session.Run(context.Background()))

	assert.Contains(t, out.String(), "Character created: Adventurer (male, 30)")
	assert.NotContains(t, out.String(), "Feedback recorded")

	summary := fb.SummaryFor(context.Background(), "start")
	assert.Equal(t, 0, summary.Count)
}
