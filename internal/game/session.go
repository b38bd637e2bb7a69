// Package game runs the interactive terminal session: character creation,
// the story loop and per-turn feedback collection.
package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"oraculus/internal/feedback"
	"oraculus/internal/model"
	"oraculus/internal/tree"

	"go.uber.org/zap"
)

var quitWords = map[string]bool{"quit": true, "exit": true, "q": true}

// Session drives one playthrough over a terminal-like reader/writer pair.
type Session struct {
	tree     *tree.Tree
	feedback feedback.Store
	in       *bufio.Scanner
	out      io.Writer
	logger   *zap.Logger

	protagonist model.Protagonist
}

// NewSession wires a session over the given streams.
func NewSession(t *tree.Tree, fb feedback.Store, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	return &Session{
		tree:     t,
		feedback: fb,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger.Named("session"),
	}
}

// Run plays the game until the story runs out of content, the player
// quits, or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.printWelcome()
	if err := s.createProtagonist(); err != nil {
		return err
	}

	for {
		s.printf("\n%s\n", strings.Repeat("=", 60))
		s.printf("%s\n", s.tree.CurrentStory())
		s.printf("\n%s\n", strings.Repeat("-", 40))

		choices := s.tree.AvailableChoices(ctx, s.protagonist)
		if len(choices) == 0 {
			s.printf("\n[End of current story branch]\n")
			return nil
		}

		s.printf("\nWhat do you choose?\n")
		for i, choice := range choices {
			s.printf("%d. %s\n", i+1, choice)
		}

		choiceIndex, quit, err := s.readChoice(len(choices))
		if err != nil || quit {
			s.printf("\nThanks for playing Oraculus!\n")
			return err
		}

		nodeID := s.tree.CursorID()
		advanced, awaiting := s.tree.Select(ctx, choiceIndex, s.protagonist)
		switch {
		case advanced:
			s.collectFeedback(ctx, nodeID, choiceIndex)
		case awaiting:
			s.collectFeedback(ctx, nodeID, choiceIndex)
			s.printf("\nThe story is still growing here. Your feedback shapes what comes next.\n")
			s.printf("Thanks for playing Oraculus!\n")
			return nil
		default:
			s.printf("Please enter a number between 1 and %d\n", len(choices))
		}
	}
}

func (s *Session) printWelcome() {
	s.printf("%s\n", strings.Repeat("=", 60))
	s.printf("         WELCOME TO ORACULUS\n")
	s.printf("    A Dynamic Text-Based Adventure Game\n")
	s.printf("%s\n", strings.Repeat("=", 60))
	s.printf("\nIn this game, your choices shape the story.\n")
	s.printf("Each decision creates new possibilities and branches.\n")
	s.printf("Your character's background influences available options.\n\n")
}

func (s *Session) createProtagonist() error {
	s.printf("First, let's create your character:\n\n")

	s.printf("Enter your character's name: ")
	name, err := s.readLine()
	if err != nil {
		return err
	}
	if name == "" {
		name = "Adventurer"
	}

	s.printf("\nSelect gender:\n1. Male\n2. Female\n3. Non-binary\n4. Other\n")
	s.printf("Enter choice (1-4): ")
	genderChoice, err := s.readLine()
	if err != nil {
		return err
	}
	genderMap := map[string]string{"1": "male", "2": "female", "3": "non-binary", "4": "other"}
	gender, ok := genderMap[genderChoice]
	if !ok {
		gender = "other"
	}

	var age int
	for {
		s.printf("\nEnter age (16-100): ")
		raw, err := s.readLine()
		if err != nil {
			return err
		}
		age, err = strconv.Atoi(raw)
		if err != nil {
			s.printf("Please enter a valid number.\n")
			continue
		}
		if age < 16 || age > 100 {
			s.printf("Age must be between 16 and 100.\n")
			continue
		}
		break
	}

	s.printf("\nSelect starting situation:\n")
	for i, situation := range model.DefaultSituations {
		s.printf("%d. %s\n", i+1, situation)
	}
	s.printf("Enter choice (1-%d): ", len(model.DefaultSituations))
	situationChoice, err := s.readLine()
	if err != nil {
		return err
	}
	situation := model.DefaultSituations[0]
	if idx, err := strconv.Atoi(situationChoice); err == nil && idx >= 1 && idx <= len(model.DefaultSituations) {
		situation = model.DefaultSituations[idx-1]
	}

	s.protagonist = model.Protagonist{
		Name:              name,
		Gender:            gender,
		Age:               age,
		StartingSituation: situation,
	}
	s.logger.Info("Protagonist created",
		zap.String("name", name), zap.Int("age", age), zap.String("gender", gender))

	s.printf("\nCharacter created: %s\n", s.protagonist.String())
	s.printf("\nPress Enter to begin your adventure...")
	_, err = s.readLine()
	return err
}

// readChoice reads a 1-based choice number or a quit word.
func (s *Session) readChoice(count int) (index int, quit bool, err error) {
	for {
		s.printf("\nEnter your choice (1-%d) or 'quit' to exit: ", count)
		raw, err := s.readLine()
		if err != nil {
			return 0, true, nil
		}
		if quitWords[strings.ToLower(raw)] {
			return 0, true, nil
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			s.printf("Please enter a valid number or 'quit'\n")
			continue
		}
		if n < 1 || n > count {
			s.printf("Please enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, false, nil
	}
}

// collectFeedback asks for an optional 1-5 rating of the turn that just
// played out. Empty input skips.
func (s *Session) collectFeedback(ctx context.Context, nodeID string, choiceIndex int) {
	s.printf("\nRate that turn (1-5, Enter to skip): ")
	raw, err := s.readLine()
	if err != nil || raw == "" {
		return
	}
	rating, convErr := strconv.Atoi(raw)
	if convErr != nil || rating < model.MinRating || rating > model.MaxRating {
		s.printf("Skipping feedback: rating must be between %d and %d.\n",
			model.MinRating, model.MaxRating)
		return
	}

	s.printf("Any comment? (Enter to skip): ")
	comment, err := s.readLine()
	if err != nil {
		comment = ""
	}

	record := model.FeedbackRecord{
		NodeID:             nodeID,
		ChoiceIndex:        choiceIndex,
		Rating:             rating,
		Comment:            comment,
		Timestamp:          time.Now().UTC(),
		ProtagonistContext: s.protagonist.String(),
	}
	if err := s.feedback.Add(ctx, record); err != nil {
		s.logger.Warn("Could not record feedback", zap.Error(err))
		return
	}
	s.printf("Feedback recorded. The story evolves with it.\n")
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
