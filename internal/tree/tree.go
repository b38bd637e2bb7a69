// Package tree owns the narrative tree: the authored nodes, the session
// cursor and the policy that ties cache, generation and feedback together.
// The tree only ever grows; nodes are never deleted or reparented.
package tree

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"oraculus/internal/cache"
	"oraculus/internal/feedback"
	"oraculus/internal/generation"
	"oraculus/internal/model"
	"oraculus/internal/variables"

	"go.uber.org/zap"
)

// fallbackChoicePool backs available choices when neither authored
// content, cache nor generation can supply any. Three of these are
// returned per call, order-randomized: the shuffle signals "improvise"
// rather than fixed content.
var fallbackChoicePool = []string{
	"Continue exploring the area",
	"Look for more clues about your situation",
	"Try to remember how you got here",
	"Search for a way out",
}

const fallbackChoiceCount = 3

// Options carries the tree's injected collaborators and policy knobs.
// Generator may be nil: that is the explicit "generation unavailable"
// degraded mode for the whole session.
type Options struct {
	Cache     cache.ChoiceCache
	Feedback  feedback.Store
	Generator generation.Generator
	// MinFeedbackCount and MinAvgRating gate expansion eligibility.
	// Zero values fall back to the package defaults.
	MinFeedbackCount int
	MinAvgRating     float64
	Logger           *zap.Logger
}

// Tree is the narrative orchestrator. Single-session: one cursor, and
// callers drive it from one goroutine.
type Tree struct {
	// nodes is the arena; index is the side map from node ID to arena
	// slot. Nodes are append-only, so slots are stable.
	nodes []*model.StoryNode
	index map[string]int

	rootID   string
	cursorID string

	cache    cache.ChoiceCache
	feedback feedback.Store
	gen      generation.Generator
	minCount int
	minAvg   float64
	logger   *zap.Logger
}

// New builds a tree from the given seed nodes. The first seed node is the
// root and becomes the initial cursor position.
func New(seed []*model.StoryNode, opts Options) (*Tree, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed tree must contain at least a root node")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("choice cache is required")
	}
	if opts.Feedback == nil {
		return nil, fmt.Errorf("feedback store is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MinFeedbackCount <= 0 {
		opts.MinFeedbackCount = feedback.DefaultMinCount
	}
	if opts.MinAvgRating <= 0 {
		opts.MinAvgRating = feedback.DefaultMinAvg
	}

	t := &Tree{
		index:    make(map[string]int, len(seed)),
		cache:    opts.Cache,
		feedback: opts.Feedback,
		gen:      opts.Generator,
		minCount: opts.MinFeedbackCount,
		minAvg:   opts.MinAvgRating,
		logger:   opts.Logger.Named("NarrativeTree"),
	}

	for _, node := range seed {
		if err := t.addNode(node); err != nil {
			return nil, err
		}
	}
	t.rootID = seed[0].ID
	t.cursorID = t.rootID

	t.logger.Info("Narrative tree initialized",
		zap.String("root", t.rootID), zap.Int("nodes", len(t.nodes)))
	return t, nil
}

// addNode appends a node to the arena and registers it with its parent.
func (t *Tree) addNode(node *model.StoryNode) error {
	if node.ID == "" {
		return fmt.Errorf("node id is required")
	}
	if _, exists := t.index[node.ID]; exists {
		return fmt.Errorf("duplicate node id %q", node.ID)
	}
	if node.ParentID != "" {
		parent, ok := t.node(node.ParentID)
		if !ok {
			return fmt.Errorf("node %q references unknown parent %q", node.ID, node.ParentID)
		}
		parent.ChildIDs = append(parent.ChildIDs, node.ID)
	}
	t.index[node.ID] = len(t.nodes)
	t.nodes = append(t.nodes, node)
	return nil
}

func (t *Tree) node(id string) (*model.StoryNode, bool) {
	slot, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.nodes[slot], true
}

// Node returns a node by ID.
func (t *Tree) Node(id string) (*model.StoryNode, bool) {
	return t.node(id)
}

// Len reports the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// CursorID returns the current node's ID.
func (t *Tree) CursorID() string {
	return t.cursorID
}

// CurrentStory returns the cursor's story text. An unset cursor would be a
// construction bug (the root always exists post-initialization); the empty
// string keeps the caller alive if it ever happens.
func (t *Tree) CurrentStory() string {
	current, ok := t.node(t.cursorID)
	if !ok {
		t.logger.Error("Cursor points at unknown node", zap.String("cursor", t.cursorID))
		return ""
	}
	return current.StoryText
}

// AvailableChoices returns the ordered choice list for the cursor.
// Authored children always win; otherwise cache, then generation, then the
// shuffled static fallback.
func (t *Tree) AvailableChoices(ctx context.Context, p model.Protagonist) []string {
	current, ok := t.node(t.cursorID)
	if !ok {
		t.logger.Error("Cursor points at unknown node", zap.String("cursor", t.cursorID))
		return nil
	}

	if len(current.ChildIDs) > 0 {
		choices := make([]string, 0, len(current.ChildIDs))
		for _, childID := range current.ChildIDs {
			child, ok := t.node(childID)
			if !ok {
				t.logger.Error("Child index out of sync", zap.String("child", childID))
				continue
			}
			choices = append(choices, choiceLabel(child))
		}
		return choices
	}

	key := variables.CacheKey(current.ID, p)
	if cached, ok := t.cache.Get(ctx, key); ok {
		t.logger.Debug("Choice cache hit", zap.String("key", key))
		return cached
	}

	if t.gen != nil {
		choices, err := t.gen.ProposeChoices(ctx, current.StoryText, p)
		if err != nil {
			t.logger.Warn("Choice generation failed, falling back",
				zap.String("node", current.ID), zap.Error(err))
		} else {
			if err := t.cache.Set(ctx, key, choices); err != nil {
				t.logger.Warn("Could not cache generated choices",
					zap.String("key", key), zap.Error(err))
			}
			return choices
		}
	}

	return shuffledFallback()
}

// Select applies the player's choice at the cursor.
//
// With authored children, a valid index advances the cursor and returns
// (true, false); an out-of-range index returns (false, false). At a
// terminal node it runs the expansion policy: (true, true) when a branch
// was synthesized and entered, (false, true) when no content is available
// yet at this point in the story.
func (t *Tree) Select(ctx context.Context, choiceIndex int, p model.Protagonist) (advanced bool, awaitingExpansion bool) {
	current, ok := t.node(t.cursorID)
	if !ok {
		t.logger.Error("Cursor points at unknown node", zap.String("cursor", t.cursorID))
		return false, false
	}

	if len(current.ChildIDs) > 0 {
		if choiceIndex < 0 || choiceIndex >= len(current.ChildIDs) {
			return false, false
		}
		t.cursorID = current.ChildIDs[choiceIndex]
		t.logger.Debug("Cursor advanced",
			zap.String("from", current.ID), zap.String("to", t.cursorID))
		return true, false
	}

	created := t.TryExpand(ctx, p)
	if len(created) == 0 {
		return false, true
	}

	// Prefer a branch grown under the cursor itself; expansion may also
	// have grown other nodes that accumulated feedback.
	next := created[0]
	for _, id := range created {
		if node, ok := t.node(id); ok && node.ParentID == current.ID {
			next = id
			break
		}
	}
	t.cursorID = next
	return true, true
}

// shuffledFallback returns fallbackChoiceCount items from the pool in
// random order.
func shuffledFallback() []string {
	pool := append([]string(nil), fallbackChoicePool...)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:fallbackChoiceCount]
}

// choiceLabel returns the node's authored label or a readable fallback
// derived from its ID.
func choiceLabel(node *model.StoryNode) string {
	if node.ChoiceLabel != "" {
		return node.ChoiceLabel
	}
	words := strings.Split(node.ID, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
