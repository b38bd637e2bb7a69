package model

// StoryNode is a single scene in the narrative tree. Nodes are owned by
// their parent: insertion order of ChildIDs is the index space for player
// choice selection. Nodes are created at seed time or by feedback-driven
// expansion; they are never deleted or reparented.
type StoryNode struct {
	// ID is unique within the tree and immutable once created.
	ID string `json:"node_id"`
	// StoryText is the authored or generated scene text.
	StoryText string `json:"story_text"`
	// ChoiceLabel is the human-readable text shown for this node when it
	// is listed as a sibling choice. Empty means "derive from ID".
	ChoiceLabel string `json:"choice_label,omitempty"`
	// ParentID is empty for the root node only.
	ParentID string `json:"parent_id,omitempty"`
	// ChildIDs keeps children in insertion order.
	ChildIDs []string `json:"child_ids,omitempty"`
	// Generated marks nodes created by expansion rather than authoring.
	Generated bool `json:"generated,omitempty"`
}

// IsTerminal reports whether the node has no children at the time of query.
func (n *StoryNode) IsTerminal() bool {
	return len(n.ChildIDs) == 0
}
