package tree

import "oraculus/internal/model"

// SeedNodes returns the authored tree the engine ships with: a root, two
// first-level branches and two levels below them. Order matters — the
// first node is the root, and children appear after their parents.
func SeedNodes() []*model.StoryNode {
	return []*model.StoryNode{
		{
			ID: "start",
			StoryText: "You wake up in a dimly lit room with no memory of how you got here. " +
				"The air feels thick and mysterious. To your left, you see a dusty mirror " +
				"reflecting strange shadows. To your right, an old wooden door stands slightly ajar.",
		},
		{
			ID:          "examine_mirror",
			ParentID:    "start",
			ChoiceLabel: "Examine the mysterious mirror",
			StoryText: "You approach the ornate mirror. As you look into it, your reflection " +
				"seems to shimmer and change. For a moment, you see yourself differently - " +
				"older, younger, or perhaps from another time entirely. The mirror's surface " +
				"ripples like water.",
		},
		{
			ID:          "approach_door",
			ParentID:    "start",
			ChoiceLabel: "Approach the wooden door",
			StoryText: "You slowly push the door open and step into a long, winding corridor. " +
				"Ancient torches flicker along the stone walls, casting dancing shadows. " +
				"The corridor splits into two paths: one descends into darkness, the other " +
				"leads toward a faint, warm light.",
		},
		{
			ID:          "touch_mirror",
			ParentID:    "examine_mirror",
			ChoiceLabel: "Touch the mirror's surface",
			StoryText: "As your fingertips touch the mirror's surface, it gives way like liquid. " +
				"You feel a strange pulling sensation, and suddenly you're standing in what " +
				"appears to be the same room, but everything is reversed and slightly different. " +
				"A voice whispers: 'Welcome to the other side.'",
		},
		{
			ID:          "step_away_mirror",
			ParentID:    "examine_mirror",
			ChoiceLabel: "Step away from the mirror",
			StoryText: "You step back from the unsettling mirror, deciding some mysteries are better " +
				"left alone. As you turn away, you notice a small, leather-bound journal on a " +
				"nearby table that wasn't there before. Its pages seem to flutter on their own.",
		},
		{
			ID:          "dark_path",
			ParentID:    "approach_door",
			ChoiceLabel: "Take the dark path downward",
			StoryText: "You choose the darker path, feeling your way along the cold stone walls. " +
				"After several minutes, you emerge into a vast underground chamber filled with " +
				"glowing crystals. Their light reveals ancient carvings on the walls that seem " +
				"to tell a story about travelers like yourself.",
		},
		{
			ID:          "light_path",
			ParentID:    "approach_door",
			ChoiceLabel: "Follow the path toward the light",
			StoryText: "Following the warm light, you find yourself in a cozy library filled with " +
				"floating books and scrolls. An elderly figure in robes looks up from a desk " +
				"and smiles knowingly. 'Ah, another seeker has arrived. I've been expecting you.'",
		},
		{
			ID:          "investigate_crystals",
			ParentID:    "dark_path",
			ChoiceLabel: "Investigate the glowing crystals",
			StoryText: "You approach the largest crystal, which pulses with an inner light. " +
				"As you touch it, visions flood your mind - glimpses of other adventurers " +
				"who came before you, each making choices that shaped their destiny. " +
				"You realize this place responds to the decisions of those who enter.",
		},
		{
			ID:          "meet_librarian",
			ParentID:    "light_path",
			ChoiceLabel: "Speak with the librarian",
			StoryText: "The librarian gestures to a chair across from their desk. 'Every story " +
				"needs a beginning, and every choice creates new possibilities. You have " +
				"the power to shape not just your path, but the very nature of this realm. " +
				"What kind of story do you wish to write?'",
		},
	}
}
