package model

import "fmt"

// Protagonist is the player character for a single session. It is an
// immutable value: the engine only reads it for text substitution and
// attribute bucketing, it carries no identity beyond the session.
type Protagonist struct {
	Name              string `json:"name"`
	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	StartingSituation string `json:"starting_situation"`
}

// DefaultSituations is the fixed catalog offered during character creation.
// A situation supplied externally (e.g. via the HTTP API) is also accepted.
var DefaultSituations = []string{
	"A mysterious traveler seeking ancient knowledge",
	"A scholar who stumbled into a magical realm",
	"A warrior searching for a lost artifact",
	"An ordinary person caught in extraordinary circumstances",
}

// String renders the protagonist for prompts and logs.
func (p Protagonist) String() string {
	return fmt.Sprintf("%s (%s, %d) - %s", p.Name, p.Gender, p.Age, p.StartingSituation)
}

// Validate checks the protagonist fields the engine relies on.
func (p Protagonist) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("protagonist name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("protagonist age must be positive, got %d", p.Age)
	}
	return nil
}
