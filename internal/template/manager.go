package template

import (
	"fmt"
	"sort"
	"strconv"

	"oraculus/internal/model"
	"oraculus/internal/variables"

	"go.uber.org/zap"
)

// Summary is the list-view projection of a template.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Details is the full API projection of a template, including its
// variable definitions and scenarios.
type Details struct {
	TemplateID  string                    `json:"template_id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Variables   map[string]CustomVariable `json:"variables"`
	Scenarios   []Scenario                `json:"predefined_scenarios"`
}

// GenerateResult is the outcome of a template-driven story generation.
type GenerateResult struct {
	Story              string            `json:"story"`
	CacheKey           string            `json:"cache_key"`
	CharacterVariables map[string]string `json:"character_variables"`
}

// ValidationError carries the per-variable messages from a failed
// Validate pass.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d problem(s)", len(e.Details))
}

// Manager holds the template catalog. It is populated with the built-in
// fantasy and sci-fi templates at construction.
type Manager struct {
	templates map[string]*StoryTemplate
	logger    *zap.Logger
}

// NewManager builds a Manager preloaded with the default templates.
func NewManager(logger *zap.Logger) *Manager {
	m := &Manager{
		templates: make(map[string]*StoryTemplate),
		logger:    logger.Named("templates"),
	}
	m.installDefaults()
	return m
}

// Add registers a template, replacing any previous one with the same ID.
func (m *Manager) Add(t *StoryTemplate) {
	m.templates[t.ID] = t
}

// Get returns the template with the given ID.
func (m *Manager) Get(id string) (*StoryTemplate, bool) {
	t, ok := m.templates[id]
	return t, ok
}

// List returns summaries of every template, sorted by ID.
func (m *Manager) List() []Summary {
	out := make([]Summary, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, Summary{ID: t.ID, Title: t.Title, Description: t.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DetailsFor returns the full projection of one template.
func (m *Manager) DetailsFor(id string) (Details, error) {
	t, ok := m.templates[id]
	if !ok {
		return Details{}, ErrTemplateNotFound
	}
	vars := make(map[string]CustomVariable, len(t.vars))
	for name, v := range t.vars {
		vars[name] = v
	}
	return Details{
		TemplateID:  t.ID,
		Title:       t.Title,
		Description: t.Description,
		Variables:   vars,
		Scenarios:   t.Scenarios(),
	}, nil
}

// Generate validates the values, builds a protagonist from the character
// fields and produces the resolved story text.
func (m *Manager) Generate(id string, values map[string]string, character map[string]string) (GenerateResult, error) {
	t, ok := m.templates[id]
	if !ok {
		return GenerateResult{}, ErrTemplateNotFound
	}

	if details := t.Validate(values); len(details) > 0 {
		m.logger.Warn("Template generation rejected",
			zap.String("template_id", id), zap.Strings("problems", details))
		return GenerateResult{}, &ValidationError{Details: details}
	}

	p := protagonistFromCharacter(character)
	story := t.GenerateStory(values, &p)

	result := GenerateResult{
		Story:              story,
		CacheKey:           variables.CacheKey("template_"+id, p),
		CharacterVariables: variables.SubstitutionMap(p),
	}
	m.logger.Info("Story generated from template",
		zap.String("template_id", id), zap.String("cache_key", result.CacheKey))
	return result, nil
}

func protagonistFromCharacter(character map[string]string) model.Protagonist {
	p := model.Protagonist{
		Name:              "Adventurer",
		Gender:            "other",
		Age:               25,
		StartingSituation: "An ordinary person in extraordinary circumstances",
	}
	if v := character["name"]; v != "" {
		p.Name = v
	}
	if v := character["gender"]; v != "" {
		p.Gender = v
	}
	if v := character["age"]; v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			p.Age = age
		}
	}
	if v := character["situation"]; v != "" {
		p.StartingSituation = v
	}
	return p
}

func intPtr(v int) *int { return &v }

func (m *Manager) installDefaults() {
	fantasy := NewStoryTemplate("fantasy_adventure", "Fantasy Adventure",
		"A customizable fantasy adventure with magical elements")
	fantasy.AddVariable(CustomVariable{
		Name:        "setting",
		Description: "The world/location where the adventure takes place",
		Type:        TypeChoice,
		Options:     []string{"enchanted_forest", "ancient_castle", "mystical_mountains", "underground_dungeon"},
	})
	fantasy.AddVariable(CustomVariable{
		Name:        "magical_item",
		Description: "A magical item the protagonist encounters",
		Type:        TypeChoice,
		Options:     []string{"glowing_crystal", "ancient_scroll", "enchanted_mirror", "mysterious_amulet"},
	})
	fantasy.AddVariable(CustomVariable{
		Name:         "threat_level",
		Description:  "How dangerous the adventure should be",
		Type:         TypeRange,
		MinValue:     intPtr(1),
		MaxValue:     intPtr(10),
		DefaultValue: "5",
	})
	fantasy.Body = "You awaken in a {setting}, feeling disoriented and unsure of how you arrived here.\n" +
		"As a {age_bucket} {gender} {situation}, you notice a {magical_item} nearby that seems to pulse with otherworldly energy.\n" +
		"The air crackles with magic, and you sense that this place holds both great promise and danger (threat level: {threat_level}/10).\n" +
		"The path ahead is shrouded in mystery, and your choices will determine your fate in this realm."
	fantasy.AddScenario("Lost Scholar", map[string]string{
		"setting":      "ancient_castle",
		"magical_item": "ancient_scroll",
		"threat_level": "3",
	})
	fantasy.AddScenario("Dangerous Quest", map[string]string{
		"setting":      "underground_dungeon",
		"magical_item": "glowing_crystal",
		"threat_level": "8",
	})
	m.Add(fantasy)

	scifi := NewStoryTemplate("scifi_exploration", "Sci-Fi Exploration",
		"A space exploration adventure with technology and alien worlds")
	scifi.AddVariable(CustomVariable{
		Name:        "location",
		Description: "Where the adventure takes place",
		Type:        TypeChoice,
		Options:     []string{"space_station", "alien_planet", "generation_ship", "research_facility"},
	})
	scifi.AddVariable(CustomVariable{
		Name:         "tech_level",
		Description:  "Level of available technology",
		Type:         TypeRange,
		MinValue:     intPtr(1),
		MaxValue:     intPtr(10),
		DefaultValue: "7",
	})
	scifi.AddVariable(CustomVariable{
		Name:         "alien_presence",
		Description:  "Are there aliens in this scenario",
		Type:         TypeBoolean,
		DefaultValue: "true",
	})
	scifi.Body = "You find yourself aboard a {location}, surrounded by technology that hums with energy (tech level: {tech_level}/10).\n" +
		"As a {age_bucket} {gender} {situation}, you're equipped with advanced gear but face an uncertain situation.\n" +
		"Your sensors detect unusual readings that suggest you're not alone in this place.\n" +
		"The future of your mission - and perhaps humanity itself - depends on the decisions you make next."
	m.Add(scifi)
}
