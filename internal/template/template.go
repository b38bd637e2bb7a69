// Package template implements user-defined story templates: parameterized
// opening texts with typed custom variables, validated values and
// predefined scenarios.
package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"oraculus/internal/model"
	"oraculus/internal/variables"
)

// VariableType enumerates the supported custom variable kinds.
type VariableType string

const (
	TypeText    VariableType = "text"
	TypeChoice  VariableType = "choice"
	TypeRange   VariableType = "range"
	TypeBoolean VariableType = "boolean"
)

// ErrTemplateNotFound is returned when a template ID is unknown.
var ErrTemplateNotFound = errors.New("template not found")

// CustomVariable describes one user-supplied input of a template.
type CustomVariable struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Type         VariableType `json:"type"`
	Options      []string     `json:"options,omitempty"`
	MinValue     *int         `json:"min_value,omitempty"`
	MaxValue     *int         `json:"max_value,omitempty"`
	DefaultValue string       `json:"default_value,omitempty"`
}

// Scenario is a named preset of variable values for a template.
type Scenario struct {
	Name   string            `json:"name"`
	Values map[string]string `json:"values"`
}

// StoryTemplate is a parameterized story opening. The body may reference
// custom variables and protagonist variables with {var} or $var
// placeholders.
type StoryTemplate struct {
	ID          string
	Title       string
	Description string
	Body        string

	vars      map[string]CustomVariable
	varOrder  []string
	scenarios []Scenario
}

// NewStoryTemplate creates an empty template with the given identity.
func NewStoryTemplate(id, title, description string) *StoryTemplate {
	return &StoryTemplate{
		ID:          id,
		Title:       title,
		Description: description,
		vars:        make(map[string]CustomVariable),
	}
}

// AddVariable registers a custom variable. Re-adding a name replaces the
// earlier definition but keeps its position.
func (t *StoryTemplate) AddVariable(v CustomVariable) {
	if _, exists := t.vars[v.Name]; !exists {
		t.varOrder = append(t.varOrder, v.Name)
	}
	t.vars[v.Name] = v
}

// AddScenario registers a named preset of variable values.
func (t *StoryTemplate) AddScenario(name string, values map[string]string) {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	t.scenarios = append(t.scenarios, Scenario{Name: name, Values: copied})
}

// Variables returns the custom variables in registration order.
func (t *StoryTemplate) Variables() []CustomVariable {
	out := make([]CustomVariable, 0, len(t.varOrder))
	for _, name := range t.varOrder {
		out = append(out, t.vars[name])
	}
	return out
}

// Scenarios returns the predefined scenarios.
func (t *StoryTemplate) Scenarios() []Scenario {
	return t.scenarios
}

// Validate checks provided values against the variable definitions and
// returns one message per violation. A missing variable is an error only
// when it has no default.
func (t *StoryTemplate) Validate(values map[string]string) []string {
	var errs []string
	for _, name := range t.varOrder {
		v := t.vars[name]
		value, provided := values[name]
		if !provided {
			if v.DefaultValue == "" {
				errs = append(errs, fmt.Sprintf("required variable %q not provided", name))
			}
			continue
		}

		switch v.Type {
		case TypeChoice:
			if len(v.Options) > 0 && !contains(v.Options, value) {
				errs = append(errs, fmt.Sprintf("variable %q must be one of: %s",
					name, strings.Join(v.Options, ", ")))
			}
		case TypeRange:
			n, err := strconv.Atoi(value)
			if err != nil {
				errs = append(errs, fmt.Sprintf("variable %q must be a number", name))
				continue
			}
			if v.MinValue != nil && n < *v.MinValue {
				errs = append(errs, fmt.Sprintf("variable %q must be at least %d", name, *v.MinValue))
			}
			if v.MaxValue != nil && n > *v.MaxValue {
				errs = append(errs, fmt.Sprintf("variable %q must be at most %d", name, *v.MaxValue))
			}
		case TypeBoolean:
			if _, err := strconv.ParseBool(value); err != nil {
				errs = append(errs, fmt.Sprintf("variable %q must be true or false", name))
			}
		}
	}
	return errs
}

// GenerateStory resolves the template body against the provided values,
// variable defaults, and (when given) protagonist variables. Protagonist
// variables win over custom values on name clashes.
func (t *StoryTemplate) GenerateStory(values map[string]string, p *model.Protagonist) string {
	all := make(map[string]string, len(t.vars)+len(values)+6)
	for _, name := range t.varOrder {
		if v := t.vars[name]; v.DefaultValue != "" {
			all[name] = v.DefaultValue
		}
	}
	for k, v := range values {
		all[k] = v
	}
	if p != nil {
		for k, v := range variables.SubstitutionMap(*p) {
			all[k] = v
		}
	}
	return variables.Resolve(t.Body, all)
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
