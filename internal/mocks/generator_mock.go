package mocks

import (
	"context"

	"oraculus/internal/generation"
	"oraculus/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock type for the generation.Generator type
type MockGenerator struct {
	mock.Mock
}

// ProposeChoices provides a mock function with given fields: ctx, storyContext, p
func (_m *MockGenerator) ProposeChoices(ctx context.Context, storyContext string, p model.Protagonist) ([]string, error) {
	ret := _m.Called(ctx, storyContext, p)

	var r0 []string
	if rf, ok := ret.Get(0).(func(context.Context, string, model.Protagonist) []string); ok {
		r0 = rf(ctx, storyContext, p)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	return r0, ret.Error(1)
}

// AnalyzeFeedback provides a mock function with given fields: ctx, storyContext, summary
func (_m *MockGenerator) AnalyzeFeedback(ctx context.Context, storyContext string, summary model.FeedbackSummary) (model.ExpansionSuggestion, error) {
	ret := _m.Called(ctx, storyContext, summary)

	var r0 model.ExpansionSuggestion
	if rf, ok := ret.Get(0).(func(context.Context, string, model.FeedbackSummary) model.ExpansionSuggestion); ok {
		r0 = rf(ctx, storyContext, summary)
	} else {
		r0 = ret.Get(0).(model.ExpansionSuggestion)
	}

	return r0, ret.Error(1)
}

// ContinueStory provides a mock function with given fields: ctx, storyContext, p, suggestion
func (_m *MockGenerator) ContinueStory(ctx context.Context, storyContext string, p model.Protagonist, suggestion model.ExpansionSuggestion) (string, error) {
	ret := _m.Called(ctx, storyContext, p, suggestion)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	return r0, ret.Error(1)
}

// NewMockGenerator creates a new instance of MockGenerator. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ generation.Generator = (*MockGenerator)(nil)
