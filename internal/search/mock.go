package search

import (
	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: a, query.
func (_m *MockProvider) Match(a action.Action, query string) bool {
	ret := _m.Called(a, query)

	if rf, ok := ret.Get(0).(func(action.Action, string) bool); ok {
		return rf(a, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() string); ok {
		return rf()
	}
	return ret.String(0)
}
