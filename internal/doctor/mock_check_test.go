package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockCheck is a testify mock of Check.
type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string {
	return m.Called().String(0)
}

func (m *mockCheck) Category() string {
	return m.Called().String(0)
}

func (m *mockCheck) Run(ctx context.Context) *CheckResult {
	return m.Called(ctx).Get(0).(*CheckResult)
}

// mockFixer is a mockCheck that can also fix.
type mockFixer struct {
	mockCheck
}

func (m *mockFixer) CanFix() bool {
	return m.Called().Bool(0)
}

func (m *mockFixer) Fix(ctx context.Context) []FixResult {
	return m.Called(ctx).Get(0).([]FixResult)
}
