package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check with a typed expecter.
type MockCheck struct {
	mock.Mock
}

func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockCheckExpecter struct {
	mock *mock.Mock
}

func (m *MockCheck) EXPECT() *MockCheckExpecter {
	return &MockCheckExpecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := m.Called(ctx)
	res, _ := ret.Get(0).(*CheckResult)
	return res
}

type MockCheckStringCall struct {
	*mock.Call
}

func (c *MockCheckStringCall) Return(s string) *MockCheckStringCall {
	c.Call.Return(s)
	return c
}

type MockCheckRunCall struct {
	*mock.Call
}

func (c *MockCheckRunCall) Return(r *CheckResult) *MockCheckRunCall {
	c.Call.Return(r)
	return c
}

func (e *MockCheckExpecter) Name() *MockCheckStringCall {
	return &MockCheckStringCall{Call: e.mock.On("Name")}
}

func (e *MockCheckExpecter) Category() *MockCheckStringCall {
	return &MockCheckStringCall{Call: e.mock.On("Category")}
}

func (e *MockCheckExpecter) Run(ctx any) *MockCheckRunCall {
	return &MockCheckRunCall{Call: e.mock.On("Run", ctx)}
}
