package mocks

import "context"

// MockPinger is a mock database health check
type MockPinger struct {
	Err   error
	Calls int
}

func (m *MockPinger) HealthCheck(ctx context.Context) error {
	m.Calls++
	return m.Err
}
