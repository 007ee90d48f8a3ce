package routing

import (
	"context"
	"sync"

	"freight-tracking-service/internal/domain"
)

// MockRouteProvider returns a scripted plan or error and counts calls.
type MockRouteProvider struct {
	Plan *domain.RoutePlan
	Err  error

	mu    sync.Mutex
	calls int
}

func (m *MockRouteProvider) FetchRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (*domain.RoutePlan, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Plan, nil
}

func (m *MockRouteProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
