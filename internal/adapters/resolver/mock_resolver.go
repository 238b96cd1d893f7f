package resolver

import (
	"context"
	"ps1-lightcurve-service/internal/domain"
	"sync"
)

// MockResolver serves coordinates from a fixed table and counts lookups.
// Names absent from the table resolve to *domain.UnknownObjectError.
type MockResolver struct {
	mu    sync.Mutex
	m     map[string]domain.Coordinate
	errs  map[string]error
	calls map[string]int
}

func NewMockResolver(known map[string]domain.Coordinate) *MockResolver {
	m := make(map[string]domain.Coordinate, len(known))
	for k, v := range known {
		m[k] = v
	}
	return &MockResolver{m: m, errs: map[string]error{}, calls: map[string]int{}}
}

// FailWith makes lookups of name return err.
func (r *MockResolver) FailWith(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[name] = err
}

func (r *MockResolver) Resolve(ctx context.Context, name string) (domain.Coordinate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls[name]++
	if err, ok := r.errs[name]; ok {
		return domain.Coordinate{}, err
	}

	c, ok := r.m[name]
	if !ok {
		return domain.Coordinate{}, &domain.UnknownObjectError{Name: name}
	}
	return c, nil
}

// Calls reports how many times name was looked up.
func (r *MockResolver) Calls(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}
