package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface. It records every
// request and answers through a configurable send function.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	requests []mediator.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	fn := m.sendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}
	return nil, fmt.Errorf("unsupported request type: %T", request)
}

// Register is a no-op so the mock can stand in during wiring
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// RegisterMiddleware is a no-op
func (m *MockMediator) RegisterMiddleware(middleware mediator.Middleware) {}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Requests returns every request sent so far
func (m *MockMediator) Requests() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request{}, m.requests...)
}

// LastRequest returns the most recent request, or nil
func (m *MockMediator) LastRequest() mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}
