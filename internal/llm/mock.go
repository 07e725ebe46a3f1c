package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued responses in FIFO order and records every
// request. When Respond is set it is used instead of the queue, which
// suits concurrent callers whose order is not fixed.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
	Respond   func(Request) MockResponse
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns ErrProviderUnavailable once the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var next MockResponse
	switch {
	case m.Respond != nil:
		respond := m.Respond
		m.mu.Unlock()
		next = respond(req)
	case len(m.responses) == 0:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	default:
		next = m.responses[0]
		m.responses = m.responses[1:]
		m.mu.Unlock()
	}

	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
