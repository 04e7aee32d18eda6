package agentapi

import (
	"context"
	"sync"
)

// SentMessage records one SendMessage call observed by MockService.
type SentMessage struct {
	AgentID string
	Message OutgoingMessage
}

// MockService is a mock implementation of Service for testing.
type MockService struct {
	mu       sync.Mutex
	sent     []SentMessage
	listCall int

	// Test configuration
	Agents    []Agent
	ListError error

	// Replies are returned in order, one slice per SendMessage call. Once
	// exhausted, SendMessage returns no replies.
	Replies   [][]IncomingMessage
	SendError error

	// Custom behavior; takes precedence over the fields above when set.
	ListAgentsFunc  func(ctx context.Context) ([]Agent, error)
	SendMessageFunc func(ctx context.Context, agentID string, msg OutgoingMessage) ([]IncomingMessage, error)
}

// NewMockService creates a new mock service serving the given agents.
func NewMockService(agents ...Agent) *MockService {
	return &MockService{Agents: agents}
}

// ListAgents implements Service.ListAgents
func (m *MockService) ListAgents(ctx context.Context) ([]Agent, error) {
	m.mu.Lock()
	m.listCall++
	fn := m.ListAgentsFunc
	agents, err := m.Agents, m.ListError
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	if err != nil {
		return nil, err
	}
	result := make([]Agent, len(agents))
	copy(result, agents)
	return result, nil
}

// SendMessage implements Service.SendMessage
func (m *MockService) SendMessage(ctx context.Context, agentID string, msg OutgoingMessage) ([]IncomingMessage, error) {
	m.mu.Lock()
	m.sent = append(m.sent, SentMessage{AgentID: agentID, Message: msg})
	fn := m.SendMessageFunc
	if fn != nil {
		m.mu.Unlock()
		return fn(ctx, agentID, msg)
	}
	defer m.mu.Unlock()

	if m.SendError != nil {
		return nil, m.SendError
	}
	if len(m.Replies) == 0 {
		return nil, nil
	}
	replies := m.Replies[0]
	m.Replies = m.Replies[1:]
	return replies, nil
}

// AddReply queues the replies for the next SendMessage call.
func (m *MockService) AddReply(replies ...IncomingMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies = append(m.Replies, replies)
}

// Sent returns the messages sent so far (for testing)
func (m *MockService) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]SentMessage, len(m.sent))
	copy(result, m.sent)
	return result
}

// ListCalls returns how many times ListAgents was called (for testing)
func (m *MockService) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCall
}

// Ensure MockService implements Service
var _ Service = (*MockService)(nil)
