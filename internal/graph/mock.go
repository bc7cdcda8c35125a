package graph

import (
	"context"
	"sync"
	"time"

	"github.com/shopgraph/shopgraph/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Statement string
	Params    map[string]any
	Mode      TxMode
	Timestamp time.Time
}

// ExecuteFunc lets tests supply statement-aware behavior for Execute.
type ExecuteFunc func(ctx context.Context, statement string, params map[string]any, mode TxMode) (QueryResult, error)

// MockGraphClient is a mock implementation of GraphClient for testing.
// It provides configurable responses and tracks all method calls for
// verification. Execute responses are served from a FIFO queue unless an
// ExecuteFunc is installed.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	executeFunc    ExecuteFunc
	executeResults []QueryResult
	executeError   error
	connectError   error
	closeError     error
}

// NewMockGraphClient creates a new mock graph client for testing.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
	}
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Connect", Timestamp: time.Now()})

	if m.connectError != nil {
		return m.connectError
	}

	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Close", Timestamp: time.Now()})

	if m.closeError != nil {
		return m.closeError
	}

	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Health", Timestamp: time.Now()})

	if !m.connected {
		return types.Unhealthy("not connected")
	}

	return m.healthStatus
}

// Execute records the call and returns the next configured result.
func (m *MockGraphClient) Execute(ctx context.Context, statement string, params map[string]any, mode TxMode) (QueryResult, error) {
	m.mu.Lock()

	m.calls = append(m.calls, MockCall{
		Method:    "Execute",
		Statement: statement,
		Params:    params,
		Mode:      mode,
		Timestamp: time.Now(),
	})

	if !m.connected {
		m.mu.Unlock()
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}

	if m.executeError != nil {
		err := m.executeError
		m.mu.Unlock()
		return QueryResult{}, err
	}

	if m.executeFunc != nil {
		fn := m.executeFunc
		m.mu.Unlock()
		return fn(ctx, statement, params, mode)
	}

	// Serve the next configured result (FIFO).
	if len(m.executeResults) > 0 {
		result := m.executeResults[0]
		m.executeResults = m.executeResults[1:]
		m.mu.Unlock()
		return result, nil
	}

	m.mu.Unlock()
	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
	}, nil
}

// SetExecuteFunc installs statement-aware behavior for Execute.
// Takes precedence over the FIFO result queue.
func (m *MockGraphClient) SetExecuteFunc(fn ExecuteFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeFunc = fn
}

// SetExecuteResults configures what Execute() should return (FIFO queue).
func (m *MockGraphClient) SetExecuteResults(results []QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeResults = results
}

// AddExecuteResult appends a single result to the FIFO queue.
func (m *MockGraphClient) AddExecuteResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeResults = append(m.executeResults, result)
}

// SetExecuteError configures Execute() to return an error.
func (m *MockGraphClient) SetExecuteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeError = err
}

// SetConnectError configures Connect() to return an error.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to return an error.
func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetHealthStatus configures what Health() should return.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// GetCalls returns all recorded method calls.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// CallCount returns the total number of method calls.
func (m *MockGraphClient) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// IsConnected returns whether the mock is in connected state.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Reset clears all recorded calls and resets the mock to its initial state.
func (m *MockGraphClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	m.healthStatus = types.Healthy("mock graph client")
	m.calls = nil
	m.executeFunc = nil
	m.executeResults = nil
	m.executeError = nil
	m.connectError = nil
	m.closeError = nil
}
