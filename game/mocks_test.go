package game

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- NetworkSession ---

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNetworkSession) Close(reason string) {
	m.Called(reason)
}

// --- Conn recorder ---

// fakeConn records everything the router fans out to it.
type fakeConn struct {
	id   string
	mu   sync.Mutex
	sent [][]byte
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(data []byte) bool {
	f.mu.Lock()
	f.sent = append(f.sent, data)
	f.mu.Unlock()
	return true
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	f.sent = nil
	f.mu.Unlock()
}

// envelopes decodes every recorded packet.
func (f *fakeConn) envelopes(t *testing.T) []Envelope {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	envs := make([]Envelope, 0, len(f.sent))
	for _, raw := range f.sent {
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		envs = append(envs, env)
	}
	return envs
}

// eventNames lists the recorded event names in order.
func (f *fakeConn) eventNames(t *testing.T) []string {
	t.Helper()
	envs := f.envelopes(t)
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.Event
	}
	return names
}

// dataOf returns the payload of the first recorded event with that name.
func (f *fakeConn) dataOf(t *testing.T, event string) json.RawMessage {
	t.Helper()
	for _, env := range f.envelopes(t) {
		if env.Event == event {
			return env.Data
		}
	}
	require.Failf(t, "event not received", "conn %s never got %q, got %v", f.id, event, f.eventNames(t))
	return nil
}

func (f *fakeConn) received(t *testing.T, event string) bool {
	t.Helper()
	for _, env := range f.envelopes(t) {
		if env.Event == event {
			return true
		}
	}
	return false
}
