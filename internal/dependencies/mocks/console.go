package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/remote"
)

// MockConsole is a scriptable Console for testing. Errors set on a
// field make the corresponding operation fail until cleared; call
// counters let tests assert single-flight behavior.
type MockConsole struct {
	mu sync.Mutex

	Overview *model.Overview
	Lists    *model.ListSet
	Logs     []model.LogEntry

	OverviewErr error
	ListsErr    error
	LogsErr     error
	SubmitErr   error
	SendErr     error
	StartErr    error
	StopErr     error
	RestartErr  error

	OverviewFetches atomic.Int32
	ListsFetches    atomic.Int32
	LogsFetches     atomic.Int32

	Submitted []*model.ListSet
	Sent      []string
	Lifecycle []string

	// Gate, when non-nil, blocks fetches until the channel is closed
	Gate chan struct{}
}

var _ remote.Console = (*MockConsole)(nil)

// NewMockConsole creates a mock with empty but non-nil resources
func NewMockConsole() *MockConsole {
	return &MockConsole{
		Overview: &model.Overview{},
		Lists:    &model.ListSet{},
	}
}

func (m *MockConsole) wait() {
	m.mu.Lock()
	gate := m.Gate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

// SetGate installs a gate channel blocking subsequent fetches
func (m *MockConsole) SetGate(gate chan struct{}) {
	m.mu.Lock()
	m.Gate = gate
	m.mu.Unlock()
}

func (m *MockConsole) FetchOverview(ctx context.Context) (*model.Overview, error) {
	m.OverviewFetches.Add(1)
	m.wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OverviewErr != nil {
		return nil, m.OverviewErr
	}
	return m.Overview.Clone(), nil
}

func (m *MockConsole) FetchLists(ctx context.Context) (*model.ListSet, error) {
	m.ListsFetches.Add(1)
	m.wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListsErr != nil {
		return nil, m.ListsErr
	}
	return m.Lists.Clone(), nil
}

func (m *MockConsole) FetchLogs(ctx context.Context) ([]model.LogEntry, error) {
	m.LogsFetches.Add(1)
	m.wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LogsErr != nil {
		return nil, m.LogsErr
	}
	return model.CloneLog(m.Logs), nil
}

func (m *MockConsole) SubmitLists(ctx context.Context, lists *model.ListSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	m.Submitted = append(m.Submitted, lists.Clone())
	m.Lists = lists.Clone()
	return nil
}

func (m *MockConsole) SendMessage(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, message)
	return nil
}

func (m *MockConsole) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lifecycle = append(m.Lifecycle, "start")
	return m.StartErr
}

func (m *MockConsole) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lifecycle = append(m.Lifecycle, "stop")
	return m.StopErr
}

func (m *MockConsole) Restart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lifecycle = append(m.Lifecycle, "restart")
	return m.RestartErr
}

// SetOverview replaces the scripted overview
func (m *MockConsole) SetOverview(o *model.Overview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overview = o.Clone()
}

// SetLists replaces the scripted lists
func (m *MockConsole) SetLists(l *model.ListSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lists = l.Clone()
}

// SetOverviewErr scripts overview fetch failures (nil clears)
func (m *MockConsole) SetOverviewErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverviewErr = err
}

// LastSubmitted returns the most recently submitted list set, or nil
func (m *MockConsole) LastSubmitted() *model.ListSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Submitted) == 0 {
		return nil
	}
	return m.Submitted[len(m.Submitted)-1].Clone()
}
