package audio

import (
	"sync"
	"time"
)

// Mock is a test double for Engine. It is safe for concurrent use since the
// controller calls Bind from its load goroutine.
type Mock struct {
	mu     sync.Mutex
	events chan Event

	bindCalls   []string
	bindErr     error
	playCalls   int
	pauseCalls  int
	seekCalls   []time.Duration
	volumeCalls []float64
	closed      bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{events: make(chan Event, 64)}
}

func (m *Mock) Bind(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindCalls = append(m.bindCalls, url)
	return m.bindErr
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetBindError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindErr = err
}

func (m *Mock) BindCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bindCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumeCalls...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateMetadataReady emits a MetadataReady event.
func (m *Mock) SimulateMetadataReady(d time.Duration) {
	m.events <- MetadataReady{Duration: d}
}

// SimulatePosition emits a PositionUpdate event.
func (m *Mock) SimulatePosition(p time.Duration) {
	m.events <- PositionUpdate{Position: p}
}

// SimulateFinished emits a Finished event.
func (m *Mock) SimulateFinished() {
	m.events <- Finished{}
}

// SimulateError emits an EngineError event.
func (m *Mock) SimulateError(err error) {
	m.events <- EngineError{Err: err}
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
