package queue

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/raaga-player/raaga/internal/catalog"
)

func testTracks(n int) []catalog.Track {
	tracks := make([]catalog.Track, n)
	for i := range tracks {
		tracks[i] = catalog.Track{ID: fmt.Sprintf("t%d", i), Title: fmt.Sprintf("Track %d", i)}
	}
	return tracks
}

func newTestManager(tracks []catalog.Track, startIndex int, t *testing.T) *Manager {
	t.Helper()
	m := New(rand.New(rand.NewSource(1)))
	if err := m.SetQueue(tracks, startIndex); err != nil {
		t.Fatalf("SetQueue failed: %v", err)
	}
	return m
}

// checkInvariant verifies position is -1 iff the queue is empty and in range
// otherwise.
func checkInvariant(t *testing.T, m *Manager) {
	t.Helper()
	if m.IsEmpty() {
		if m.Position() != -1 {
			t.Errorf("empty queue position = %d, want -1", m.Position())
		}
		if m.Current() != nil {
			t.Error("empty queue Current() should be nil")
		}
		return
	}
	if m.Position() < 0 || m.Position() >= m.Len() {
		t.Errorf("position %d out of range [0, %d)", m.Position(), m.Len())
	}
	if m.Current() == nil {
		t.Error("non-empty queue Current() should not be nil")
	}
}

func TestNewIsEmpty(t *testing.T) {
	m := New(nil)
	checkInvariant(t, m)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestSetQueue(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		startIndex int
		wantPos    int
	}{
		{"start at zero", 3, 0, 0},
		{"start mid queue", 3, 1, 1},
		{"start at last", 3, 2, 2},
		{"negative index clamps to first", 3, -5, 0},
		{"overflow index clamps to last", 3, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(testTracks(tt.count), tt.startIndex, t)
			checkInvariant(t, m)
			if m.Position() != tt.wantPos {
				t.Errorf("position = %d, want %d", m.Position(), tt.wantPos)
			}
		})
	}
}

func TestSetQueueEmpty(t *testing.T) {
	m := newTestManager(testTracks(3), 1, t)

	if err := m.SetQueue(nil, 0); err != nil {
		t.Fatalf("SetQueue(nil, 0) failed: %v", err)
	}
	checkInvariant(t, m)

	if err := m.SetQueue(nil, 2); err != ErrInvalidIndex {
		t.Errorf("SetQueue(nil, 2) = %v, want ErrInvalidIndex", err)
	}
}

func TestSetQueueClearsShuffle(t *testing.T) {
	m := newTestManager(testTracks(5), 0, t)
	m.ToggleShuffle()

	if err := m.SetQueue(testTracks(3), 0); err != nil {
		t.Fatalf("SetQueue failed: %v", err)
	}
	if m.Shuffled() {
		t.Error("SetQueue should clear shuffle state")
	}
}

func TestEnqueue(t *testing.T) {
	m := New(rand.New(rand.NewSource(1)))

	m.Enqueue(catalog.Track{ID: "a"})
	checkInvariant(t, m)
	if m.Position() != 0 {
		t.Errorf("first enqueue position = %d, want 0", m.Position())
	}

	m.Enqueue(catalog.Track{ID: "b"})
	if m.Position() != 0 {
		t.Errorf("enqueue moved position to %d", m.Position())
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestDequeue(t *testing.T) {
	tests := []struct {
		name        string
		startPos    int
		remove      int
		wantPos     int
		wantCurrent string
	}{
		{"before current keeps current", 2, 0, 1, "t2"},
		{"after current keeps current", 1, 2, 1, "t1"},
		{"current shifts to successor", 1, 1, 1, "t2"},
		{"current at end shifts back", 2, 2, 1, "t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(testTracks(3), tt.startPos, t)
			if err := m.Dequeue(tt.remove); err != nil {
				t.Fatalf("Dequeue failed: %v", err)
			}
			checkInvariant(t, m)
			if m.Position() != tt.wantPos {
				t.Errorf("position = %d, want %d", m.Position(), tt.wantPos)
			}
			if cur := m.Current(); cur == nil || cur.ID != tt.wantCurrent {
				t.Errorf("current = %v, want %s", cur, tt.wantCurrent)
			}
		})
	}
}

func TestDequeueLast(t *testing.T) {
	m := newTestManager(testTracks(1), 0, t)
	if err := m.Dequeue(0); err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	checkInvariant(t, m)
}

func TestDequeueOutOfRange(t *testing.T) {
	m := newTestManager(testTracks(2), 0, t)
	if err := m.Dequeue(5); err != ErrInvalidIndex {
		t.Errorf("Dequeue(5) = %v, want ErrInvalidIndex", err)
	}
	if err := m.Dequeue(-1); err != ErrInvalidIndex {
		t.Errorf("Dequeue(-1) = %v, want ErrInvalidIndex", err)
	}
}

func TestJumpTo(t *testing.T) {
	m := newTestManager(testTracks(3), 0, t)

	if err := m.JumpTo(2); err != nil {
		t.Fatalf("JumpTo failed: %v", err)
	}
	if m.Position() != 2 {
		t.Errorf("position = %d, want 2", m.Position())
	}

	if err := m.JumpTo(3); err != ErrInvalidIndex {
		t.Errorf("JumpTo(3) = %v, want ErrInvalidIndex", err)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		repeat   RepeatMode
		startPos int
		wantOK   bool
		wantPos  int
	}{
		{"mid queue moves forward", RepeatOff, 0, true, 1},
		{"repeat off at end stops", RepeatOff, 2, false, 2},
		{"repeat all at end wraps", RepeatAll, 2, true, 0},
		{"repeat one at end replays", RepeatOne, 2, true, 2},
		{"repeat one mid queue still moves forward", RepeatOne, 0, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(testTracks(3), tt.startPos, t)
			m.SetRepeatMode(tt.repeat)

			if ok := m.Advance(); ok != tt.wantOK {
				t.Errorf("Advance() = %v, want %v", ok, tt.wantOK)
			}
			if m.Position() != tt.wantPos {
				t.Errorf("position = %d, want %d", m.Position(), tt.wantPos)
			}
			checkInvariant(t, m)
		})
	}
}

func TestAdvanceEmpty(t *testing.T) {
	m := New(nil)
	if m.Advance() {
		t.Error("Advance() on empty queue should return false")
	}
}

func TestRetreat(t *testing.T) {
	tests := []struct {
		name        string
		startPos    int
		elapsed     time.Duration
		wantRestart bool
		wantPos     int
	}{
		{"early in track moves back", 2, time.Second, false, 1},
		{"deep in track restarts", 2, 10 * time.Second, true, 2},
		{"at threshold moves back", 1, 3 * time.Second, false, 0},
		{"first track wraps to last", 0, time.Second, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(testTracks(3), tt.startPos, t)

			if restart := m.Retreat(tt.elapsed); restart != tt.wantRestart {
				t.Errorf("Retreat() restart = %v, want %v", restart, tt.wantRestart)
			}
			if m.Position() != tt.wantPos {
				t.Errorf("position = %d, want %d", m.Position(), tt.wantPos)
			}
		})
	}
}

func TestToggleShufflePinsCurrent(t *testing.T) {
	m := newTestManager(testTracks(10), 4, t)
	current := m.Current().ID

	if !m.ToggleShuffle() {
		t.Fatal("ToggleShuffle() should return true when enabling")
	}
	checkInvariant(t, m)
	if m.Position() != 0 {
		t.Errorf("shuffled position = %d, want 0", m.Position())
	}
	if got := m.Current().ID; got != current {
		t.Errorf("current after shuffle = %s, want %s", got, current)
	}
	if m.Len() != 10 {
		t.Errorf("Len() = %d, want 10", m.Len())
	}
}

func TestToggleShuffleRestoresOrder(t *testing.T) {
	tracks := testTracks(10)
	m := newTestManager(tracks, 4, t)
	current := m.Current().ID

	m.ToggleShuffle()
	if m.ToggleShuffle() {
		t.Fatal("second ToggleShuffle() should return false")
	}
	checkInvariant(t, m)

	restored := m.Tracks()
	for i := range tracks {
		if restored[i].ID != tracks[i].ID {
			t.Fatalf("restored[%d] = %s, want %s", i, restored[i].ID, tracks[i].ID)
		}
	}
	if got := m.Current().ID; got != current {
		t.Errorf("current after restore = %s, want %s", got, current)
	}
	if m.Position() != 4 {
		t.Errorf("restored position = %d, want 4", m.Position())
	}
}

func TestToggleShuffleKeepsAllTracks(t *testing.T) {
	m := newTestManager(testTracks(20), 7, t)
	m.ToggleShuffle()

	seen := make(map[string]bool)
	for _, tr := range m.Tracks() {
		seen[tr.ID] = true
	}
	if len(seen) != 20 {
		t.Errorf("shuffle lost tracks: %d unique, want 20", len(seen))
	}
}

func TestToggleShuffleEmpty(t *testing.T) {
	m := New(rand.New(rand.NewSource(1)))
	if !m.ToggleShuffle() {
		t.Error("ToggleShuffle() on empty queue should still enable shuffle")
	}
	checkInvariant(t, m)
	m.ToggleShuffle()
	checkInvariant(t, m)
}

func TestCycleRepeat(t *testing.T) {
	m := New(nil)

	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff}
	for _, expected := range want {
		if got := m.CycleRepeat(); got != expected {
			t.Errorf("CycleRepeat() = %v, want %v", got, expected)
		}
	}
}

func TestRepeatModeString(t *testing.T) {
	tests := []struct {
		mode     RepeatMode
		expected string
	}{
		{RepeatOff, "Off"},
		{RepeatAll, "All"},
		{RepeatOne, "One"},
		{RepeatMode(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestTracksReturnsCopy(t *testing.T) {
	m := newTestManager(testTracks(3), 0, t)

	tracks := m.Tracks()
	tracks[0].ID = "mutated"

	if m.Current().ID == "mutated" {
		t.Error("Tracks() should return a copy")
	}
}
