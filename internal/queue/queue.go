// Package queue owns the ordered play sequence, the current position, and
// the shuffle/repeat transition logic.
package queue

import (
	"errors"
	"math/rand"
	"time"

	"github.com/raaga-player/raaga/internal/catalog"
)

// ErrInvalidIndex is returned for operations referencing an out-of-range
// queue position where no sensible clamp exists.
var ErrInvalidIndex = errors.New("queue: index out of range")

// restartThreshold is how far into a track "previous" means "restart this
// track" instead of "go to the prior track".
const restartThreshold = 3 * time.Second

// RepeatMode defines the behavior at queue end.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// Manager holds the playback order and position.
//
// Invariant: 0 <= position < len(order) whenever order is non-empty, and
// position == -1 iff order is empty. The current track is always
// order[position], never stored separately.
type Manager struct {
	rng *rand.Rand

	order     []catalog.Track
	baseOrder []catalog.Track // pre-shuffle order, retained only while shuffled
	position  int
	shuffled  bool
	repeat    RepeatMode
}

// New creates an empty queue manager. rng drives shuffling and may be nil,
// in which case a time-seeded source is used; tests inject a fixed seed.
func New(rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{rng: rng, position: -1}
}

// Current returns the current track, or nil if the queue is empty.
func (m *Manager) Current() *catalog.Track {
	if m.position < 0 || m.position >= len(m.order) {
		return nil
	}
	t := m.order[m.position]
	return &t
}

// Position returns the current index (-1 if the queue is empty).
func (m *Manager) Position() int { return m.position }

// Tracks returns a copy of the play order.
func (m *Manager) Tracks() []catalog.Track {
	out := make([]catalog.Track, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of queued tracks.
func (m *Manager) Len() int { return len(m.order) }

// IsEmpty returns true if no tracks are queued.
func (m *Manager) IsEmpty() bool { return len(m.order) == 0 }

// Shuffled returns whether the order is currently shuffled.
func (m *Manager) Shuffled() bool { return m.shuffled }

// RepeatMode returns the current repeat mode.
func (m *Manager) RepeatMode() RepeatMode { return m.repeat }

// SetRepeatMode sets the repeat mode.
func (m *Manager) SetRepeatMode(mode RepeatMode) { m.repeat = mode }

// CycleRepeat advances Off -> All -> One -> Off and returns the new mode.
func (m *Manager) CycleRepeat() RepeatMode {
	switch m.repeat {
	case RepeatOff:
		m.repeat = RepeatAll
	case RepeatAll:
		m.repeat = RepeatOne
	case RepeatOne:
		m.repeat = RepeatOff
	}
	return m.repeat
}

// SetQueue replaces the play order and positions on startIndex, clamped to
// the valid range. Shuffle state is cleared. Setting an empty queue with an
// explicit start index fails with ErrInvalidIndex.
func (m *Manager) SetQueue(tracks []catalog.Track, startIndex int) error {
	if len(tracks) == 0 {
		if startIndex != 0 {
			return ErrInvalidIndex
		}
		m.order = nil
		m.baseOrder = nil
		m.position = -1
		m.shuffled = false
		return nil
	}

	m.order = make([]catalog.Track, len(tracks))
	copy(m.order, tracks)
	m.baseOrder = nil
	m.shuffled = false

	switch {
	case startIndex < 0:
		m.position = 0
	case startIndex >= len(tracks):
		m.position = len(tracks) - 1
	default:
		m.position = startIndex
	}
	return nil
}

// Enqueue appends a track without changing the current position.
func (m *Manager) Enqueue(track catalog.Track) {
	m.order = append(m.order, track)
	if len(m.order) == 1 {
		m.position = 0
	}
}

// Dequeue removes the entry at index. Removing an entry before the current
// track keeps the current track current; removing the current track shifts
// to its closest successor at the same index (or empties the queue).
func (m *Manager) Dequeue(index int) error {
	if index < 0 || index >= len(m.order) {
		return ErrInvalidIndex
	}
	m.order = append(m.order[:index], m.order[index+1:]...)

	switch {
	case len(m.order) == 0:
		m.position = -1
	case index < m.position:
		m.position--
	case m.position >= len(m.order):
		m.position = len(m.order) - 1
	}
	return nil
}

// JumpTo moves the position to index.
func (m *Manager) JumpTo(index int) error {
	if index < 0 || index >= len(m.order) {
		return ErrInvalidIndex
	}
	m.position = index
	return nil
}

// Advance moves to the next track, honoring the repeat mode at queue end:
// All wraps to 0, One stays put and replays, Off stops. The return value is
// false only in the stop case, where the position is left unchanged.
func (m *Manager) Advance() bool {
	if len(m.order) == 0 {
		return false
	}
	next := m.position + 1
	if next < len(m.order) {
		m.position = next
		return true
	}
	switch m.repeat {
	case RepeatAll:
		m.position = 0
		return true
	case RepeatOne:
		return true
	default:
		return false
	}
}

// Retreat handles "previous": more than restartThreshold into the current
// track it means "restart" (no index change, reported via the return value);
// otherwise it moves back one entry, wrapping from the first to the last.
func (m *Manager) Retreat(elapsed time.Duration) (restart bool) {
	if len(m.order) == 0 {
		return false
	}
	if elapsed > restartThreshold {
		return true
	}
	if m.position > 0 {
		m.position--
	} else {
		m.position = len(m.order) - 1
	}
	return false
}

// ToggleShuffle toggles shuffle and returns the new state.
//
// Toggling on snapshots the order, pins the current track at slot 0, and
// Fisher-Yates shuffles the rest. Toggling off restores the snapshot and
// re-locates the current track by ID, falling back to 0 if it was removed
// from the restored order in the meantime.
func (m *Manager) ToggleShuffle() bool {
	if m.shuffled {
		m.restoreOrder()
	} else {
		m.shuffleOrder()
	}
	return m.shuffled
}

func (m *Manager) shuffleOrder() {
	m.shuffled = true
	if len(m.order) == 0 {
		return
	}

	m.baseOrder = make([]catalog.Track, len(m.order))
	copy(m.baseOrder, m.order)

	if m.position > 0 {
		m.order[0], m.order[m.position] = m.order[m.position], m.order[0]
	}
	m.position = 0

	for i := len(m.order) - 1; i > 1; i-- {
		j := 1 + m.rng.Intn(i)
		m.order[i], m.order[j] = m.order[j], m.order[i]
	}
}

func (m *Manager) restoreOrder() {
	m.shuffled = false
	if m.baseOrder == nil {
		return
	}

	current := m.Current()
	m.order = m.baseOrder
	m.baseOrder = nil

	m.position = 0
	if current != nil {
		for i, t := range m.order {
			if t.ID == current.ID {
				m.position = i
				break
			}
		}
	}
	if len(m.order) == 0 {
		m.position = -1
	}
}
