package audio

import (
	"math"
	"testing"
	"time"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		name     string
		level    float64
		expected float64
	}{
		{"full volume is unchanged", 1.0, 0},
		{"above full clamps", 1.5, 0},
		{"half volume is one octave down", 0.5, -1},
		{"quarter volume is two octaves down", 0.25, -2},
		{"zero is silent floor", 0, -10},
		{"negative is silent floor", -0.5, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levelToVolume(tt.level)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

// The completion callback runs on the speaker goroutine with the speaker
// mutex held, concurrently with control methods that hold e.mu and then take
// the speaker lock. It must return without touching e.mu or the two
// goroutines deadlock each other at track end.
func TestFinishedCallbackDoesNotTakeEngineLock(t *testing.T) {
	e := NewBeepEngine()

	e.mu.Lock()
	returned := make(chan struct{})
	go func() {
		e.finished(e.gen)()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("finished callback blocked while the engine lock was held")
	}
	e.mu.Unlock()

	select {
	case ev := <-e.Events():
		if _, ok := ev.(Finished); !ok {
			t.Fatalf("event = %T, want Finished", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Finished event never delivered")
	}
}

func TestFinishedCallbackDropsStaleGeneration(t *testing.T) {
	e := NewBeepEngine()

	e.mu.Lock()
	gen := e.gen
	e.gen++ // a newer bind superseded this one
	e.mu.Unlock()

	e.finished(gen)()

	select {
	case ev := <-e.Events():
		t.Fatalf("stale callback delivered %T", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()

	if err := m.Bind("stream://x"); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	m.Play()
	m.Pause()
	m.SetVolume(0.5)

	if calls := m.BindCalls(); len(calls) != 1 || calls[0] != "stream://x" {
		t.Errorf("BindCalls() = %v", calls)
	}
	if m.PlayCalls() != 1 || m.PauseCalls() != 1 {
		t.Errorf("play/pause = %d/%d, want 1/1", m.PlayCalls(), m.PauseCalls())
	}
	if v := m.VolumeCalls(); len(v) != 1 || v[0] != 0.5 {
		t.Errorf("VolumeCalls() = %v", v)
	}
}
