package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	positionInterval = 500 * time.Millisecond
	fetchTimeout     = 30 * time.Second
	eventBuffer      = 64
)

// BeepEngine renders remote mp3 streams through the speaker. Binding fetches
// the stream over HTTP and decodes it in the background; readiness and
// progress are reported on the Events channel.
type BeepEngine struct {
	mu         sync.Mutex
	httpClient *http.Client
	events     chan Event

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	level float64
	muted bool

	// gen identifies the current bind; callbacks and tickers belonging to a
	// superseded bind compare against it and drop their notifications.
	gen int

	sampleRate  beep.SampleRate
	initialized bool
	closed      bool
}

// NewBeepEngine creates an engine with no bound source.
func NewBeepEngine() *BeepEngine {
	return &BeepEngine{
		httpClient: &http.Client{Timeout: fetchTimeout},
		events:     make(chan Event, eventBuffer),
		level:      1,
	}
}

// Events returns the notification channel.
func (e *BeepEngine) Events() <-chan Event { return e.events }

// Bind fetches and decodes the URL, superseding any previous source.
// Errors during fetch/decode are delivered as EngineError events because
// they happen after Bind has returned.
func (e *BeepEngine) Bind(url string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("engine closed")
	}
	e.gen++
	gen := e.gen
	e.stopLocked()
	e.mu.Unlock()

	go e.load(gen, url)
	return nil
}

func (e *BeepEngine) load(gen int, url string) {
	body, err := e.fetch(url)
	if err != nil {
		e.emitFor(gen, EngineError{Err: err})
		return
	}

	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		e.emitFor(gen, EngineError{Err: fmt.Errorf("decode stream: %w", err)})
		return
	}

	e.mu.Lock()
	if gen != e.gen || e.closed {
		e.mu.Unlock()
		streamer.Close()
		return
	}

	if !e.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			e.mu.Unlock()
			streamer.Close()
			e.emitFor(gen, EngineError{Err: fmt.Errorf("init speaker: %w", err)})
			return
		}
		e.sampleRate = format.SampleRate
		e.initialized = true
	}

	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: e.resampled(streamer, format), Paused: true}
	e.volume = &effects.Volume{
		Streamer: e.ctrl,
		Base:     2,
		Volume:   levelToVolume(e.level),
		Silent:   e.muted || e.level <= 0,
	}
	duration := format.SampleRate.D(streamer.Len())

	speaker.Play(beep.Seq(e.volume, beep.Callback(e.finished(gen))))
	e.mu.Unlock()

	e.emitFor(gen, MetadataReady{Duration: duration})
	go e.tickPosition(gen)
}

func (e *BeepEngine) fetch(url string) ([]byte, error) {
	resp, err := e.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stream: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	return body, nil
}

// finished returns the completion callback for a bind. The speaker invokes
// it while streaming, with the speaker mutex held; taking e.mu there would
// invert the lock order of Play/Pause/Seek/SetVolume, which hold e.mu and
// then take the speaker lock. Delivery happens from a fresh goroutine so the
// callback itself never touches e.mu.
func (e *BeepEngine) finished(gen int) func() {
	return func() {
		go e.emitFor(gen, Finished{})
	}
}

// resampled adapts a streamer to the speaker's sample rate when the track
// was encoded at a different one.
func (e *BeepEngine) resampled(s beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate == e.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, e.sampleRate, s)
}

// tickPosition emits PositionUpdate events until the bind is superseded.
func (e *BeepEngine) tickPosition(gen int) {
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if gen != e.gen || e.closed || e.streamer == nil {
			e.mu.Unlock()
			return
		}
		// The speaker goroutine streams from the same streamer; Position
		// must be read under the speaker lock, taken after e.mu like the
		// control methods do.
		speaker.Lock()
		pos := e.format.SampleRate.D(e.streamer.Position())
		paused := e.ctrl.Paused
		speaker.Unlock()
		e.mu.Unlock()

		if !paused {
			e.emitFor(gen, PositionUpdate{Position: pos})
		}
	}
}

// Play resumes the bound source. No-op before MetadataReady.
func (e *BeepEngine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
}

// Pause pauses the bound source.
func (e *BeepEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

// Seek jumps to the given position, clamped to the track bounds.
func (e *BeepEngine) Seek(position time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return
	}

	target := e.format.SampleRate.N(position)
	if target < 0 {
		target = 0
	}
	if last := e.streamer.Len() - 1; target > last {
		target = last
	}

	speaker.Lock()
	_ = e.streamer.Seek(target)
	speaker.Unlock()
}

// SetVolume sets the level in [0, 1]. Zero renders silent.
func (e *BeepEngine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	e.level = level
	e.muted = level == 0

	if e.volume == nil {
		return
	}
	speaker.Lock()
	e.volume.Volume = levelToVolume(level)
	e.volume.Silent = level <= 0
	speaker.Unlock()
}

// Close stops playback and releases the bound source.
func (e *BeepEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.gen++
	e.stopLocked()
	return nil
}

func (e *BeepEngine) stopLocked() {
	if e.streamer == nil {
		return
	}
	speaker.Clear()
	e.streamer.Close()
	e.streamer = nil
	e.ctrl = nil
	e.volume = nil
}

// emitFor delivers an event unless the bind has been superseded. Sends are
// non-blocking: a stalled consumer loses position ticks, never the channel.
func (e *BeepEngine) emitFor(gen int, ev Event) {
	e.mu.Lock()
	stale := gen != e.gen || e.closed
	e.mu.Unlock()
	if stale {
		return
	}
	select {
	case e.events <- ev:
	default:
	}
}

// levelToVolume converts a 0..1 level to beep's logarithmic volume scale:
// 1.0 -> 0 (unchanged), 0.5 -> -1 (half), 0 -> silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Verify BeepEngine implements Engine at compile time.
var _ Engine = (*BeepEngine)(nil)
