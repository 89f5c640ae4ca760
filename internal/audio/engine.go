// Package audio abstracts the audio rendering engine. The transport
// controller drives it through Engine and reacts to its Events stream.
package audio

import "time"

// Event is a notification emitted by the engine. Events are delivered on a
// single channel in arrival order; the engine only emits events for the
// currently bound source.
type Event interface{ isEvent() }

// MetadataReady fires once per bind, when the stream is decoded far enough
// to know its duration and accept play/seek.
type MetadataReady struct {
	Duration time.Duration
}

// PositionUpdate reports playback progress.
type PositionUpdate struct {
	Position time.Duration
}

// Finished fires when the bound source plays to the end.
type Finished struct{}

// EngineError reports a failure after a successful bind.
type EngineError struct {
	Err error
}

func (MetadataReady) isEvent()  {}
func (PositionUpdate) isEvent() {}
func (Finished) isEvent()       {}
func (EngineError) isEvent()    {}

// Engine is the audio rendering resource. Binding a new URL supersedes the
// previous source; there is no explicit cancellation.
type Engine interface {
	// Bind loads the URL as the new source. It returns once loading has
	// started; readiness is reported via MetadataReady.
	Bind(url string) error
	Play()
	Pause()
	Seek(position time.Duration)
	SetVolume(level float64)
	Events() <-chan Event
	Close() error
}
