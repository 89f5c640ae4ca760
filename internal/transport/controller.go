// Package transport keeps the audio engine's loaded source, play state,
// position, and volume consistent with the queue and user intent, across
// the asynchronous notifications the engine emits.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/raaga-player/raaga/internal/audio"
	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/queue"
)

// History records load attempts into recent plays. Recording happens on
// load-attempt, not on successful playback start: "recently played" means
// "selected", not "finished".
type History interface {
	RecordPlay(track catalog.Track)
}

// Controller owns the live session between the queue's current track and
// the audio engine. All mutation is serialized through its mutex; engine
// notifications are consumed in arrival order by Run.
type Controller struct {
	mu sync.Mutex

	engine   audio.Engine
	queue    *queue.Manager
	resolver StreamResolver
	history  History
	quality  catalog.Quality

	ctx context.Context

	// loadSeq identifies the in-flight load. A resolution response whose
	// sequence no longer matches is discarded, so a stale load can never
	// clobber a newer selection.
	loadSeq       uint64
	loading       bool
	loadedTrackID string
	ready         bool

	playRequested bool
	position      time.Duration
	duration      time.Duration

	volume      float64
	muted       bool
	mutedVolume float64

	lastState State

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// StreamResolver resolves a track to a playable URL.
type StreamResolver interface {
	StreamURL(ctx context.Context, track catalog.Track, quality catalog.Quality) (string, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistory wires recent-plays recording.
func WithHistory(h History) Option {
	return func(c *Controller) { c.history = h }
}

// WithQuality sets the preferred stream quality.
func WithQuality(q catalog.Quality) Option {
	return func(c *Controller) { c.quality = q }
}

// New creates a controller. The engine's event stream is not consumed until
// Run is called.
func New(engine audio.Engine, q *queue.Manager, resolver StreamResolver, opts ...Option) *Controller {
	c := &Controller{
		engine:      engine,
		queue:       q,
		resolver:    resolver,
		quality:     catalog.QualityHigh,
		ctx:         context.Background(),
		volume:      1,
		mutedVolume: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes engine notifications until ctx is canceled. It must be
// running for playback to make progress.
func (c *Controller) Run(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	events := c.engine.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

// Close shuts down the controller and its subscriptions.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.loadSeq++ // discard any in-flight load
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return nil
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// --- Queue operations ---

// SetQueue replaces the queue, positions on startIndex, and starts loading
// the current track with play intent.
func (c *Controller) SetQueue(tracks []catalog.Track, startIndex int) error {
	c.mu.Lock()
	prev, prevIdx := c.currentLocked()
	if err := c.queue.SetQueue(tracks, startIndex); err != nil {
		c.mu.Unlock()
		return err
	}

	if c.queue.IsEmpty() {
		c.clearSessionLocked()
	} else {
		c.playRequested = true
		c.loadCurrentLocked()
	}
	c.emitQueueLocked()
	c.emitTrackLocked(prev, prevIdx)
	c.syncStateLocked()
	c.mu.Unlock()
	return nil
}

// Enqueue appends a track without changing what is playing.
func (c *Controller) Enqueue(track catalog.Track) {
	c.mu.Lock()
	c.queue.Enqueue(track)
	c.emitQueueLocked()
	c.mu.Unlock()
}

// Dequeue removes the entry at index. Removing the current track shifts
// playback to its closest successor.
func (c *Controller) Dequeue(index int) error {
	c.mu.Lock()
	prev, prevIdx := c.currentLocked()
	if err := c.queue.Dequeue(index); err != nil {
		c.mu.Unlock()
		return err
	}

	cur := c.queue.Current()
	switch {
	case cur == nil:
		c.clearSessionLocked()
		c.emitTrackLocked(prev, prevIdx)
	case prev == nil || cur.ID != prev.ID:
		c.loadCurrentLocked()
		c.emitTrackLocked(prev, prevIdx)
	}
	c.emitQueueLocked()
	c.syncStateLocked()
	c.mu.Unlock()
	return nil
}

// Next advances to the next track. At the end of the queue the repeat mode
// decides: All wraps, One replays, Off stops with the position unchanged.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked()
}

// Previous restarts the current track when more than the restart threshold
// has been played; otherwise it moves to the previous track, wrapping from
// the first to the last. Play intent is always set.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue.IsEmpty() {
		return
	}

	prev, prevIdx := c.currentLocked()
	restart := c.queue.Retreat(c.position)
	c.playRequested = true

	if restart {
		c.position = 0
		c.engine.Seek(0)
		if c.ready {
			c.engine.Play()
		}
		c.emitPositionLocked()
	} else {
		c.loadCurrentLocked()
		c.emitTrackLocked(prev, prevIdx)
	}
	c.syncStateLocked()
}

// JumpTo starts playback at the given queue index.
func (c *Controller) JumpTo(index int) error {
	c.mu.Lock()
	prev, prevIdx := c.currentLocked()
	if err := c.queue.JumpTo(index); err != nil {
		c.mu.Unlock()
		return err
	}
	c.playRequested = true
	c.loadCurrentLocked()
	c.emitTrackLocked(prev, prevIdx)
	c.syncStateLocked()
	c.mu.Unlock()
	return nil
}

// --- Transport operations ---

// Play sets play intent. If the session is not ready yet, the play is
// deferred until MetadataReady fires, never dropped.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playRequested = true
	switch {
	case c.ready:
		c.engine.Play()
	case c.loadedTrackID == "" && !c.loading && c.queue.Current() != nil:
		// Nothing bound yet (e.g. after a resolution failure): retry.
		c.loadCurrentLocked()
	}
	c.syncStateLocked()
}

// Pause clears play intent.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playRequested = false
	c.engine.Pause()
	c.syncStateLocked()
}

// Toggle toggles between play and pause.
func (c *Controller) Toggle() {
	c.mu.Lock()
	requested := c.playRequested
	c.mu.Unlock()
	if requested {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek jumps to the target position, clamped to the track bounds. The
// position is written optimistically; the engine's next position update is
// authoritative. Seeks are ignored until the session is ready: before
// MetadataReady the duration is unknown, so the upper clamp cannot hold.
func (c *Controller) Seek(target time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	if target < 0 {
		target = 0
	}
	if c.duration > 0 && target > c.duration {
		target = c.duration
	}
	c.position = target
	c.engine.Seek(target)
	c.emitPositionLocked()
}

// SetVolume sets the volume in [0, 1]. Zero surfaces as muted.
func (c *Controller) SetVolume(level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	c.volume = level
	c.muted = level == 0
	c.engine.SetVolume(level)
	c.emitVolumeLocked()
}

// ToggleMute mutes, caching the current volume, or unmutes, restoring the
// cached pre-mute volume (1 if never set).
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.muted {
		restore := c.mutedVolume
		if restore == 0 {
			restore = 1
		}
		c.volume = restore
		c.muted = false
		c.engine.SetVolume(restore)
	} else {
		if c.volume > 0 {
			c.mutedVolume = c.volume
		}
		c.volume = 0
		c.muted = true
		c.engine.SetVolume(0)
	}
	c.emitVolumeLocked()
}

// --- Mode operations ---

// ToggleShuffle toggles shuffle and returns the new state.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	on := c.queue.ToggleShuffle()
	c.emitQueueLocked()
	c.emitModeLocked()
	return on
}

// SetRepeatMode sets the repeat mode.
func (c *Controller) SetRepeatMode(mode queue.RepeatMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.SetRepeatMode(mode)
	c.emitModeLocked()
}

// CycleRepeat advances the repeat mode and returns the new one.
func (c *Controller) CycleRepeat() queue.RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	mode := c.queue.CycleRepeat()
	c.emitModeLocked()
	return mode
}

// --- Queries ---

// State returns the user-visible transport state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// IsPlaying returns true if play intent is set.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked() == StatePlaying
}

// Position returns the last known playback position.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Duration returns the loaded track's duration (zero before readiness).
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Volume returns the current volume level.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Muted returns whether the output is muted.
func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// CurrentTrack returns the queue's current track, or nil.
func (c *Controller) CurrentTrack() *catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Current()
}

// QueueTracks returns a copy of the queue order.
func (c *Controller) QueueTracks() []catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Tracks()
}

// QueueIndex returns the current queue position (-1 if empty).
func (c *Controller) QueueIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Position()
}

// QueueLen returns the number of queued tracks.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// RepeatMode returns the current repeat mode.
func (c *Controller) RepeatMode() queue.RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.RepeatMode()
}

// Shuffled returns whether the queue is shuffled.
func (c *Controller) Shuffled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Shuffled()
}

// --- Engine event handling ---

func (c *Controller) handleEvent(ev audio.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := ev.(type) {
	case audio.MetadataReady:
		c.duration = ev.Duration
		c.ready = true
		if c.playRequested {
			c.engine.Play()
		}
		c.emitPositionLocked()
		c.syncStateLocked()

	case audio.PositionUpdate:
		c.position = ev.Position
		c.emitPositionLocked()

	case audio.Finished:
		if c.loadedTrackID == "" {
			// Late notification from a superseded load.
			return
		}
		c.advanceLocked()

	case audio.EngineError:
		c.playRequested = false
		track := c.queue.Current()
		c.emitErrorLocked(PlaybackError, track, ev.Err)
		c.syncStateLocked()
	}
}

// advanceLocked implements "go to next": repeat table at queue end, load on
// success, stop intent otherwise.
func (c *Controller) advanceLocked() {
	if c.queue.IsEmpty() {
		return
	}
	prev, prevIdx := c.currentLocked()
	if !c.queue.Advance() {
		c.playRequested = false
		c.engine.Pause()
		c.syncStateLocked()
		return
	}
	c.playRequested = true
	c.loadCurrentLocked()
	c.emitTrackLocked(prev, prevIdx)
	c.syncStateLocked()
}

// --- Loading ---

// loadCurrentLocked starts an asynchronous resolve-and-bind for the queue's
// current track. The session is marked pending until MetadataReady.
func (c *Controller) loadCurrentLocked() {
	cur := c.queue.Current()
	if cur == nil {
		return
	}

	c.loadSeq++
	seq := c.loadSeq
	c.loading = true
	c.loadedTrackID = ""
	c.ready = false
	c.position = 0
	c.duration = 0

	track := *cur
	ctx := c.ctx
	go c.load(ctx, seq, track)
}

func (c *Controller) load(ctx context.Context, seq uint64, track catalog.Track) {
	url, err := c.resolver.StreamURL(ctx, track, c.quality)

	c.mu.Lock()
	if seq != c.loadSeq || c.closed {
		// A newer selection superseded this load; drop the result.
		c.mu.Unlock()
		return
	}
	c.loading = false

	cur := c.queue.Current()
	if cur == nil || cur.ID != track.ID {
		c.mu.Unlock()
		return
	}

	if err != nil {
		// Unplayable: keep the queue position, never auto-skip.
		c.playRequested = false
		c.emitErrorLocked(ResolutionFailure, &track, err)
		c.syncStateLocked()
		c.mu.Unlock()
		return
	}

	if err := c.engine.Bind(url); err != nil {
		c.playRequested = false
		c.emitErrorLocked(PlaybackError, &track, err)
		c.syncStateLocked()
		c.mu.Unlock()
		return
	}
	c.loadedTrackID = track.ID
	history := c.history
	c.mu.Unlock()

	if history != nil {
		history.RecordPlay(track)
	}
}

// clearSessionLocked resets the session after the queue became empty.
func (c *Controller) clearSessionLocked() {
	c.loadSeq++
	c.loading = false
	c.loadedTrackID = ""
	c.ready = false
	c.playRequested = false
	c.position = 0
	c.duration = 0
	c.engine.Pause()
}

func (c *Controller) stateLocked() State {
	if c.loadedTrackID == "" && !c.loading {
		return StateStopped
	}
	if c.playRequested {
		return StatePlaying
	}
	return StatePaused
}

func (c *Controller) currentLocked() (*catalog.Track, int) {
	return c.queue.Current(), c.queue.Position()
}

// --- Event emission (all sends are non-blocking) ---

func (c *Controller) forEachSub(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

func (c *Controller) syncStateLocked() {
	state := c.stateLocked()
	if state == c.lastState {
		return
	}
	e := StateChange{Previous: c.lastState, Current: state}
	c.lastState = state
	c.forEachSub(func(s *Subscription) { s.sendState(e) })
}

func (c *Controller) emitTrackLocked(prev *catalog.Track, prevIdx int) {
	cur, idx := c.currentLocked()
	if prev == nil && cur == nil {
		return
	}
	if prev != nil && cur != nil && prev.ID == cur.ID && prevIdx == idx {
		return
	}
	e := TrackChange{Previous: prev, Current: cur, PreviousIndex: prevIdx, Index: idx}
	c.forEachSub(func(s *Subscription) { s.sendTrack(e) })
}

func (c *Controller) emitPositionLocked() {
	e := PositionChange{Position: c.position, Duration: c.duration}
	c.forEachSub(func(s *Subscription) { s.sendPosition(e) })
}

func (c *Controller) emitQueueLocked() {
	e := QueueChange{Tracks: c.queue.Tracks(), Index: c.queue.Position()}
	c.forEachSub(func(s *Subscription) { s.sendQueue(e) })
}

func (c *Controller) emitModeLocked() {
	e := ModeChange{RepeatMode: c.queue.RepeatMode(), Shuffled: c.queue.Shuffled()}
	c.forEachSub(func(s *Subscription) { s.sendMode(e) })
}

func (c *Controller) emitVolumeLocked() {
	e := VolumeChange{Volume: c.volume, Muted: c.muted}
	c.forEachSub(func(s *Subscription) { s.sendVolume(e) })
}

func (c *Controller) emitErrorLocked(kind ErrorKind, track *catalog.Track, err error) {
	e := ErrorEvent{Kind: kind, Track: track, Err: err}
	c.forEachSub(func(s *Subscription) { s.sendError(e) })
}
