// Package resolve maps a track's quality-tiered candidates to one usable URL.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/raaga-player/raaga/internal/catalog"
)

// ErrNoStream is returned when a track has no playable stream URL at all.
// Callers must treat it as "unplayable, do not attempt load".
var ErrNoStream = errors.New("resolve: no stream url available")

// Lookup is the catalog surface the resolver needs for its secondary lookup.
type Lookup interface {
	TrackDetails(ctx context.Context, id string) (*catalog.Track, error)
}

// Resolver selects stream and image URLs for tracks.
type Resolver struct {
	lookup    Lookup
	isPageURL func(string) bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPageURLHeuristic replaces the predicate that recognizes catalog
// webpage URLs. The detection is a policy knob, not load-bearing.
func WithPageURLHeuristic(fn func(string) bool) Option {
	return func(r *Resolver) { r.isPageURL = fn }
}

// New creates a Resolver. lookup may be nil, in which case the secondary
// lookup path is disabled and page URLs resolve to ErrNoStream.
func New(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:    lookup,
		isPageURL: IsCatalogPageURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StreamURL returns the best available stream URL for the requested quality.
//
// Selection: the candidate at the requested tier, else the highest available
// tier at or below it, else any candidate scanning from highest to lowest.
// If the selected URL is a catalog webpage rather than a direct stream, one
// secondary TrackDetails lookup is made to obtain a real stream URL; the
// lookup never repeats, so a broken catalog response cannot cause a retry
// loop.
func (r *Resolver) StreamURL(ctx context.Context, track catalog.Track, quality catalog.Quality) (string, error) {
	selected := pickCandidate(track.Streams, quality)
	if selected == "" {
		return "", ErrNoStream
	}
	if !r.isPageURL(selected) {
		return selected, nil
	}

	// The record only carried a webpage URL. Ask the catalog once for the
	// full record and retry selection against the fresh candidates.
	if r.lookup == nil {
		return "", ErrNoStream
	}
	fresh, err := r.lookup.TrackDetails(ctx, track.ID)
	if err != nil {
		return "", fmt.Errorf("secondary lookup: %w", err)
	}
	selected = pickCandidate(fresh.Streams, quality)
	if selected == "" || r.isPageURL(selected) {
		return "", ErrNoStream
	}
	return selected, nil
}

// ImageURL returns the best artwork URL for the requested quality, or ""
// when the track has no artwork. Images have no secondary lookup.
func (r *Resolver) ImageURL(track catalog.Track, quality catalog.Quality) string {
	return pickCandidate(track.Images, quality)
}

// pickCandidate walks the tier list: exact index, then downward from it,
// then any candidate from highest to lowest.
func pickCandidate(cands []catalog.Candidate, quality catalog.Quality) string {
	if len(cands) == 0 {
		return ""
	}

	idx := int(quality)
	if idx >= len(cands) {
		idx = len(cands) - 1
	}
	for i := idx; i >= 0; i-- {
		if cands[i].URL != "" {
			return cands[i].URL
		}
	}
	for i := len(cands) - 1; i > idx; i-- {
		if cands[i].URL != "" {
			return cands[i].URL
		}
	}
	return ""
}

// mediaExtensions are path suffixes of direct stream files.
var mediaExtensions = map[string]struct{}{
	".mp3": {}, ".mp4": {}, ".m4a": {}, ".aac": {},
	".ogg": {}, ".opus": {}, ".flac": {}, ".wav": {},
}

// IsCatalogPageURL is the default webpage heuristic: a URL whose path has a
// known media-file extension is a stream; a URL shaped like the catalog's
// song/album pages is a webpage. Anything else is assumed to be a stream,
// since CDN URLs often carry no extension.
func IsCatalogPageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if _, ok := mediaExtensions[strings.ToLower(path.Ext(u.Path))]; ok {
		return false
	}
	p := u.Path
	return strings.HasPrefix(p, "/song/") || strings.HasPrefix(p, "/album/") ||
		strings.Contains(u.Host, "jiosaavn.com")
}
