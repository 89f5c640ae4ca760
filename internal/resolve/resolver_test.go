package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/raaga-player/raaga/internal/catalog"
)

type mockLookup struct {
	track *catalog.Track
	err   error
	calls int
}

func (m *mockLookup) TrackDetails(_ context.Context, _ string) (*catalog.Track, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.track, nil
}

func candidates(urls ...string) []catalog.Candidate {
	cands := make([]catalog.Candidate, len(urls))
	for i, u := range urls {
		cands[i] = catalog.Candidate{Quality: catalog.Quality(i), URL: u}
	}
	return cands
}

func TestPickCandidate(t *testing.T) {
	tests := []struct {
		name     string
		urls     []string
		quality  catalog.Quality
		expected string
	}{
		{
			name:     "exact tier",
			urls:     []string{"low.mp3", "med.mp3", "high.mp3"},
			quality:  catalog.QualityMedium,
			expected: "med.mp3",
		},
		{
			name:     "missing tier falls down",
			urls:     []string{"low.mp3", "", "high.mp3"},
			quality:  catalog.QualityMedium,
			expected: "low.mp3",
		},
		{
			name:     "nothing below falls up",
			urls:     []string{"", "a.mp3", "b.mp3"},
			quality:  catalog.QualityMedium,
			expected: "a.mp3",
		},
		{
			name:     "quality beyond list clamps to last",
			urls:     []string{"low.mp3", "high.mp3"},
			quality:  catalog.QualityHighest,
			expected: "high.mp3",
		},
		{
			name:     "all empty",
			urls:     []string{"", "", ""},
			quality:  catalog.QualityHigh,
			expected: "",
		},
		{
			name:     "no candidates",
			urls:     nil,
			quality:  catalog.QualityHigh,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickCandidate(candidates(tt.urls...), tt.quality)
			if got != tt.expected {
				t.Errorf("pickCandidate() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStreamURLDirect(t *testing.T) {
	r := New(nil)
	track := catalog.Track{ID: "t1", Streams: candidates("low.mp3", "med.mp3", "high.mp3")}

	got, err := r.StreamURL(context.Background(), track, catalog.QualityHigh)
	if err != nil {
		t.Fatalf("StreamURL failed: %v", err)
	}
	if got != "high.mp3" {
		t.Errorf("StreamURL() = %q, want %q", got, "high.mp3")
	}
}

func TestStreamURLNoCandidates(t *testing.T) {
	r := New(nil)
	track := catalog.Track{ID: "t1", Streams: candidates("", "", "")}

	_, err := r.StreamURL(context.Background(), track, catalog.QualityHigh)
	if !errors.Is(err, ErrNoStream) {
		t.Errorf("StreamURL() error = %v, want ErrNoStream", err)
	}
}

func TestStreamURLSecondaryLookup(t *testing.T) {
	lookup := &mockLookup{
		track: &catalog.Track{ID: "t1", Streams: candidates("", "", "cdn.example.com/real.mp3")},
	}
	r := New(lookup)
	track := catalog.Track{
		ID:      "t1",
		Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/bar"}},
	}

	got, err := r.StreamURL(context.Background(), track, catalog.QualityHighest)
	if err != nil {
		t.Fatalf("StreamURL failed: %v", err)
	}
	if got != "cdn.example.com/real.mp3" {
		t.Errorf("StreamURL() = %q, want the looked-up stream", got)
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestStreamURLSecondaryLookupStillPage(t *testing.T) {
	lookup := &mockLookup{
		track: &catalog.Track{
			ID:      "t1",
			Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/baz"}},
		},
	}
	r := New(lookup)
	track := catalog.Track{
		ID:      "t1",
		Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/bar"}},
	}

	_, err := r.StreamURL(context.Background(), track, catalog.QualityHighest)
	if !errors.Is(err, ErrNoStream) {
		t.Errorf("StreamURL() error = %v, want ErrNoStream", err)
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want exactly 1 (never retried)", lookup.calls)
	}
}

func TestStreamURLSecondaryLookupError(t *testing.T) {
	lookupErr := errors.New("network down")
	lookup := &mockLookup{err: lookupErr}
	r := New(lookup)
	track := catalog.Track{
		ID:      "t1",
		Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/bar"}},
	}

	_, err := r.StreamURL(context.Background(), track, catalog.QualityHighest)
	if !errors.Is(err, lookupErr) {
		t.Errorf("StreamURL() error = %v, want wrapped lookup error", err)
	}
}

func TestStreamURLPageWithoutLookup(t *testing.T) {
	r := New(nil)
	track := catalog.Track{
		ID:      "t1",
		Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/bar"}},
	}

	_, err := r.StreamURL(context.Background(), track, catalog.QualityHighest)
	if !errors.Is(err, ErrNoStream) {
		t.Errorf("StreamURL() error = %v, want ErrNoStream", err)
	}
}

func TestStreamURLCustomHeuristic(t *testing.T) {
	r := New(nil, WithPageURLHeuristic(func(string) bool { return false }))
	track := catalog.Track{
		ID:      "t1",
		Streams: []catalog.Candidate{{Quality: catalog.QualityHighest, URL: "https://www.jiosaavn.com/song/foo/bar"}},
	}

	got, err := r.StreamURL(context.Background(), track, catalog.QualityHighest)
	if err != nil {
		t.Fatalf("StreamURL failed: %v", err)
	}
	if got != "https://www.jiosaavn.com/song/foo/bar" {
		t.Errorf("StreamURL() = %q, heuristic override ignored", got)
	}
}

func TestImageURL(t *testing.T) {
	r := New(nil)
	track := catalog.Track{Images: candidates("50x50.jpg", "150x150.jpg", "500x500.jpg")}

	if got := r.ImageURL(track, catalog.QualityHigh); got != "500x500.jpg" {
		t.Errorf("ImageURL() = %q, want %q", got, "500x500.jpg")
	}
	if got := r.ImageURL(catalog.Track{}, catalog.QualityHigh); got != "" {
		t.Errorf("ImageURL() on artless track = %q, want empty", got)
	}
}

func TestIsCatalogPageURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://cdn.example.com/stream/track.mp3", false},
		{"https://cdn.example.com/stream/track.m4a", false},
		{"https://cdn.example.com/aac/stream?id=123", false},
		{"https://www.jiosaavn.com/song/title/token", true},
		{"https://example.com/song/title", true},
		{"https://example.com/album/title", true},
		{"https://www.jiosaavn.com/anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsCatalogPageURL(tt.url); got != tt.expected {
				t.Errorf("IsCatalogPageURL(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}
