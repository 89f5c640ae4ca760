package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// apiTrack matches the wire format of the catalog API. The API has shipped
// several shapes over time (primaryArtists string vs. artists.primary list,
// downloadUrl objects with "url" vs. "link"), so decoding is tolerant.
type apiTrack struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Title          string      `json:"title"`
	PrimaryArtists string      `json:"primaryArtists"`
	Artists        *apiArtists `json:"artists"`
	Album          *apiNamed   `json:"album"`
	Duration       flexInt     `json:"duration"`
	PermaURL       string      `json:"url"`
	Image          candidates  `json:"image"`
	DownloadURL    candidates  `json:"downloadUrl"`
}

type apiArtists struct {
	Primary []apiNamed `json:"primary"`
}

type apiNamed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// apiCandidate is one quality-tiered URL entry.
type apiCandidate struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Link    string `json:"link"`
}

func (c apiCandidate) address() string {
	if c.URL != "" {
		return c.URL
	}
	return c.Link
}

// candidates accepts either a plain URL string or an array of tiered entries.
type candidates []apiCandidate

func (c *candidates) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = candidates{{URL: single}}
		return nil
	}
	var list []apiCandidate
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = candidates(list)
	return nil
}

// flexInt accepts both numeric and quoted-number durations.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Malformed duration is not worth failing the whole record over.
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

func (t apiTrack) toTrack() Track {
	out := Track{
		ID:       t.ID,
		Title:    t.displayTitle(),
		Artists:  t.displayArtists(),
		Duration: time.Duration(t.Duration) * time.Second,
		Images:   tierCandidates(t.Image),
		Streams:  tierCandidates(t.DownloadURL),
	}
	if t.Album != nil {
		out.Album = t.Album.Name
		out.AlbumID = t.Album.ID
	}
	// Records without direct stream URLs still carry the catalog page URL.
	// Keep it as the only candidate; the resolver knows how to handle it.
	if len(out.Streams) == 0 && t.PermaURL != "" {
		out.Streams = []Candidate{{Quality: QualityHighest, URL: t.PermaURL}}
	}
	return out
}

func (t apiTrack) displayTitle() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Title
}

func (t apiTrack) displayArtists() string {
	if t.PrimaryArtists != "" {
		return t.PrimaryArtists
	}
	if t.Artists != nil && len(t.Artists.Primary) > 0 {
		names := make([]string, 0, len(t.Artists.Primary))
		for _, a := range t.Artists.Primary {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return "Unknown Artist"
}

// tierCandidates converts API entries to tiered candidates. The API returns
// entries in ascending quality order; the position is the tier.
func tierCandidates(entries []apiCandidate) []Candidate {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Candidate, len(entries))
	for i, e := range entries {
		tier := Quality(i)
		if tier > QualityHighest {
			tier = QualityHighest
		}
		out[i] = Candidate{Quality: tier, URL: e.address()}
	}
	return out
}

func toTracks(entries []apiTrack) []Track {
	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		tracks = append(tracks, e.toTrack())
	}
	return tracks
}
