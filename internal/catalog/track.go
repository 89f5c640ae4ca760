// Package catalog provides the track model and the remote catalog API client.
package catalog

import "time"

// Quality selects among multiple encodings of a stream or image,
// from lowest to highest bitrate/resolution.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityVeryHigh
	QualityHighest
)

// String returns the quality name as used in config files.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityVeryHigh:
		return "very-high"
	case QualityHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// ParseQuality maps a config string to a Quality tier.
// Unknown values default to QualityHigh.
func ParseQuality(s string) Quality {
	switch s {
	case "low":
		return QualityLow
	case "medium":
		return QualityMedium
	case "high":
		return QualityHigh
	case "very-high":
		return QualityVeryHigh
	case "highest":
		return QualityHighest
	default:
		return QualityHigh
	}
}

// Candidate is one encoding of a stream or image. URL may be empty when the
// catalog record carries a slot for the tier but no address.
type Candidate struct {
	Quality Quality
	URL     string
}

// Track is a normalized playable item from the catalog.
//
// ID is the sole equality key: two tracks with the same ID are the same
// track regardless of drift in the other fields.
type Track struct {
	ID       string
	Title    string
	Artists  string        // display string, already joined
	Album    string
	AlbumID  string        // empty when the record carries no album reference
	Duration time.Duration // zero if unknown

	// Candidates ordered by ascending quality.
	Images  []Candidate
	Streams []Candidate
}

// SameTrack reports whether both tracks refer to the same catalog item.
func (t Track) SameTrack(other Track) bool {
	return t.ID == other.ID
}
