package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the catalog has no record for the request.
var ErrNotFound = errors.New("catalog: not found")

const (
	// DefaultBaseURL is the primary public API endpoint.
	DefaultBaseURL = "https://saavn.dev"

	userAgent      = "raaga-music-player/1.0 (https://github.com/raaga-player/raaga)"
	defaultTimeout = 15 * time.Second
	searchLimit    = 20
)

// DefaultFallbackURLs are tried in order when the primary endpoint fails.
// Community mirrors of the same API come and go, so the list is configurable.
var DefaultFallbackURLs = []string{
	"https://jiosaavn-api.vercel.app",
}

// Client is a catalog API client. All requests walk the endpoint list in
// order and return the first successful response.
type Client struct {
	httpClient *http.Client
	endpoints  []string
}

// NewClient creates a catalog client. An empty baseURL selects the default
// endpoint; fallbacks may be nil.
func NewClient(baseURL string, fallbacks []string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoints := make([]string, 0, 1+len(fallbacks))
	endpoints = append(endpoints, strings.TrimSuffix(baseURL, "/"))
	for _, u := range fallbacks {
		if u = strings.TrimSuffix(u, "/"); u != "" {
			endpoints = append(endpoints, u)
		}
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoints:  endpoints,
	}
}

// SearchTracks returns the first page of track results for the query.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]Track, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("limit", fmt.Sprint(searchLimit))

	var result struct {
		Data struct {
			Results []apiTrack `json:"results"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/search/songs", params, &result); err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	return toTracks(result.Data.Results), nil
}

// TrackDetails fetches the full record for one track, including stream
// candidates. Used by the resolver's secondary lookup.
func (c *Client) TrackDetails(ctx context.Context, id string) (*Track, error) {
	var result struct {
		Data []apiTrack `json:"data"`
	}
	if err := c.get(ctx, "/api/songs/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, fmt.Errorf("track details: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, ErrNotFound
	}
	t := result.Data[0].toTrack()
	return &t, nil
}

// AlbumTracks returns all tracks of an album.
func (c *Client) AlbumTracks(ctx context.Context, id string) ([]Track, error) {
	params := url.Values{}
	params.Set("id", id)

	var result struct {
		Data struct {
			Songs []apiTrack `json:"songs"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/albums", params, &result); err != nil {
		return nil, fmt.Errorf("album tracks: %w", err)
	}
	return toTracks(result.Data.Songs), nil
}

// Suggestions returns tracks related to the given track, for the browse view.
func (c *Client) Suggestions(ctx context.Context, id string) ([]Track, error) {
	var result struct {
		Data []apiTrack `json:"data"`
	}
	path := "/api/songs/" + url.PathEscape(id) + "/suggestions"
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return toTracks(result.Data), nil
}

// get performs a GET against each endpoint in order until one succeeds.
// A 404 is final: the record does not exist, no point asking a mirror.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error
	for _, endpoint := range c.endpoints {
		reqURL := endpoint + path
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				lastErr = fmt.Errorf("decode response: %w", err)
				continue
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound
		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status: %s", resp.Status)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no endpoints configured")
	}
	return lastErr
}
