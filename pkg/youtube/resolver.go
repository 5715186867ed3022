package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrChannelIDNotFound is returned when none of the extractors match the
// handle page. Transport failures are reported as-is instead.
var ErrChannelIDNotFound = errors.New("could not resolve YouTube channelId from handle page")

const videosFeedURL = "https://www.youtube.com/feeds/videos.xml"

// PageFetcher retrieves raw page bytes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolver turns a channel handle URL (https://www.youtube.com/@name) into the
// channel's UC… identifier by scraping the handle page.
type Resolver struct {
	fetcher    PageFetcher
	extractors []Extractor
}

// NewResolver builds a resolver. With no extractors, DefaultExtractors is used.
func NewResolver(fetcher PageFetcher, extractors ...Extractor) *Resolver {
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	return &Resolver{fetcher: fetcher, extractors: extractors}
}

// Resolve fetches handleURL and returns the first channel ID any extractor finds.
func (r *Resolver) Resolve(ctx context.Context, handleURL string) (string, error) {
	if r == nil || r.fetcher == nil {
		return "", fmt.Errorf("youtube resolver is not initialized")
	}

	raw, err := r.fetcher.Fetch(ctx, handleURL)
	if err != nil {
		return "", err
	}

	id, ok := r.ExtractChannelID(strings.ToValidUTF8(string(raw), ""))
	if !ok {
		return "", ErrChannelIDNotFound
	}
	return id, nil
}

// ExtractChannelID runs the extractors over page in order.
func (r *Resolver) ExtractChannelID(page string) (string, bool) {
	for _, ex := range r.extractors {
		if id, ok := ex.Extract(page); ok {
			return id, true
		}
	}
	return "", false
}

// FeedURL returns the public Atom feed URL for a channel.
func FeedURL(channelID string) string {
	q := url.Values{}
	q.Set("channel_id", channelID)
	return videosFeedURL + "?" + q.Encode()
}
