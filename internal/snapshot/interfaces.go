package snapshot

import "context"

// FeedFetcher retrieves a raw feed document.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ChannelResolver maps a YouTube handle URL to its channel ID.
type ChannelResolver interface {
	Resolve(ctx context.Context, handleURL string) (string, error)
}
