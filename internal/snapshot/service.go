package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/all-man/site-feeds/internal/domain"
	"github.com/all-man/site-feeds/internal/logger"
	"github.com/all-man/site-feeds/pkg/feeds"
	"github.com/all-man/site-feeds/pkg/youtube"
)

// Sources describes what a snapshot is built from.
type Sources struct {
	NoteRSSURL       string
	YouTubeHandleURL string
	NoteLimit        int
	YouTubeLimit     int
}

// Service builds feed snapshots. Each source is captured on its own: a failure
// is recorded in the snapshot and never stops the other source.
type Service struct {
	fetcher  FeedFetcher
	resolver ChannelResolver
	sources  Sources
	log      logger.Logger
	now      func() time.Time
}

// NewService wires a snapshot service.
func NewService(fetcher FeedFetcher, resolver ChannelResolver, sources Sources, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sources.NoteLimit <= 0 {
		sources.NoteLimit = feeds.DefaultLimit
	}
	if sources.YouTubeLimit <= 0 {
		sources.YouTubeLimit = feeds.DefaultLimit
	}
	return &Service{
		fetcher:  fetcher,
		resolver: resolver,
		sources:  sources,
		log:      log,
		now:      time.Now,
	}
}

// Build captures both sources in sequence and returns the assembled snapshot.
func (s *Service) Build(ctx context.Context) domain.Snapshot {
	snap := domain.NewSnapshot(s.now().Unix())

	if items, err := s.captureNote(ctx); err != nil {
		snap.Feeds.NoteError = errorText(err)
		s.log.ErrorObj("note capture failed", "note_error", map[string]any{
			"url":   s.sources.NoteRSSURL,
			"error": err.Error(),
		})
	} else {
		snap.Feeds.Note = items
		s.log.InfoObj("note capture completed", "note_result", map[string]any{
			"url":   s.sources.NoteRSSURL,
			"items": len(items),
		})
	}

	if entries, channelID, err := s.captureYouTube(ctx); err != nil {
		snap.Feeds.YouTubeError = errorText(err)
		s.log.ErrorObj("youtube capture failed", "youtube_error", map[string]any{
			"handle_url": s.sources.YouTubeHandleURL,
			"error":      err.Error(),
		})
	} else {
		snap.Feeds.YouTube = entries
		snap.Feeds.YouTubeChannelID = channelID
		s.log.InfoObj("youtube capture completed", "youtube_result", map[string]any{
			"channel_id": channelID,
			"entries":    len(entries),
		})
	}

	return snap
}

// Run builds a snapshot and writes it to path. Only the write can fail the run.
func (s *Service) Run(ctx context.Context, path string) (domain.Snapshot, error) {
	snap := s.Build(ctx)
	if err := WriteFile(path, snap); err != nil {
		return snap, err
	}
	s.log.InfoObj("snapshot written", "snapshot_meta", map[string]any{
		"path":          path,
		"generated_at":  snap.GeneratedAt,
		"note_count":    len(snap.Feeds.Note),
		"youtube_count": len(snap.Feeds.YouTube),
	})
	return snap, nil
}

func (s *Service) captureNote(ctx context.Context) ([]domain.FeedItem, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("feed fetcher is not configured")
	}
	raw, err := s.fetcher.Fetch(ctx, s.sources.NoteRSSURL)
	if err != nil {
		return nil, err
	}
	return feeds.ParseRSS(raw, s.sources.NoteLimit)
}

func (s *Service) captureYouTube(ctx context.Context) ([]domain.FeedEntry, string, error) {
	if s.fetcher == nil || s.resolver == nil {
		return nil, "", fmt.Errorf("youtube capture is not configured")
	}
	channelID, err := s.resolver.Resolve(ctx, s.sources.YouTubeHandleURL)
	if err != nil {
		return nil, "", err
	}
	raw, err := s.fetcher.Fetch(ctx, youtube.FeedURL(channelID))
	if err != nil {
		return nil, "", err
	}
	entries, err := feeds.ParseAtom(raw, s.sources.YouTubeLimit)
	if err != nil {
		return nil, "", err
	}
	return entries, channelID, nil
}

// errorText keeps the error key present even for errors with an empty message.
func errorText(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%T", err)
}
