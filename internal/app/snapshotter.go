package app

import (
	"context"
	"fmt"

	"github.com/all-man/site-feeds/internal/config"
	"github.com/all-man/site-feeds/internal/logger"
	"github.com/all-man/site-feeds/internal/snapshot"
	"github.com/all-man/site-feeds/pkg/feeds"
	"github.com/all-man/site-feeds/pkg/httpclient"
	"github.com/all-man/site-feeds/pkg/publishers"
	"github.com/all-man/site-feeds/pkg/youtube"
)

// Snapshotter is the one-shot runtime: it captures both feeds, writes the
// snapshot file and announces it to the configured publishers.
type Snapshotter struct {
	cfg     *config.Config
	service *snapshot.Service
	fanout  *publishers.Fanout
	log     logger.Logger
}

// NewSnapshotter wires the fetcher, resolver, snapshot service and publishers from cfg.
func NewSnapshotter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Snapshotter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := httpclient.NewRestyClient(cfg.FetchTimeout, cfg.UserAgent)
	fetcher := feeds.NewFetcher(client, cfg.UserAgent)

	extractors := youtube.DefaultExtractors()
	if cfg.YouTubeMetaFallback {
		extractors = append(extractors, youtube.MetaExtractor{})
	}
	resolver := youtube.NewResolver(fetcher, extractors...)

	service := snapshot.NewService(fetcher, resolver, snapshot.Sources{
		NoteRSSURL:       cfg.NoteRSSURL,
		YouTubeHandleURL: cfg.YouTubeHandleURL,
		NoteLimit:        cfg.NoteLimit,
		YouTubeLimit:     cfg.YouTubeLimit,
	}, log)

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	return &Snapshotter{
		cfg:     cfg,
		service: service,
		fanout:  fanout,
		log:     log,
	}, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		log.InfoObj("no publishers file configured", "publishers_meta", map[string]any{"count": 0})
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run performs a single snapshot. Only a failed write is returned; publisher
// failures are logged because the file is already in place.
func (s *Snapshotter) Run(ctx context.Context) error {
	if s == nil || s.service == nil {
		return fmt.Errorf("snapshotter is not initialized")
	}
	defer s.closeFanout()

	snap, err := s.service.Run(ctx, s.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if s.fanout.Size() == 0 {
		return nil
	}
	delivered, err := s.fanout.Publish(ctx, publishers.NewEvent(snap, s.cfg.OutputPath))
	if err != nil {
		s.log.WarnObj("snapshot event delivery incomplete", "publish_result", map[string]any{
			"delivered": delivered,
			"total":     s.fanout.Size(),
			"error":     err.Error(),
		})
		return nil
	}
	s.log.InfoObj("snapshot event delivered", "publish_result", map[string]any{
		"delivered": delivered,
	})
	return nil
}

func (s *Snapshotter) closeFanout() {
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publishers close failed", "error", err)
	}
}
