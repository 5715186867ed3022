package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/all-man/site-feeds/pkg/feeds"
)

type stubFetcher struct {
	body []byte
	err  error
	url  string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.url = url
	return s.body, s.err
}

func TestResolverResolve(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "json channelId field",
			page: `<script>var ytInitialData = {"channelId":"UCabcdefghij1234567890","title":"x"};</script>`,
			want: "UCabcdefghij1234567890",
		},
		{
			name: "channel_id query parameter",
			page: `<link rel="alternate" href="https://www.youtube.com/feeds/videos.xml?channel_id=UC_x5XG1OV2P6uZZ5FSM9Ttw">`,
			want: "UC_x5XG1OV2P6uZZ5FSM9Ttw",
		},
		{
			name: "channel path segment",
			page: `<link rel="canonical" href="https://www.youtube.com/channel/UCjxf5PsgMyF_t1Az_6duZfg">`,
			want: "UCjxf5PsgMyF_t1Az_6duZfg",
		},
		{
			name: "json field wins over earlier path segment",
			page: `<a href="/channel/UCpathpathpathpathpath00"></a> {"channelId":"UCjsonjsonjsonjsonjson00"}`,
			want: "UCjsonjsonjsonjsonjson00",
		},
		{
			name: "query parameter wins over path segment",
			page: `/channel/UCpathpathpathpathpath00 channel_id=UCqueryqueryqueryquery00`,
			want: "UCqueryqueryqueryquery00",
		},
		{
			name: "first json match wins",
			page: `"channelId":"UCfirstfirstfirstfirst00" "channelId":"UCsecondsecondsecond0000"`,
			want: "UCfirstfirstfirstfirst00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{body: []byte(tt.page)}
			id, err := NewResolver(fetcher).Resolve(context.Background(), "https://www.youtube.com/@jazz-manbo")
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, "https://www.youtube.com/@jazz-manbo", fetcher.url)
		})
	}
}

func TestResolverNotFound(t *testing.T) {
	pages := []string{
		`<html><body>nothing here</body></html>`,
		`"channelId":"UCshort"`,
		`/channel/XXabcdefghij1234567890`,
		`<meta itemprop="channelId" content="UCabcdefghij1234567890">`,
	}
	for _, page := range pages {
		_, err := NewResolver(&stubFetcher{body: []byte(page)}).Resolve(context.Background(), "https://y/@h")
		require.ErrorIs(t, err, ErrChannelIDNotFound, page)
	}
}

func TestResolverInvalidUTF8IsIgnored(t *testing.T) {
	page := []byte("\xff\xfe junk \"channelId\":\"UCabcdefghij1234567890\" \xc3")
	id, err := NewResolver(&stubFetcher{body: page}).Resolve(context.Background(), "https://y/@h")
	require.NoError(t, err)
	assert.Equal(t, "UCabcdefghij1234567890", id)
}

func TestResolverPropagatesFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := NewResolver(&stubFetcher{err: cause}).Resolve(context.Background(), "https://y/@h")
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrChannelIDNotFound)
}

func TestResolverOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, feeds.DefaultUserAgent, r.Header.Get("User-Agent"))
		if r.URL.Path != "/@jazz-manbo" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html>{"channelId":"UCabcdefghij1234567890"}</html>`))
	}))
	defer srv.Close()

	resolver := NewResolver(feeds.NewFetcher(nil, ""))

	id, err := resolver.Resolve(context.Background(), srv.URL+"/@jazz-manbo")
	require.NoError(t, err)
	assert.Equal(t, "UCabcdefghij1234567890", id)

	_, err = resolver.Resolve(context.Background(), srv.URL+"/@missing")
	var statusErr *feeds.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.NotErrorIs(t, err, ErrChannelIDNotFound)
}

func TestMetaExtractor(t *testing.T) {
	page := `<html><head>
		<meta itemprop="name" content="jazz-manbo">
		<meta itemprop="identifier" content="UCabcdefghij1234567890">
	</head></html>`

	id, ok := MetaExtractor{}.Extract(page)
	require.True(t, ok)
	assert.Equal(t, "UCabcdefghij1234567890", id)

	_, ok = MetaExtractor{}.Extract(`<meta itemprop="channelId" content="not-a-channel">`)
	assert.False(t, ok)

	resolver := NewResolver(&stubFetcher{body: []byte(page)}, append(DefaultExtractors(), MetaExtractor{})...)
	id, err := resolver.Resolve(context.Background(), "https://y/@h")
	require.NoError(t, err)
	assert.Equal(t, "UCabcdefghij1234567890", id)
}

func TestFeedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/feeds/videos.xml?channel_id=UCabcdefghij1234567890",
		FeedURL("UCabcdefghij1234567890"))
}
