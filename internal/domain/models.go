package domain

// Domain contains the snapshot document shared by the pipeline stages.

// FeedItem is a single blog post taken from an RSS channel. Fields are the
// trimmed source text; dates are not parsed.
type FeedItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}

// FeedEntry is a single video taken from a YouTube Atom feed.
type FeedEntry struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
	Thumb string `json:"thumb"`
}

// Feeds holds the per-source results. An *Error field is set only when the
// matching source failed, and the list is left empty in that case.
type Feeds struct {
	Note             []FeedItem  `json:"note"`
	YouTube          []FeedEntry `json:"youtube"`
	NoteError        string      `json:"note_error,omitempty"`
	YouTubeChannelID string      `json:"youtube_channel_id,omitempty"`
	YouTubeError     string      `json:"youtube_error,omitempty"`
}

// Snapshot is the document written to the output file on every run.
type Snapshot struct {
	GeneratedAt int64 `json:"generated_at"`
	Feeds       Feeds `json:"feeds"`
}

// NewSnapshot returns a snapshot stamped with the given unix time and empty
// (non-nil) feed lists, so they serialize as [] rather than null.
func NewSnapshot(generatedAt int64) Snapshot {
	return Snapshot{
		GeneratedAt: generatedAt,
		Feeds: Feeds{
			Note:    []FeedItem{},
			YouTube: []FeedEntry{},
		},
	}
}
