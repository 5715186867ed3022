package publishers

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/all-man/site-feeds/internal/domain"
)

var eventJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// EventTypeSnapshotWritten marks an event emitted after the output file was replaced.
const EventTypeSnapshotWritten = "snapshot.written"

// Snapshot outcome reported in Event.Status and as a message attribute.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Event summarizes a written snapshot for downstream consumers. It carries
// counts and errors only; consumers read the items from the file itself.
type Event struct {
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	GeneratedAt      int64     `json:"generated_at"`
	OutputPath       string    `json:"output_path"`
	NoteCount        int       `json:"note_count"`
	YouTubeCount     int       `json:"youtube_count"`
	YouTubeChannelID string    `json:"youtube_channel_id,omitempty"`
	NoteError        string    `json:"note_error,omitempty"`
	YouTubeError     string    `json:"youtube_error,omitempty"`
	WrittenAt        time.Time `json:"written_at"`
}

// NewEvent constructs an Event for a snapshot written to outputPath.
func NewEvent(snap domain.Snapshot, outputPath string) Event {
	return Event{
		Type:             EventTypeSnapshotWritten,
		Status:           snapshotStatus(snap.Feeds),
		GeneratedAt:      snap.GeneratedAt,
		OutputPath:       outputPath,
		NoteCount:        len(snap.Feeds.Note),
		YouTubeCount:     len(snap.Feeds.YouTube),
		YouTubeChannelID: snap.Feeds.YouTubeChannelID,
		NoteError:        snap.Feeds.NoteError,
		YouTubeError:     snap.Feeds.YouTubeError,
		WrittenAt:        time.Now().UTC(),
	}
}

func snapshotStatus(f domain.Feeds) string {
	failed := 0
	if f.NoteError != "" {
		failed++
	}
	if f.YouTubeError != "" {
		failed++
	}
	switch failed {
	case 0:
		return StatusOK
	case 1:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// Marshal encodes the event as the JSON message body used by every sink.
func (e Event) Marshal() ([]byte, error) {
	return eventJSON.Marshal(e)
}
