package publishers

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSubPublisherPublishes(t *testing.T) {
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	admin, err := pubsub.NewClient(ctx, "test-project")
	require.NoError(t, err)
	defer admin.Close()
	_, err = admin.CreateTopic(ctx, "feeds")
	require.NoError(t, err)

	pub, err := newPubSubPublisher(ctx, PublisherConfig{
		ID:     "ps",
		Type:   TypePubSub,
		PubSub: &PubSubPublisherConfig{ProjectID: "test-project", Topic: "feeds"},
	}, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, pub.(*pubsubPublisher).Close()) }()

	require.NoError(t, pub.Publish(ctx, Event{Type: EventTypeSnapshotWritten, Status: StatusOK, YouTubeCount: 8}))

	msgs := server.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, StatusOK, msgs[0].Attributes["status"])
	assert.Contains(t, string(msgs[0].Data), `"youtube_count":8`)
}

func TestPubSubPublisherMissingTopic(t *testing.T) {
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	pub, err := newPubSubPublisher(ctx, PublisherConfig{
		ID:     "ps",
		Type:   TypePubSub,
		PubSub: &PubSubPublisherConfig{ProjectID: "test-project", Topic: "absent"},
	}, nil)
	require.NoError(t, err)
	defer pub.(*pubsubPublisher).Close()

	assert.Error(t, pub.Publish(ctx, Event{Type: EventTypeSnapshotWritten}))
}
