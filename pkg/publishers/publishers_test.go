package publishers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistryFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeRegistryFile(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: " topic "
    type: SNS
    sns:
      topic_arn: arn:aws:sns:us-east-1:0:feeds
      region: us-east-1
  - id: ps
    type: pubsub
    pubsub:
      project_id: site
      topic: feeds
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 3)

	enabled := reg.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "topic", enabled[0].ID)
	assert.Equal(t, TypeSNS, enabled[0].Type)
	assert.Equal(t, TypePubSub, enabled[1].Type)

	cfg, ok := reg.ByID("http1")
	require.True(t, ok)
	assert.Equal(t, "POST", cfg.HTTP.Method)
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeRegistryFile(t, "publishers.json", `{"publishers":[
		{"id":"q","type":"sqs","sqs":{"uri":"https://sqs.local/q","region":"us-east-1",
		 "credentials":{"access_key_id":"a","secret_access_key":"b"}}}
	]}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	cfg, ok := reg.ByID("q")
	require.True(t, ok)
	assert.Equal(t, "https://sqs.local/q", cfg.SQS.QueueURL)
	require.NotNil(t, cfg.SQS.Credentials)
	assert.Equal(t, "a", cfg.SQS.Credentials.AccessKeyID)
}

func TestLoadRegistryErrors(t *testing.T) {
	cases := map[string]string{
		"empty":     "publishers: []\n",
		"duplicate": "publishers:\n  - {id: a, type: http, http: {url: 'https://x'}}\n  - {id: a, type: http, http: {url: 'https://y'}}\n",
		"unknown":   "publishers:\n  - {id: a, type: kafka}\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRegistry(writeRegistryFile(t, "p.yaml", raw))
			assert.Error(t, err)
		})
	}

	_, err := LoadRegistry("  ")
	assert.Error(t, err)
	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "s1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}},
		{ID: "n1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		{ID: "p1", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "site"}},
		{Type: TypeHTTP},
	}
	for _, cfg := range cases {
		assert.Error(t, validatePublisherConfig(cfg), "config %+v", cfg)
	}
}

func TestValidatePublisherConfigNamesMissingField(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "topic",
		Type: TypeSNS,
		SNS:  &SNSPublisherConfig{TopicARN: "arn:aws:sns:us-east-1:0:feeds"},
	})
	require.Error(t, err)
	assert.Equal(t, `sns.region is required for publisher "topic"`, err.Error())

	err = validatePublisherConfig(PublisherConfig{ID: "ps", Type: TypePubSub})
	require.Error(t, err)
	assert.Equal(t, `pubsub config required for publisher "ps"`, err.Error())
}

func TestLoadRegistryNormalizesHTTPHeaders(t *testing.T) {
	path := writeRegistryFile(t, "publishers.yml", `
publishers:
  - id: hook
    type: http
    http:
      url: " https://example.com/hook "
      method: put
      headers:
        " X-Token ": " abc "
        X-Empty: ""
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	cfg, ok := reg.ByID(" hook ")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/hook", cfg.HTTP.URL)
	assert.Equal(t, "PUT", cfg.HTTP.Method)
	assert.Equal(t, map[string]string{"X-Token": "abc"}, cfg.HTTP.Headers)
}

func TestLoadRegistryRejectsMalformedJSON(t *testing.T) {
	_, err := LoadRegistry(writeRegistryFile(t, "publishers.json", `{"publishers": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode publishers file publishers.json")
}
