package qstash

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	)
}

func TestNewClientDisabled(t *testing.T) {
	_, err := NewClient(Config{URL: "https://qstash.upstash.io"})
	assert.True(t, errors.Is(err, ErrDisabled))

	_, err = NewClient(Config{URL: "", Token: "t", Destination: "https://hooks.example.com"})
	assert.Error(t, err)
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{Token: "t"}.Enabled())
	assert.False(t, Config{Destination: "d"}.Enabled())
	assert.True(t, Config{Token: "t", Destination: "d"}.Enabled())
}

func TestPublishJSON(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotRetries string
		gotBody    map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRetries = r.Header.Get("Upstash-Retries")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"msg_123"}`))
	}))
	defer srv.Close()

	client := MustNew(Config{
		URL:         srv.URL,
		Token:       "secret",
		Destination: "bookings-topic",
		Retries:     2,
	})

	out, err := client.PublishJSON(context.Background(), map[string]any{"type": "booking.confirmed", "booking_id": "bk-1"})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", out.MessageID)
	assert.Equal(t, "/v2/publish/bookings-topic", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "2", gotRetries)
	assert.Equal(t, "booking.confirmed", gotBody["type"])
}

func TestPublishReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	client := MustNew(Config{URL: srv.URL, Token: "bad", Destination: "bookings-topic"})
	err := client.Publish(context.Background(), map[string]string{"type": "booking.confirmed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
