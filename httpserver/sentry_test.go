package httpserver_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu     sync.Mutex
	events []*sentrygo.Event
}

func (t *recordingTransport) Flush(time.Duration) bool { return true }

func (t *recordingTransport) Configure(sentrygo.ClientOptions) {}

func (t *recordingTransport) SendEvent(event *sentrygo.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTransport) Events() []*sentrygo.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*sentrygo.Event(nil), t.events...)
}

func useRecordingSentry(t *testing.T) *recordingTransport {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")

	transport := new(recordingTransport)
	client, err := sentrygo.NewClient(sentrygo.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)

	hub := sentrygo.CurrentHub()
	previous := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() {
		hub.BindClient(previous)
	})
	return transport
}

func TestErrorReporting(t *testing.T) {
	t.Run("server errors are reported with route tags", func(t *testing.T) {
		transport := useRecordingSentry(t)
		server := mustCreateServer(t)
		addErrorRoute(server, errors.New("connection reset"))

		response := makeRequest(server, http.MethodGet, "/error", nil)

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		events := transport.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "/error", events[0].Tags["route"])
		assert.Equal(t, http.MethodGet, events[0].Tags["method"])
		assert.Equal(t, response.Header().Get("X-Request-Id"), events[0].Extra["request_id"])
		assert.Equal(t, sentrygo.LevelError, events[0].Level)
	})

	t.Run("client errors are not reported", func(t *testing.T) {
		transport := useRecordingSentry(t)
		server, _ := newMovieServer(t)

		response := makeRequest(server, http.MethodGet, "/api/movies/abc", nil)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Empty(t, transport.Events())
	})
}
