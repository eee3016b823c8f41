package elevenlabs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts_pipeline/internal/domain"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{APIKey: "xi-test", BaseURL: server.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSynthesize_WritesNarration(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-speech/"+DefaultVoiceID, r.URL.Path)
		assert.Equal(t, "xi-test", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var body ttsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello there", body.Text)
		assert.Equal(t, DefaultModelID, body.ModelID)
		assert.Equal(t, 0.5, body.VoiceSettings.Stability)

		_, _ = w.Write([]byte("ID3-audio-bytes"))
	})
	dir := t.TempDir()

	path, err := client.Synthesize(context.Background(), "hello there", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, narrationFile), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID3-audio-bytes", string(data))
}

func TestSynthesize_ProviderError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid key"}`))
	})

	_, err := client.Synthesize(context.Background(), "hello", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}

func TestSynthesize_EmptyAudio(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	dir := t.TempDir()

	_, err := client.Synthesize(context.Background(), "hello", dir)

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
	assert.NoFileExists(t, filepath.Join(dir, narrationFile))
}

func TestSynthesize_EmptyScript(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Synthesize(context.Background(), "  ", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}
