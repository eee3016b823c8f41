package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{APIKey: "test-key", BaseURL: server.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func reply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"content": content}}},
	})
}

func opportunity() *domain.Opportunity {
	return &domain.Opportunity{
		ID:             uuid.New(),
		ProductName:    "Focus Timer Pro",
		Category:       testutil.Ptr("productivity"),
		Price:          testutil.Ptr(19.99),
		CommissionRate: testutil.Ptr(40.0),
		IsAffiliate:    true,
	}
}

func TestWriteScript_Affiliate(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(w, `"Stop scrolling, this timer changed my mornings. Tap the link below."`)
	})

	script, err := client.WriteScript(context.Background(), domain.ScriptRequest{Opportunity: opportunity(), Style: "static", IsAffiliate: true})

	require.NoError(t, err)
	assert.Equal(t, "Stop scrolling, this timer changed my mornings. Tap the link below.", script)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Product: Focus Timer Pro")
	assert.Contains(t, got.Messages[1].Content, "Price: $19.99")
	assert.Contains(t, got.Messages[1].Content, "call to action")
}

func TestWriteScript_OrganicPromptOmitsProductTies(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(w, "Three habits that make mornings easier.")
	})
	o := opportunity()
	o.IsAffiliate = false

	_, err := client.WriteScript(context.Background(), domain.ScriptRequest{Opportunity: o, Style: "meme-style"})

	require.NoError(t, err)
	assert.NotContains(t, got.Messages[1].Content, "Price:")
	assert.Contains(t, got.Messages[1].Content, "Do NOT mention any product")
}

func TestWriteScript_EmptyContentFallsBackToPlaceholder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, "   ")
	})
	o := opportunity()

	script, err := client.WriteScript(context.Background(), domain.ScriptRequest{Opportunity: o, IsAffiliate: true})

	require.NoError(t, err)
	assert.Equal(t, PlaceholderScript(o, true), script)
}

func TestWriteScript_ProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.WriteScript(context.Background(), domain.ScriptRequest{Opportunity: opportunity(), IsAffiliate: true})

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
	assert.NotErrorIs(t, err, domain.ErrEmptyContent)
}

func TestWriteScript_MissingAPIKey(t *testing.T) {
	client := New(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.WriteScript(context.Background(), domain.ScriptRequest{Opportunity: opportunity()})

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}

func TestGenerateOverlays(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(w, `{"overlays": ["One", "", "Two", "Three", "Four", "Five", "Six"]}`)
	})

	overlays, err := client.GenerateOverlays(context.Background(), "script", opportunity())

	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two", "Three", "Four", "Five"}, overlays)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestGenerateOverlays_InvalidPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, "not json")
	})

	_, err := client.GenerateOverlays(context.Background(), "script", opportunity())

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}

func TestGenerateIdeas(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, "```json\n"+`{"ideas": [{"title": "Morning focus routine", "description": "d1"}, {"title": " "}, {"title": "Deep work basics"}]}`+"\n```")
	})

	ideas, err := client.GenerateIdeas(context.Background(), opportunity(), 5)

	require.NoError(t, err)
	assert.Equal(t, []domain.Idea{
		{Title: "Morning focus routine", Description: "d1"},
		{Title: "Deep work basics"},
	}, ideas)
}
