package marketplace

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, handler http.HandlerFunc, cfg Config) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.ID = "clickbank"
	cfg.BaseURL = server.URL
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchProducts_Pages(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "trending", r.URL.Query().Get("sort"))

		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = io.WriteString(w, `{"products":[
				{"id":"a","name":"Alpha","url":"https://shop/a","gravity":85,"images":["https://img/a1.jpg",""," https://img/a2.jpg "]},
				{"id":"b","name":"Beta","url":"https://shop/b","trending_score":0.4,"affiliate_url":"https://aff/b"}
			],"total":3,"page":1,"limit":2}`)
		case "2":
			_, _ = io.WriteString(w, `{"products":[{"id":"c","name":"Gamma","url":"https://shop/c"}],"total":3,"page":2,"limit":2}`)
		default:
			t.Errorf("unexpected page %s", r.URL.Query().Get("page"))
		}
	}, Config{APIKey: "key", PageSize: 2, MaxPages: 5})

	products, err := src.FetchProducts(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, products, 3)

	alpha := products[0]
	assert.Equal(t, "clickbank", alpha.Platform)
	assert.True(t, alpha.IsAffiliate)
	assert.InDelta(t, 0.85, *alpha.TrendingScore, 1e-9)
	assert.Equal(t, []string{"https://img/a1.jpg", "https://img/a2.jpg"}, alpha.Images)
	assert.Equal(t, "https://img/a1.jpg", *alpha.Thumbnail)
	assert.Equal(t, "https://shop/a", *alpha.AffiliateURL)

	assert.InDelta(t, 0.4, *products[1].TrendingScore, 1e-9)
	assert.Equal(t, "https://aff/b", *products[1].AffiliateURL)
	assert.Nil(t, products[2].TrendingScore)
}

func TestFetchProducts_LimitStopsPaging(t *testing.T) {
	var calls atomic.Int32
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"products":[{"id":"a","name":"A","url":"https://shop/a"},{"id":"b","name":"B","url":"https://shop/b"}],"total":100}`)
	}, Config{PageSize: 2, MaxPages: 5})

	products, err := src.FetchProducts(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchProducts_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"products":[{"id":"a","name":"A","url":"https://shop/a"}]}`)
	}, Config{})

	products, err := src.FetchProducts(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchProducts_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}, Config{})

	_, err := src.FetchProducts(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchProducts_AffiliateTag(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[{"id":"a","name":"A","url":"https://hop.example/?item=a"},{"id":"x","name":"No URL"}]}`)
	}, Config{AffiliateTag: "me"})

	products, err := src.FetchProducts(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "https://hop.example/?affiliate=me&item=a", *products[0].AffiliateURL)
}

func TestCalculateBackoff(t *testing.T) {
	s := &Source{initialBackoff: time.Second, maxBackoff: 5 * time.Second}

	assert.Equal(t, time.Second, s.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, s.calculateBackoff(2))
	assert.Equal(t, 4*time.Second, s.calculateBackoff(3))
	assert.Equal(t, 5*time.Second, s.calculateBackoff(4))
}
