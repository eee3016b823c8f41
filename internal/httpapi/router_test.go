package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/scheduler"
	"shorts_pipeline/internal/service"
	"shorts_pipeline/internal/storage/postgres"
)

type memStore struct {
	items  map[uuid.UUID]*domain.Opportunity
	filter postgres.ListFilter
}

func newMemStore(list ...*domain.Opportunity) *memStore {
	s := &memStore{items: make(map[uuid.UUID]*domain.Opportunity)}
	for _, o := range list {
		s.items[o.ID] = o
	}
	return s
}

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	o, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, o *domain.Opportunity) (bool, error) {
	for _, existing := range s.items {
		if existing.ProductURL == o.ProductURL {
			return false, nil
		}
	}
	o.ID = uuid.New()
	cp := *o
	s.items[o.ID] = &cp
	return true, nil
}

func (s *memStore) Save(_ context.Context, o *domain.Opportunity) error {
	if _, ok := s.items[o.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.items {
		if id != o.ID && existing.ProductURL == o.ProductURL {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	s.items[o.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) List(_ context.Context, filter postgres.ListFilter) ([]domain.Opportunity, error) {
	s.filter = filter
	var out []domain.Opportunity
	for _, o := range s.items {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memStore) CountAll(context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

type fakeVideos struct{}

func (fakeVideos) ListByOpportunity(_ context.Context, id uuid.UUID) ([]domain.Video, error) {
	return []domain.Video{{ID: uuid.New(), OpportunityID: id, Title: "T - Viral Video", Duration: 20, Status: domain.VideoStatusCompleted}}, nil
}

func (fakeVideos) CountAll(context.Context) (int64, error) { return 7, nil }

type fakeGenerator struct {
	result *domain.BatchResult
	err    error
	got    []any
}

func (g *fakeGenerator) Trigger(_ context.Context, platform string, count int, isAffiliate bool) (*domain.BatchResult, error) {
	g.got = []any{platform, count, isAffiliate}
	return g.result, g.err
}

func (g *fakeGenerator) Describe(time.Time) []scheduler.Description {
	return []scheduler.Description{{Platform: "tiktok", Variant: "organic", Cron: "0 7 * * *", Count: 1, Times: []string{"07:00"}, Frequency: "1x daily"}}
}

type fakeIdeas struct{ err error }

func (f fakeIdeas) GenerateOrganicIdeas(_ context.Context, id uuid.UUID) ([]domain.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Opportunity{{ID: uuid.New(), ProductName: "Idea", ProductURL: "organic:idea"}}, nil
}

type fakeSourcer struct{}

func (fakeSourcer) Run(context.Context) ([]service.SourceReport, error) {
	return []service.SourceReport{
		{SourceID: "whop", Err: errors.New("fetch products: 503")},
		{SourceID: "clickbank", Fetched: 3, Inserted: 2, Duplicates: 1},
	}, nil
}

func newServer(t *testing.T, store *memStore, gen *fakeGenerator) *httptest.Server {
	t.Helper()
	api := &API{
		Opportunities: store,
		Videos:        fakeVideos{},
		Generator:     gen,
		Ideas:         fakeIdeas{},
		Sourcing:      fakeSourcer{},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	srv := httptest.NewServer(NewRouter(api))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newServer(t, newMemStore(), &fakeGenerator{})

	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestOpportunityCRUD(t *testing.T) {
	store := newMemStore()
	srv := newServer(t, store, &fakeGenerator{})

	resp, body := do(t, http.MethodPost, srv.URL+"/opportunities",
		`{"product_name":"Keto Guide","product_url":"https://shop/keto","is_affiliate":true,"price":19.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	assert.Equal(t, "manual", body["platform"])
	assert.Equal(t, []any{}, body["images"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/opportunities", `{"product_name":"Dup","product_url":"https://shop/keto"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/opportunities/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Keto Guide", body["product_name"])

	resp, body = do(t, http.MethodPut, srv.URL+"/opportunities/"+id, `{"product_name":"Keto Guide 2","images":["https://img/1.jpg"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Keto Guide 2", body["product_name"])
	assert.Equal(t, "https://shop/keto", body["product_url"])
	assert.Equal(t, []any{"https://img/1.jpg"}, body["images"])
	assert.Equal(t, 19.5, body["price"])

	resp, body = do(t, http.MethodGet, srv.URL+"/opportunities/count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["opportunities"])
	assert.Equal(t, float64(7), body["videos"])

	resp, _ = do(t, http.MethodDelete, srv.URL+"/opportunities/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/opportunities/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body["error"])
}

func TestCreateOpportunity_Validation(t *testing.T) {
	srv := newServer(t, newMemStore(), &fakeGenerator{})

	resp, body := do(t, http.MethodPost, srv.URL+"/opportunities", `{"product_name":"No URL"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "product_url is required", body["message"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/opportunities", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/opportunities/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListOpportunities_Filter(t *testing.T) {
	store := newMemStore(&domain.Opportunity{ID: uuid.New(), ProductName: "A", ProductURL: "a"})
	srv := newServer(t, store, &fakeGenerator{})

	resp, _ := do(t, http.MethodGet, srv.URL+"/opportunities?limit=5&offset=10&is_affiliate=false", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, store.filter.Limit)
	assert.Equal(t, 10, store.filter.Offset)
	require.NotNil(t, store.filter.IsAffiliate)
	assert.False(t, *store.filter.IsAffiliate)

	resp, _ = do(t, http.MethodGet, srv.URL+"/opportunities?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOpportunity_DuplicateURL(t *testing.T) {
	a := &domain.Opportunity{ID: uuid.New(), ProductName: "A", ProductURL: "https://a"}
	b := &domain.Opportunity{ID: uuid.New(), ProductName: "B", ProductURL: "https://b"}
	srv := newServer(t, newMemStore(a, b), &fakeGenerator{})

	resp, body := do(t, http.MethodPut, srv.URL+"/opportunities/"+b.ID.String(), `{"product_url":"https://a"}`)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "conflict", body["error"])
}

func TestGenerate_ReportsItems(t *testing.T) {
	oppID := uuid.New()
	gen := &fakeGenerator{result: &domain.BatchResult{
		Platform:  "tiktok",
		Requested: 3,
		Items: []domain.ItemOutcome{
			{Index: 0, OpportunityID: oppID, Style: "static", Video: &domain.Video{ID: uuid.New(), Duration: 30}},
			{Index: 1, OpportunityID: oppID, Style: "ai-background", Err: &domain.StageError{Stage: domain.StageAudio, Err: domain.ErrCapabilityUnavailable}},
			{Index: 2, Style: "meme-style", Skipped: true, Err: domain.ErrNotFound},
		},
	}}
	srv := newServer(t, newMemStore(), gen)

	resp, body := do(t, http.MethodPost, srv.URL+"/generate", `{"platform":"tiktok","count":3,"is_affiliate":true}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"tiktok", 3, true}, gen.got)
	assert.Equal(t, float64(1), body["succeeded"])
	assert.Equal(t, float64(1), body["failed"])
	assert.Equal(t, float64(1), body["skipped"])

	items := body["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "succeeded", items[0].(map[string]any)["status"])
	failed := items[1].(map[string]any)
	assert.Equal(t, "failed", failed["status"])
	assert.Equal(t, "audio", failed["stage"])
	assert.Equal(t, "skipped", items[2].(map[string]any)["status"])
	assert.NotContains(t, items[2].(map[string]any), "opportunity_id")
}

func TestGenerate_DefaultCountAndInvalidTrigger(t *testing.T) {
	gen := &fakeGenerator{err: domain.ErrInvalidTrigger}
	srv := newServer(t, newMemStore(), gen)

	resp, body := do(t, http.MethodPost, srv.URL+"/generate", `{"platform":"myspace"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", body["error"])
	assert.Equal(t, []any{"myspace", 1, false}, gen.got)

	resp, _ = do(t, http.MethodPost, srv.URL+"/generate", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerate_AllFailedIsMultiStatus(t *testing.T) {
	gen := &fakeGenerator{result: &domain.BatchResult{
		Platform:  "youtube",
		Requested: 1,
		Items:     []domain.ItemOutcome{{Index: 0, Err: &domain.StageError{Stage: domain.StageCompose, Err: domain.ErrCompositionFatal}}},
	}}
	srv := newServer(t, newMemStore(), gen)

	resp, _ := do(t, http.MethodPost, srv.URL+"/generate", `{"platform":"youtube"}`)

	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
}

func TestSchedulerConfig(t *testing.T) {
	srv := newServer(t, newMemStore(), &fakeGenerator{})

	resp, body := do(t, http.MethodGet, srv.URL+"/scheduler/config", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	regs := body["registrations"].([]any)
	require.Len(t, regs, 1)
	reg := regs[0].(map[string]any)
	assert.Equal(t, "0 7 * * *", reg["cron"])
	assert.Equal(t, []any{"07:00"}, reg["times"])
	assert.Equal(t, "1x daily", reg["frequency"])
}

func TestOrganicIdeasAndVideos(t *testing.T) {
	srv := newServer(t, newMemStore(), &fakeGenerator{})
	id := uuid.New().String()

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/opportunities/"+id+"/organic-ideas", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var ideas []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ideas))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Idea", ideas[0]["product_name"])

	req, _ = http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/opportunities/"+id+"/videos", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	var videos []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&videos))
	resp.Body.Close()
	require.Len(t, videos, 1)
	assert.Equal(t, id, videos[0]["opportunity_id"])
	assert.Equal(t, float64(20), videos[0]["duration_seconds"])
}

func TestRunSourcing(t *testing.T) {
	srv := newServer(t, newMemStore(), &fakeGenerator{})

	resp, body := do(t, http.MethodPost, srv.URL+"/sourcing/run", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	sources := body["sources"].([]any)
	require.Len(t, sources, 2)
	assert.Equal(t, "fetch products: 503", sources[0].(map[string]any)["error"])
	assert.Equal(t, float64(2), sources[1].(map[string]any)["inserted"])
	assert.NotContains(t, body, "error")
}
