package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shorts_pipeline/internal/domain"
)

// Config holds one marketplace feed's configuration.
type Config struct {
	ID             string
	Name           string
	BaseURL        string
	APIKey         string
	AffiliateTag   string
	PageSize       int
	MaxPages       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source reads trending products from a paged JSON marketplace feed
// (GET {base}/products?limit=&page=&sort=trending&status=active).
type Source struct {
	httpClient     *http.Client
	id             string
	name           string
	baseURL        string
	apiKey         string
	affiliateTag   string
	pageSize       int
	maxPages       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 20
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		id:             cfg.ID,
		name:           cfg.Name,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		affiliateTag:   cfg.AffiliateTag,
		pageSize:       cfg.PageSize,
		maxPages:       cfg.MaxPages,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", cfg.ID),
	}
}

func (s *Source) ID() string {
	return s.id
}

func (s *Source) Name() string {
	return s.name
}

// FetchProducts pages through the feed until limit products are collected,
// the feed runs out, or the page budget is spent. Products gathered before a
// failing page are returned together with the error.
func (s *Source) FetchProducts(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	var all []Product

	for page := 1; page <= s.maxPages; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			return s.transform(truncate(all, limit)), fmt.Errorf("fetch page %d: %w", page, err)
		}

		all = append(all, resp.Products...)

		s.logger.Debug("fetched page",
			"page", page,
			"products", len(resp.Products),
			"total", len(all),
		)

		if len(resp.Products) == 0 || (limit > 0 && len(all) >= limit) {
			break
		}
		if resp.Total > 0 && page*s.pageSize >= resp.Total {
			break
		}
	}

	return s.transform(truncate(all, limit)), nil
}

func truncate(products []Product, limit int) []Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

func (s *Source) fetchPage(ctx context.Context, page int) (*APIResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(s.pageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", "trending")
	q.Set("status", "active")
	endpoint := s.baseURL + "/products?" + q.Encode()

	var resp *APIResponse
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err = s.doRequest(ctx, endpoint)
		if err == nil {
			return resp, nil
		}

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			return nil, err
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

func (s *Source) doRequest(ctx context.Context, endpoint string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShortsPipeline/1.0")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if s.maxBackoff > 0 && backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func (s *Source) transform(products []Product) []domain.Opportunity {
	opportunities := make([]domain.Opportunity, 0, len(products))
	now := time.Now()

	for _, p := range products {
		productURL := strings.TrimSpace(p.URL)
		if productURL == "" {
			s.logger.Warn("product without url skipped", "external_id", p.ID, "name", p.Name)
			continue
		}

		o := domain.Opportunity{
			Platform:       s.id,
			ProductName:    strings.TrimSpace(p.Name),
			ProductURL:     productURL,
			AffiliateURL:   s.affiliateURL(p, productURL),
			CommissionRate: p.CommissionRate,
			Price:          p.Price,
			Category:       p.Category,
			Description:    p.Description,
			TrendingScore:  trendingScore(p),
			IsAffiliate:    true,
			Images:         nonEmpty(p.Images),
			Thumbnail:      p.Thumbnail,
			ScrapedAt:      now,
		}
		if (o.Thumbnail == nil || *o.Thumbnail == "") && len(o.Images) > 0 {
			thumb := o.Images[0]
			o.Thumbnail = &thumb
		}

		opportunities = append(opportunities, o)
	}

	return opportunities
}

func (s *Source) affiliateURL(p Product, productURL string) *string {
	if p.AffiliateURL != nil && *p.AffiliateURL != "" {
		return p.AffiliateURL
	}
	if s.affiliateTag == "" {
		return &productURL
	}
	u, err := url.Parse(productURL)
	if err != nil {
		return &productURL
	}
	q := u.Query()
	q.Set("affiliate", s.affiliateTag)
	u.RawQuery = q.Encode()
	tagged := u.String()
	return &tagged
}

// trendingScore prefers an explicit score and otherwise normalises gravity
// to the 0-1 range.
func trendingScore(p Product) *float64 {
	if p.TrendingScore != nil {
		return p.TrendingScore
	}
	if p.Gravity != nil {
		score := *p.Gravity / 100
		return &score
	}
	return nil
}

func nonEmpty(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
