package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type FetcherConfig struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxBytes       int64
	UserAgent      string
}

// Fetcher loads image bytes from http(s) URLs or local paths.
type Fetcher struct {
	httpClient     *http.Client
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	maxBytes       int64
	userAgent      string
	logger         *slog.Logger
}

func NewFetcher(cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		maxBytes:       cfg.MaxBytes,
		userAgent:      cfg.UserAgent,
		logger:         logger,
	}
}

// statusError is returned for non-200 responses. Client errors are not retried.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

func (e *statusError) permanent() bool {
	return e.code >= 400 && e.code < 500 && e.code != http.StatusTooManyRequests
}

func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return f.fetchRemote(ctx, src)
	}
	if err == nil && u.Scheme == "file" {
		src = u.Path
	}
	return f.readLocal(src)
}

func (f *Fetcher) fetchRemote(ctx context.Context, src string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		data, err = f.doRequest(ctx, src)
		if err == nil {
			return data, nil
		}

		var se *statusError
		if errors.As(err, &se) && se.permanent() {
			return nil, err
		}
		if attempt == f.maxAttempts {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Debug("image fetch failed, retrying",
			"url", src,
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

	return nil, fmt.Errorf("after %d attempts: %w", f.maxAttempts, err)
}

func (f *Fetcher) doRequest(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "image/*")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	return f.readLimited(resp.Body)
}

func (f *Fetcher) readLocal(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty image source")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	return f.readLimited(file)
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}

func (f *Fetcher) calculateBackoff(attempt int) time.Duration {
	backoff := f.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if f.maxBackoff > 0 && backoff > f.maxBackoff {
		backoff = f.maxBackoff
	}
	return backoff
}
