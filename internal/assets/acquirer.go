package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"shorts_pipeline/internal/domain"
)

const placeholderName = "placeholder.jpg"

type Config struct {
	Fetcher      FetcherConfig
	Concurrency  int
	DefaultImage string // optional file used instead of the generated placeholder
	Width        int
	Height       int
}

// Result lists local, render-ready images in source order.
type Result struct {
	Paths       []string
	Dropped     int
	Placeholder bool
}

// Acquirer turns an opportunity's image references into local files.
type Acquirer struct {
	fetcher      *Fetcher
	concurrency  int
	defaultImage string
	width        int
	height       int
	logger       *slog.Logger
}

func NewAcquirer(cfg Config, logger *slog.Logger) *Acquirer {
	logger = logger.With("component", "assets")
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Acquirer{
		fetcher:      NewFetcher(cfg.Fetcher, logger),
		concurrency:  cfg.Concurrency,
		defaultImage: cfg.DefaultImage,
		width:        cfg.Width,
		height:       cfg.Height,
		logger:       logger,
	}
}

// SelectSources applies the selection policy: the image list, else the
// thumbnail. An empty result means the placeholder must be used.
func SelectSources(o *domain.Opportunity) []string {
	var sources []string
	for _, img := range o.Images {
		if strings.TrimSpace(img) != "" {
			sources = append(sources, img)
		}
	}
	if len(sources) > 0 {
		return sources
	}
	if o.Thumbnail != nil && strings.TrimSpace(*o.Thumbnail) != "" {
		return []string{*o.Thumbnail}
	}
	return nil
}

// Acquire downloads and normalises the opportunity's images into dir. Images
// that fail are logged and dropped. The result always holds at least one path;
// only local I/O failures and cancellation are returned as errors.
func (a *Acquirer) Acquire(ctx context.Context, o *domain.Opportunity, dir string) (*Result, error) {
	logger := a.logger.With("opportunity_id", o.ID)
	sources := SelectSources(o)

	slots := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			data, err := a.fetcher.Fetch(gctx, src)
			if err != nil {
				logger.Warn("dropping image", "index", i, "url", src, "error", err)
				return nil
			}

			out, ext, err := Normalize(data)
			if err != nil {
				logger.Warn("dropping image", "index", i, "url", src, "error", err)
				return nil
			}

			path := filepath.Join(dir, fmt.Sprintf("image-%02d%s", i, ext))
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return fmt.Errorf("write image %d: %w", i, err)
			}
			slots[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, p := range slots {
		if p != "" {
			result.Paths = append(result.Paths, p)
		}
	}
	result.Dropped = len(sources) - len(result.Paths)

	if len(result.Paths) == 0 {
		path, err := a.placeholder(dir)
		if err != nil {
			return nil, err
		}
		result.Paths = []string{path}
		result.Placeholder = true
	}

	logger.Info("images acquired",
		"requested", len(sources),
		"acquired", len(result.Paths),
		"dropped", result.Dropped,
		"placeholder", result.Placeholder,
	)

	return result, nil
}

func (a *Acquirer) placeholder(dir string) (string, error) {
	path := filepath.Join(dir, placeholderName)

	if a.defaultImage != "" {
		out, ext, err := a.loadDefaultImage()
		if err == nil {
			path = filepath.Join(dir, "placeholder"+ext)
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return "", fmt.Errorf("write default image: %w", err)
			}
			return path, nil
		}
		a.logger.Warn("default image unusable, generating placeholder", "path", a.defaultImage, "error", err)
	}

	if err := WritePlaceholder(path, a.width, a.height); err != nil {
		return "", err
	}
	return path, nil
}

func (a *Acquirer) loadDefaultImage() ([]byte, string, error) {
	data, err := os.ReadFile(a.defaultImage)
	if err != nil {
		return nil, "", err
	}
	return Normalize(data)
}
