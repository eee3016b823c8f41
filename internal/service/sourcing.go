package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"shorts_pipeline/internal/config"
	"shorts_pipeline/internal/domain"
)

// SourceReport summarises one source's contribution to a sourcing run.
type SourceReport struct {
	SourceID   string
	SourceName string
	Fetched    int
	Inserted   int
	Duplicates int
	Errors     int
	Err        error
	Duration   time.Duration
}

// SourcingService pulls products from every configured source and stores the
// new ones as affiliate opportunities.
type SourcingService struct {
	sources       []Source
	opportunities OpportunityStore
	logger        *slog.Logger
	config        config.SourcingConfig
}

func NewSourcingService(
	sources []Source,
	opportunities OpportunityStore,
	logger *slog.Logger,
	cfg config.SourcingConfig,
) *SourcingService {
	return &SourcingService{
		sources:       sources,
		opportunities: opportunities,
		logger:        logger.With("component", "sourcing"),
		config:        cfg,
	}
}

type fetchResult struct {
	products []domain.Opportunity
	err      error
	duration time.Duration
}

// Run fetches every source concurrently. A failing source is reported and
// never stops the others. Inserts happen afterwards in source order so that
// duplicates across sources resolve deterministically.
func (s *SourcingService) Run(ctx context.Context) ([]SourceReport, error) {
	startTime := time.Now()
	s.logger.Info("starting sourcing run", "sources", len(s.sources), "limit", s.config.Limit)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	results := make([]fetchResult, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			fetchStart := time.Now()
			products, err := src.FetchProducts(gctx, s.config.Limit)
			results[i] = fetchResult{products: products, err: err, duration: time.Since(fetchStart)}
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	reports := make([]SourceReport, len(s.sources))
	for i, src := range s.sources {
		report := SourceReport{
			SourceID:   src.ID(),
			SourceName: src.Name(),
			Duration:   results[i].duration,
		}

		if err := results[i].err; err != nil {
			report.Err = fmt.Errorf("fetch products: %w", err)
			s.logger.Error("source failed", "source", src.ID(), "error", err)
			reports[i] = report
			continue
		}

		report.Fetched = len(results[i].products)
		for j := range results[i].products {
			if ctx.Err() != nil {
				report.Err = ctx.Err()
				break
			}
			s.store(ctx, src, &results[i].products[j], seen, &report)
		}

		s.logger.Info("source processed",
			"source", src.ID(),
			"fetched", report.Fetched,
			"inserted", report.Inserted,
			"duplicates", report.Duplicates,
			"errors", report.Errors,
		)
		reports[i] = report
	}

	s.logger.Info("sourcing run completed",
		"inserted", totalInserted(reports),
		"duration", time.Since(startTime),
	)

	return reports, ctx.Err()
}

func (s *SourcingService) store(ctx context.Context, src Source, product *domain.Opportunity, seen map[string]struct{}, report *SourceReport) {
	product.ProductURL = strings.TrimSpace(product.ProductURL)
	if product.ProductURL == "" || strings.TrimSpace(product.ProductName) == "" {
		report.Errors++
		s.logger.Warn("product without name or url skipped", "source", src.ID(), "product", product.ProductName)
		return
	}

	if _, dup := seen[product.ProductURL]; dup {
		report.Duplicates++
		return
	}
	seen[product.ProductURL] = struct{}{}

	exists, err := s.opportunities.ExistsByProductURL(ctx, product.ProductURL)
	if err != nil {
		report.Errors++
		s.logger.Error("dedupe check failed", "source", src.ID(), "product_url", product.ProductURL, "error", err)
		return
	}
	if exists {
		report.Duplicates++
		s.logger.Debug("opportunity already exists", "product_url", product.ProductURL)
		return
	}

	if product.Platform == "" {
		product.Platform = src.ID()
	}
	product.IsAffiliate = true
	if product.ScrapedAt.IsZero() {
		product.ScrapedAt = time.Now()
	}

	created, err := s.opportunities.Create(ctx, product)
	if err != nil {
		report.Errors++
		s.logger.Error("failed to save opportunity", "source", src.ID(), "product", product.ProductName, "error", err)
		return
	}
	if !created {
		// lost a race with a concurrent insert of the same url
		report.Duplicates++
		return
	}
	report.Inserted++
}

func totalInserted(reports []SourceReport) int {
	n := 0
	for _, r := range reports {
		n += r.Inserted
	}
	return n
}
