package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"shorts_pipeline/internal/compose"
	"shorts_pipeline/internal/config"
	"shorts_pipeline/internal/domain"
)

// PipelineDeps holds the collaborators of a Pipeline. Overlays and Publisher
// are optional.
type PipelineDeps struct {
	Opportunities OpportunityStore
	Videos        VideoStore
	TxManager     TransactionManager
	Scripts       ScriptWriter
	Speech        SpeechSynthesizer
	Overlays      OverlayGenerator
	Assets        AssetAcquirer
	Composer      Composer
	Publisher     Publisher
}

// RunParams parameterises a single pipeline run.
type RunParams struct {
	IsAffiliate bool
	Style       string
	Platform    string
}

// Pipeline turns opportunities into finished videos.
type Pipeline struct {
	opportunities OpportunityStore
	videos        VideoStore
	txManager     TransactionManager
	scripts       ScriptWriter
	speech        SpeechSynthesizer
	overlays      OverlayGenerator
	assets        AssetAcquirer
	composer      Composer
	publisher     Publisher
	claims        *claimSet
	platforms     []string
	logger        *slog.Logger
	config        config.PipelineConfig
	paths         config.PathsConfig
	now           func() time.Time
}

func NewPipeline(
	deps PipelineDeps,
	logger *slog.Logger,
	cfg config.PipelineConfig,
	paths config.PathsConfig,
	platforms []string,
) *Pipeline {
	p := &Pipeline{
		opportunities: deps.Opportunities,
		videos:        deps.Videos,
		txManager:     deps.TxManager,
		scripts:       deps.Scripts,
		speech:        deps.Speech,
		overlays:      deps.Overlays,
		assets:        deps.Assets,
		composer:      deps.Composer,
		publisher:     deps.Publisher,
		platforms:     platforms,
		logger:        logger.With("component", "pipeline"),
		config:        cfg,
		paths:         paths,
		now:           time.Now,
	}
	if len(p.config.Styles) == 0 {
		p.config.Styles = []string{"static"}
	}
	if cfg.Selection.ExclusiveClaims {
		p.claims = newClaimSet()
	}
	return p
}

// RunBatch runs count sequential pipeline iterations for platform, each on a
// freshly selected opportunity. Item failures are recorded in the result; an
// error is returned only for an invalid trigger.
func (p *Pipeline) RunBatch(ctx context.Context, platform string, count int, isAffiliate bool) (*domain.BatchResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d: %w", count, domain.ErrInvalidTrigger)
	}
	if len(p.platforms) > 0 && !slices.Contains(p.platforms, platform) {
		return nil, fmt.Errorf("unknown platform %q: %w", platform, domain.ErrInvalidTrigger)
	}

	pool := domain.PoolFor(isAffiliate)
	logger := p.logger.With("platform", platform, "pool", pool.String())
	result := &domain.BatchResult{
		Platform:    platform,
		IsAffiliate: isAffiliate,
		Requested:   count,
		StartedAt:   p.now(),
	}

	logger.Info("starting batch", "count", count)

	for i := 0; i < count; i++ {
		style := p.config.Styles[i%len(p.config.Styles)]

		if ctx.Err() != nil {
			result.Items = append(result.Items, domain.ItemOutcome{
				Index:     i,
				Style:     style,
				Err:       ctx.Err(),
				Cancelled: true,
			})
			continue
		}

		outcome := p.runItem(ctx, logger, i, pool, RunParams{
			IsAffiliate: isAffiliate,
			Style:       style,
			Platform:    platform,
		})
		result.Items = append(result.Items, outcome)
	}

	result.Duration = time.Since(result.StartedAt)

	logger.Info("batch completed",
		"requested", count,
		"succeeded", result.Succeeded(),
		"failed", result.Failed(),
		"skipped", result.Skipped(),
		"duration", result.Duration,
	)

	return result, nil
}

func (p *Pipeline) runItem(ctx context.Context, logger *slog.Logger, index int, pool domain.Pool, params RunParams) domain.ItemOutcome {
	outcome := domain.ItemOutcome{Index: index, Style: params.Style}

	opp, release, err := p.selectOpportunity(ctx, pool)
	if err != nil {
		outcome.Err = &domain.StageError{Stage: domain.StageSelect, Err: err}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			outcome.Skipped = true
			logger.Warn("no opportunity available, skipping", "index", index)
		case ctx.Err() != nil:
			outcome.Cancelled = true
		default:
			logger.Error("opportunity selection failed", "index", index, "error", err)
		}
		return outcome
	}
	defer release()

	outcome.OpportunityID = opp.ID

	video, err := p.RunOne(ctx, opp, params)
	if err != nil {
		outcome.Err = err
		outcome.Cancelled = ctx.Err() != nil
		return outcome
	}
	outcome.Video = video
	return outcome
}

func (p *Pipeline) selectOpportunity(ctx context.Context, pool domain.Pool) (*domain.Opportunity, func(), error) {
	opts := domain.SelectOptions{ExcludeUsed: p.config.Selection.ExcludeUsed}
	if p.claims == nil {
		opp, err := p.opportunities.SelectRandom(ctx, pool, opts)
		return opp, func() {}, err
	}

	const maxClaimAttempts = 3
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		opts.ExcludeIDs = p.claims.snapshot()
		opp, err := p.opportunities.SelectRandom(ctx, pool, opts)
		if err != nil {
			return nil, nil, err
		}
		if p.claims.claim(opp.ID) {
			return opp, func() { p.claims.release(opp.ID) }, nil
		}
	}
	return nil, nil, fmt.Errorf("every %s candidate is claimed: %w", pool, domain.ErrNotFound)
}

// RunOne produces one video from o. On success the video is persisted and o
// is marked used in the same transaction. Any failure aborts the item and is
// returned as a *domain.StageError.
func (p *Pipeline) RunOne(ctx context.Context, o *domain.Opportunity, params RunParams) (*domain.Video, error) {
	runID := uuid.New()
	started := p.now()
	logger := p.logger.With(
		"run_id", runID,
		"opportunity_id", o.ID,
		"style", params.Style,
		"platform", params.Platform,
	)

	workDir, err := os.MkdirTemp(p.paths.Scratch, fmt.Sprintf("run-%d-%s-*", started.Unix(), runID))
	if err != nil {
		return nil, p.abort(logger, domain.StageScript, fmt.Errorf("create workspace: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove workspace", "path", workDir, "error", err)
		}
	}()

	logger.Info("starting pipeline run", "product", o.ProductName, "is_affiliate", params.IsAffiliate)

	script, err := withTimeout(ctx, p.config.Timeouts.Script, func(ctx context.Context) (string, error) {
		return p.scripts.WriteScript(ctx, domain.ScriptRequest{
			Opportunity: o,
			Style:       params.Style,
			IsAffiliate: params.IsAffiliate,
		})
	})
	if err != nil {
		return nil, p.abort(logger, domain.StageScript, err)
	}
	logger.Info("script ready", "chars", len(script))

	audioPath, err := withTimeout(ctx, p.config.Timeouts.Audio, func(ctx context.Context) (string, error) {
		return p.speech.Synthesize(ctx, script, workDir)
	})
	if err != nil {
		return nil, p.abort(logger, domain.StageAudio, err)
	}
	logger.Info("narration ready", "path", audioPath)

	images, captions, err := p.visuals(ctx, logger, o, script, workDir)
	if err != nil {
		return nil, p.abort(logger, domain.StageVisuals, err)
	}

	out, err := withTimeout(ctx, p.config.Timeouts.Compose, func(ctx context.Context) (*compose.Output, error) {
		return p.composer.Compose(ctx, compose.Request{
			AudioPath: audioPath,
			Images:    images,
			Captions:  captions,
			Subject: compose.Subject{
				Title:          o.ProductName,
				IsAffiliate:    params.IsAffiliate,
				CommissionRate: o.CommissionRate,
				Price:          o.Price,
			},
			WorkDir:   workDir,
			OutputDir: p.paths.Output,
			Name:      "video-" + runID.String(),
		})
	})
	if err != nil {
		return nil, p.abort(logger, domain.StageCompose, err)
	}

	video := &domain.Video{
		ID:            uuid.New(),
		OpportunityID: o.ID,
		Title:         o.ProductName + " - Viral Video",
		Description:   o.Description,
		Script:        script,
		VideoPath:     out.VideoPath,
		ThumbnailPath: out.ThumbnailPath,
		Duration:      int(math.Round(out.Duration)),
		Style:         params.Style,
		Status:        domain.VideoStatusCompleted,
	}

	if err := p.persist(ctx, logger, video); err != nil {
		removeOutputs(logger, out)
		stage, ok := domain.FailedStage(err)
		if !ok {
			stage = domain.StagePersist
			err = &domain.StageError{Stage: stage, Err: fmt.Errorf("%w: %w", domain.ErrPersistence, err)}
		}
		logger.Error("pipeline run aborted", "stage", stage, "error", err)
		return nil, err
	}

	if p.publisher != nil {
		if err := p.publisher.PublishVideo(ctx, video, params.Platform); err != nil {
			logger.Warn("failed to publish video event", "video_id", video.ID, "error", err)
		}
	}

	logger.Info("pipeline run completed",
		"video_id", video.ID,
		"video_path", video.VideoPath,
		"duration_seconds", video.Duration,
		"elapsed", time.Since(started),
	)

	return video, nil
}

func (p *Pipeline) visuals(ctx context.Context, logger *slog.Logger, o *domain.Opportunity, script, workDir string) ([]string, []string, error) {
	ctx, cancel := contextWithTimeout(ctx, p.config.Timeouts.Visuals)
	defer cancel()

	imageDir := filepath.Join(workDir, "images")
	if err := os.Mkdir(imageDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create image dir: %w", err)
	}

	acquired, err := p.assets.Acquire(ctx, o, imageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire images: %w", err)
	}

	var captions []string
	if p.config.Overlays && p.overlays != nil {
		captions, err = p.overlays.GenerateOverlays(ctx, script, o)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			logger.Warn("overlay generation failed, using rule-based captions", "error", err)
			captions = nil
		}
	}

	logger.Info("visuals ready",
		"images", len(acquired.Paths),
		"dropped", acquired.Dropped,
		"placeholder", acquired.Placeholder,
		"captions", len(captions),
	)

	return acquired.Paths, captions, nil
}

// persist stores the video and marks the opportunity used atomically.
func (p *Pipeline) persist(ctx context.Context, logger *slog.Logger, video *domain.Video) error {
	ctx, cancel := contextWithTimeout(ctx, p.config.Timeouts.Persist)
	defer cancel()

	return p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := p.videos.Create(txCtx, video); err != nil {
			return &domain.StageError{
				Stage: domain.StagePersist,
				Err:   fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			}
		}

		err := p.opportunities.MarkUsed(txCtx, video.OpportunityID, p.now())
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("opportunity vanished before it could be marked used", "error", err)
			return nil
		}
		if err != nil {
			return &domain.StageError{
				Stage: domain.StageMarkUsed,
				Err:   fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			}
		}
		return nil
	})
}

func (p *Pipeline) abort(logger *slog.Logger, stage domain.Stage, err error) error {
	logger.Error("pipeline run aborted", "stage", stage, "error", err)
	return &domain.StageError{Stage: stage, Err: err}
}

func removeOutputs(logger *slog.Logger, out *compose.Output) {
	for _, path := range []string{out.VideoPath, out.ThumbnailPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove unpersisted output", "path", path, "error", err)
		}
	}
}

func contextWithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func withTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := contextWithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
