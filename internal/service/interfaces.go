package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shorts_pipeline/internal/assets"
	"shorts_pipeline/internal/compose"
	"shorts_pipeline/internal/domain"
)

type OpportunityStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error)
	Create(ctx context.Context, o *domain.Opportunity) (bool, error)
	SelectRandom(ctx context.Context, pool domain.Pool, opts domain.SelectOptions) (*domain.Opportunity, error)
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	ExistsByProductURL(ctx context.Context, productURL string) (bool, error)
}

type VideoStore interface {
	Create(ctx context.Context, video *domain.Video) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ScriptWriter interface {
	WriteScript(ctx context.Context, req domain.ScriptRequest) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, script, outDir string) (string, error)
}

type OverlayGenerator interface {
	GenerateOverlays(ctx context.Context, script string, o *domain.Opportunity) ([]string, error)
}

type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, o *domain.Opportunity, n int) ([]domain.Idea, error)
}

type AssetAcquirer interface {
	Acquire(ctx context.Context, o *domain.Opportunity, dir string) (*assets.Result, error)
}

type Composer interface {
	Compose(ctx context.Context, req compose.Request) (*compose.Output, error)
}

type Source interface {
	ID() string
	Name() string
	FetchProducts(ctx context.Context, limit int) ([]domain.Opportunity, error)
}

type Publisher interface {
	PublishVideo(ctx context.Context, video *domain.Video, platform string) error
	Close() error
}
