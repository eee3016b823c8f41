package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/scheduler"
	"shorts_pipeline/internal/service"
	"shorts_pipeline/internal/storage/postgres"
)

type OpportunityStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error)
	Create(ctx context.Context, o *domain.Opportunity) (bool, error)
	Save(ctx context.Context, o *domain.Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter postgres.ListFilter) ([]domain.Opportunity, error)
	CountAll(ctx context.Context) (int64, error)
}

type VideoStore interface {
	ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]domain.Video, error)
	CountAll(ctx context.Context) (int64, error)
}

type Generator interface {
	Trigger(ctx context.Context, platform string, count int, isAffiliate bool) (*domain.BatchResult, error)
	Describe(now time.Time) []scheduler.Description
}

type IdeaGenerator interface {
	GenerateOrganicIdeas(ctx context.Context, id uuid.UUID) ([]domain.Opportunity, error)
}

type Sourcer interface {
	Run(ctx context.Context) ([]service.SourceReport, error)
}

// API serves the admin and trigger endpoints. Sourcing may be nil when no
// marketplace source is configured.
type API struct {
	Opportunities OpportunityStore
	Videos        VideoStore
	Generator     Generator
	Ideas         IdeaGenerator
	Sourcing      Sourcer
	Logger        *slog.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *API) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, errorResponse{Error: kind, Message: msg})
}

// fail maps domain errors onto status codes and logs anything unexpected.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidTrigger):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrCapabilityUnavailable):
		a.error(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	default:
		a.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
