package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger(api.Logger))

	r.Get("/healthz", api.Health)

	r.Route("/opportunities", func(r chi.Router) {
		r.Get("/", api.ListOpportunities)
		r.Post("/", api.CreateOpportunity)
		r.Get("/count", api.CountOpportunities)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", api.GetOpportunity)
			r.Put("/", api.UpdateOpportunity)
			r.Delete("/", api.DeleteOpportunity)
			r.Get("/videos", api.ListVideos)
			r.Post("/organic-ideas", api.GenerateOrganicIdeas)
		})
	})

	r.Post("/generate", api.Generate)
	r.Get("/scheduler/config", api.SchedulerConfig)
	r.Post("/sourcing/run", api.RunSourcing)

	return r
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
