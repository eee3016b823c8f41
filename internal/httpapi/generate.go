package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shorts_pipeline/internal/domain"
)

type generateRequest struct {
	Platform    string `json:"platform"`
	Count       *int   `json:"count"`
	IsAffiliate bool   `json:"is_affiliate"`
}

type itemResponse struct {
	Index         int            `json:"index"`
	Status        string         `json:"status"`
	OpportunityID *uuid.UUID     `json:"opportunity_id,omitempty"`
	Style         string         `json:"style"`
	Stage         string         `json:"stage,omitempty"`
	Error         string         `json:"error,omitempty"`
	Video         *videoResponse `json:"video,omitempty"`
}

type batchResponse struct {
	Platform    string         `json:"platform"`
	IsAffiliate bool           `json:"is_affiliate"`
	Requested   int            `json:"requested"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Skipped     int            `json:"skipped"`
	Duration    string         `json:"duration"`
	Items       []itemResponse `json:"items"`
}

func itemStatus(item domain.ItemOutcome) string {
	switch {
	case item.Succeeded():
		return "succeeded"
	case item.Skipped:
		return "skipped"
	case item.Cancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

func toBatchResponse(res *domain.BatchResult) batchResponse {
	out := batchResponse{
		Platform:    res.Platform,
		IsAffiliate: res.IsAffiliate,
		Requested:   res.Requested,
		Succeeded:   res.Succeeded(),
		Failed:      res.Failed(),
		Skipped:     res.Skipped(),
		Duration:    res.Duration.Round(time.Millisecond).String(),
		Items:       make([]itemResponse, len(res.Items)),
	}
	for i, item := range res.Items {
		ir := itemResponse{
			Index:  item.Index,
			Status: itemStatus(item),
			Style:  item.Style,
		}
		if item.OpportunityID != uuid.Nil {
			id := item.OpportunityID
			ir.OpportunityID = &id
		}
		if item.Err != nil {
			ir.Error = item.Err.Error()
			if stage, ok := domain.FailedStage(item.Err); ok {
				ir.Stage = string(stage)
			}
		}
		if item.Video != nil {
			v := toVideoResponse(*item.Video)
			ir.Video = &v
		}
		out.Items[i] = ir
	}
	return out
}

// Generate runs one batch synchronously and reports every item's outcome.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Platform == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "platform is required")
		return
	}
	count := 1
	if req.Count != nil {
		count = *req.Count
	}

	res, err := a.Generator.Trigger(r.Context(), req.Platform, count, req.IsAffiliate)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	code := http.StatusOK
	if res.Succeeded() == 0 && res.Failed() > 0 {
		code = http.StatusMultiStatus
	}
	a.json(w, code, toBatchResponse(res))
}

func (a *API) SchedulerConfig(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"generated_at":  time.Now(),
		"registrations": a.Generator.Describe(time.Now()),
	})
}

type sourceReportResponse struct {
	Source     string `json:"source"`
	Name       string `json:"name"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Errors     int    `json:"errors"`
	Error      string `json:"error,omitempty"`
	Duration   string `json:"duration"`
}

func (a *API) RunSourcing(w http.ResponseWriter, r *http.Request) {
	if a.Sourcing == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "no sourcing configured")
		return
	}

	// Run only fails as a whole on cancellation; per-source failures are in
	// the reports.
	reports, runErr := a.Sourcing.Run(r.Context())

	out := make([]sourceReportResponse, len(reports))
	for i, rep := range reports {
		out[i] = sourceReportResponse{
			Source:     rep.SourceID,
			Name:       rep.SourceName,
			Fetched:    rep.Fetched,
			Inserted:   rep.Inserted,
			Duplicates: rep.Duplicates,
			Errors:     rep.Errors,
			Duration:   rep.Duration.Round(time.Millisecond).String(),
		}
		if rep.Err != nil {
			out[i].Error = rep.Err.Error()
		}
	}
	resp := map[string]any{"sources": out}
	if runErr != nil {
		resp["error"] = runErr.Error()
	}
	a.json(w, http.StatusOK, resp)
}
