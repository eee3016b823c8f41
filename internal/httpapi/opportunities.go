package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/storage/postgres"
)

type opportunityResponse struct {
	ID             uuid.UUID  `json:"id"`
	Platform       string     `json:"platform"`
	ProductName    string     `json:"product_name"`
	ProductURL     string     `json:"product_url"`
	AffiliateURL   *string    `json:"affiliate_url"`
	CommissionRate *float64   `json:"commission_rate"`
	Price          *float64   `json:"price"`
	Category       *string    `json:"category"`
	Description    *string    `json:"description"`
	TrendingScore  *float64   `json:"trending_score"`
	IsAffiliate    bool       `json:"is_affiliate"`
	Images         []string   `json:"images"`
	Thumbnail      *string    `json:"thumbnail"`
	LastUsedAt     *time.Time `json:"last_used_at"`
	ScrapedAt      time.Time  `json:"scraped_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toOpportunityResponse(o domain.Opportunity) opportunityResponse {
	images := o.Images
	if images == nil {
		images = []string{}
	}
	return opportunityResponse{
		ID:             o.ID,
		Platform:       o.Platform,
		ProductName:    o.ProductName,
		ProductURL:     o.ProductURL,
		AffiliateURL:   o.AffiliateURL,
		CommissionRate: o.CommissionRate,
		Price:          o.Price,
		Category:       o.Category,
		Description:    o.Description,
		TrendingScore:  o.TrendingScore,
		IsAffiliate:    o.IsAffiliate,
		Images:         images,
		Thumbnail:      o.Thumbnail,
		LastUsedAt:     o.LastUsedAt,
		ScrapedAt:      o.ScrapedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOpportunityResponses(list []domain.Opportunity) []opportunityResponse {
	out := make([]opportunityResponse, len(list))
	for i, o := range list {
		out[i] = toOpportunityResponse(o)
	}
	return out
}

// opportunityInput is the body of create and update. Absent fields keep
// their current value on update.
type opportunityInput struct {
	Platform       *string   `json:"platform"`
	ProductName    *string   `json:"product_name"`
	ProductURL     *string   `json:"product_url"`
	AffiliateURL   *string   `json:"affiliate_url"`
	CommissionRate *float64  `json:"commission_rate"`
	Price          *float64  `json:"price"`
	Category       *string   `json:"category"`
	Description    *string   `json:"description"`
	TrendingScore  *float64  `json:"trending_score"`
	IsAffiliate    *bool     `json:"is_affiliate"`
	Images         *[]string `json:"images"`
	Thumbnail      *string   `json:"thumbnail"`
}

func (in opportunityInput) apply(o *domain.Opportunity) {
	if in.Platform != nil {
		o.Platform = strings.TrimSpace(*in.Platform)
	}
	if in.ProductName != nil {
		o.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if in.ProductURL != nil {
		o.ProductURL = strings.TrimSpace(*in.ProductURL)
	}
	if in.AffiliateURL != nil {
		o.AffiliateURL = in.AffiliateURL
	}
	if in.CommissionRate != nil {
		o.CommissionRate = in.CommissionRate
	}
	if in.Price != nil {
		o.Price = in.Price
	}
	if in.Category != nil {
		o.Category = in.Category
	}
	if in.Description != nil {
		o.Description = in.Description
	}
	if in.TrendingScore != nil {
		o.TrendingScore = in.TrendingScore
	}
	if in.IsAffiliate != nil {
		o.IsAffiliate = *in.IsAffiliate
	}
	if in.Images != nil {
		o.Images = *in.Images
	}
	if in.Thumbnail != nil {
		o.Thumbnail = in.Thumbnail
	}
	if o.Images == nil {
		o.Images = []string{}
	}
}

func validateOpportunity(o *domain.Opportunity) string {
	switch {
	case o.ProductName == "":
		return "product_name is required"
	case o.ProductURL == "":
		return "product_url is required"
	}
	return ""
}

func (a *API) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := postgres.ListFilter{}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			a.error(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}
	if v := q.Get("is_affiliate"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "is_affiliate must be a boolean")
			return
		}
		filter.IsAffiliate = &b
	}

	list, err := a.Opportunities.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toOpportunityResponses(list))
}

func (a *API) CountOpportunities(w http.ResponseWriter, r *http.Request) {
	opportunities, err := a.Opportunities.CountAll(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	videos, err := a.Videos.CountAll(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]int64{"opportunities": opportunities, "videos": videos})
}

func (a *API) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	o, err := a.Opportunities.FindByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toOpportunityResponse(*o))
}

func (a *API) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var in opportunityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	o := domain.Opportunity{Platform: "manual", ScrapedAt: time.Now()}
	in.apply(&o)
	if msg := validateOpportunity(&o); msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}

	created, err := a.Opportunities.Create(r.Context(), &o)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !created {
		a.error(w, http.StatusConflict, "conflict", "an opportunity with this product_url already exists")
		return
	}
	a.json(w, http.StatusCreated, toOpportunityResponse(o))
}

func (a *API) UpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	var in opportunityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	o, err := a.Opportunities.FindByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	in.apply(o)
	if msg := validateOpportunity(o); msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	if err := a.Opportunities.Save(r.Context(), o); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toOpportunityResponse(*o))
}

func (a *API) DeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	if err := a.Opportunities.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type videoResponse struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Script        string    `json:"script"`
	VideoPath     string    `json:"video_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Duration      int       `json:"duration_seconds"`
	Style         string    `json:"style"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toVideoResponse(v domain.Video) videoResponse {
	return videoResponse{
		ID:            v.ID,
		OpportunityID: v.OpportunityID,
		Title:         v.Title,
		Description:   v.Description,
		Script:        v.Script,
		VideoPath:     v.VideoPath,
		ThumbnailPath: v.ThumbnailPath,
		Duration:      v.Duration,
		Style:         v.Style,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
	}
}

func (a *API) ListVideos(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	videos, err := a.Videos.ListByOpportunity(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := make([]videoResponse, len(videos))
	for i, v := range videos {
		out[i] = toVideoResponse(v)
	}
	a.json(w, http.StatusOK, out)
}

func (a *API) GenerateOrganicIdeas(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	created, err := a.Ideas.GenerateOrganicIdeas(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toOpportunityResponses(created))
}

func (a *API) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "id must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}
