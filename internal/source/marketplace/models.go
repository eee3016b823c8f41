package marketplace

// APIResponse is one page of a marketplace product feed.
type APIResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	Category       *string  `json:"category"`
	URL            string   `json:"url"`
	AffiliateURL   *string  `json:"affiliate_url"`
	CommissionRate *float64 `json:"commission_rate"`
	TrendingScore  *float64 `json:"trending_score"`
	// Gravity is ClickBank's popularity metric, roughly 0-100.
	Gravity   *float64 `json:"gravity"`
	Images    []string `json:"images"`
	Thumbnail *string  `json:"thumbnail"`
}
