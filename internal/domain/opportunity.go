package domain

import (
	"time"

	"github.com/google/uuid"
)

type Opportunity struct {
	ID             uuid.UUID
	Platform       string // source marketplace (e.g., "whop", "clickbank")
	ProductName    string
	ProductURL     string // dedup key
	AffiliateURL   *string
	CommissionRate *float64
	Price          *float64
	Category       *string
	Description    *string
	TrendingScore  *float64
	IsAffiliate    bool
	Images         []string
	Thumbnail      *string
	LastUsedAt     *time.Time
	ScrapedAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Pool selects which random-selection subset an opportunity belongs to.
type Pool int

const (
	PoolAffiliate Pool = iota
	PoolOrganic
)

func PoolFor(isAffiliate bool) Pool {
	if isAffiliate {
		return PoolAffiliate
	}
	return PoolOrganic
}

func (p Pool) IsAffiliate() bool {
	return p == PoolAffiliate
}

func (p Pool) String() string {
	if p == PoolAffiliate {
		return "affiliate"
	}
	return "organic"
}

// SelectOptions narrows random selection. The zero value selects from the
// whole pool, including opportunities that were already used.
type SelectOptions struct {
	ExcludeUsed bool
	ExcludeIDs  []uuid.UUID
}
