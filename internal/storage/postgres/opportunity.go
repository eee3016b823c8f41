package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"shorts_pipeline/internal/domain"
)

const uniqueViolation = "23505"

const opportunityColumns = `
	id, platform, product_name, product_url, affiliate_url, commission_rate, price,
	category, description, trending_score, is_affiliate, images, thumbnail,
	last_used_at, scraped_at, created_at, updated_at`

type opportunityRow struct {
	ID             uuid.UUID       `db:"id"`
	Platform       string          `db:"platform"`
	ProductName    string          `db:"product_name"`
	ProductURL     string          `db:"product_url"`
	AffiliateURL   sql.NullString  `db:"affiliate_url"`
	CommissionRate sql.NullFloat64 `db:"commission_rate"`
	Price          sql.NullFloat64 `db:"price"`
	Category       sql.NullString  `db:"category"`
	Description    sql.NullString  `db:"description"`
	TrendingScore  sql.NullFloat64 `db:"trending_score"`
	IsAffiliate    bool            `db:"is_affiliate"`
	Images         pq.StringArray  `db:"images"`
	Thumbnail      sql.NullString  `db:"thumbnail"`
	LastUsedAt     sql.NullTime    `db:"last_used_at"`
	ScrapedAt      time.Time       `db:"scraped_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r opportunityRow) toDomain() domain.Opportunity {
	o := domain.Opportunity{
		ID:          r.ID,
		Platform:    r.Platform,
		ProductName: r.ProductName,
		ProductURL:  r.ProductURL,
		IsAffiliate: r.IsAffiliate,
		Images:      []string(r.Images),
		ScrapedAt:   r.ScrapedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if o.Images == nil {
		o.Images = []string{}
	}
	if r.AffiliateURL.Valid {
		o.AffiliateURL = &r.AffiliateURL.String
	}
	if r.CommissionRate.Valid {
		o.CommissionRate = &r.CommissionRate.Float64
	}
	if r.Price.Valid {
		o.Price = &r.Price.Float64
	}
	if r.Category.Valid {
		o.Category = &r.Category.String
	}
	if r.Description.Valid {
		o.Description = &r.Description.String
	}
	if r.TrendingScore.Valid {
		o.TrendingScore = &r.TrendingScore.Float64
	}
	if r.Thumbnail.Valid {
		o.Thumbnail = &r.Thumbnail.String
	}
	if r.LastUsedAt.Valid {
		t := r.LastUsedAt.Time
		o.LastUsedAt = &t
	}
	return o
}

// ListFilter narrows List. A nil IsAffiliate lists both pools.
type ListFilter struct {
	IsAffiliate *bool
	Limit       int
	Offset      int
}

type OpportunityStore struct {
	db *sqlx.DB
}

func NewOpportunityStore(db *sqlx.DB) *OpportunityStore {
	return &OpportunityStore{db: db}
}

func (s *OpportunityStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var row opportunityRow
	query := `SELECT` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("opportunity %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find opportunity: %w", err)
	}

	o := row.toDomain()
	return &o, nil
}

// Create inserts a new opportunity. It returns false without error when an
// opportunity with the same product URL already exists.
func (s *OpportunityStore) Create(ctx context.Context, o *domain.Opportunity) (bool, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now().UTC()
	if o.ScrapedAt.IsZero() {
		o.ScrapedAt = now
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Images == nil {
		o.Images = []string{}
	}

	query := `
		INSERT INTO opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		o.ID,
		o.Platform,
		o.ProductName,
		o.ProductURL,
		o.AffiliateURL,
		o.CommissionRate,
		o.Price,
		o.Category,
		o.Description,
		o.TrendingScore,
		o.IsAffiliate,
		pq.StringArray(o.Images),
		o.Thumbnail,
		o.LastUsedAt,
		o.ScrapedAt,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert opportunity: %w", err)
	}
	return true, nil
}

// Save updates every mutable column of an existing opportunity.
func (s *OpportunityStore) Save(ctx context.Context, o *domain.Opportunity) error {
	o.UpdatedAt = time.Now().UTC()
	if o.Images == nil {
		o.Images = []string{}
	}

	query := `
		UPDATE opportunities SET
			platform = $2,
			product_name = $3,
			product_url = $4,
			affiliate_url = $5,
			commission_rate = $6,
			price = $7,
			category = $8,
			description = $9,
			trending_score = $10,
			is_affiliate = $11,
			images = $12,
			thumbnail = $13,
			last_used_at = $14,
			updated_at = $15
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		o.ID,
		o.Platform,
		o.ProductName,
		o.ProductURL,
		o.AffiliateURL,
		o.CommissionRate,
		o.Price,
		o.Category,
		o.Description,
		o.TrendingScore,
		o.IsAffiliate,
		pq.StringArray(o.Images),
		o.Thumbnail,
		o.LastUsedAt,
		o.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("update opportunity: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	return expectAffected(res, o.ID)
}

func (s *OpportunityStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	return expectAffected(res, id)
}

// SelectRandom picks one opportunity uniformly at random from pool.
func (s *OpportunityStore) SelectRandom(ctx context.Context, pool domain.Pool, opts domain.SelectOptions) (*domain.Opportunity, error) {
	var (
		conds = []string{"is_affiliate = $1"}
		args  = []any{pool.IsAffiliate()}
	)
	if opts.ExcludeUsed {
		conds = append(conds, "last_used_at IS NULL")
	}
	if len(opts.ExcludeIDs) > 0 {
		ids := make([]string, len(opts.ExcludeIDs))
		for i, id := range opts.ExcludeIDs {
			ids[i] = id.String()
		}
		args = append(args, pq.Array(ids))
		conds = append(conds, fmt.Sprintf("id <> ALL($%d::uuid[])", len(args)))
	}

	query := `SELECT` + opportunityColumns + ` FROM opportunities
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY random()
		LIMIT 1`

	var row opportunityRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s pool is empty: %w", pool, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select random opportunity: %w", err)
	}

	o := row.toDomain()
	return &o, nil
}

func (s *OpportunityStore) SelectRandomAffiliate(ctx context.Context) (*domain.Opportunity, error) {
	return s.SelectRandom(ctx, domain.PoolAffiliate, domain.SelectOptions{})
}

func (s *OpportunityStore) SelectRandomOrganic(ctx context.Context) (*domain.Opportunity, error) {
	return s.SelectRandom(ctx, domain.PoolOrganic, domain.SelectOptions{})
}

// MarkUsed sets last_used_at to at. Repeated calls only move the timestamp.
func (s *OpportunityStore) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE opportunities SET last_used_at = $2, updated_at = $2 WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, at.UTC())
	if err != nil {
		return fmt.Errorf("mark opportunity used: %w", err)
	}
	return expectAffected(res, id)
}

func (s *OpportunityStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count, `SELECT COUNT(*) FROM opportunities`); err != nil {
		return 0, fmt.Errorf("count opportunities: %w", err)
	}
	return count, nil
}

func (s *OpportunityStore) ExistsByProductURL(ctx context.Context, productURL string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM opportunities WHERE product_url = $1)`
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists, query, productURL); err != nil {
		return false, fmt.Errorf("check product url: %w", err)
	}
	return exists, nil
}

func (s *OpportunityStore) List(ctx context.Context, filter ListFilter) ([]domain.Opportunity, error) {
	var (
		where string
		args  []any
	)
	if filter.IsAffiliate != nil {
		args = append(args, *filter.IsAffiliate)
		where = "WHERE is_affiliate = $1"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(`SELECT %s FROM opportunities %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`, opportunityColumns, where, len(args)-1, len(args))

	var rows []opportunityRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	result := make([]domain.Opportunity, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func expectAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("opportunity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
