package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shorts_pipeline/internal/domain"
)

const videoColumns = `
	id, opportunity_id, title, description, script, video_path, thumbnail_path,
	duration, style, status, created_at, updated_at`

type videoRow struct {
	ID            uuid.UUID      `db:"id"`
	OpportunityID uuid.UUID      `db:"opportunity_id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Script        string         `db:"script"`
	VideoPath     string         `db:"video_path"`
	ThumbnailPath string         `db:"thumbnail_path"`
	Duration      int            `db:"duration"`
	Style         string         `db:"style"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r videoRow) toDomain() domain.Video {
	v := domain.Video{
		ID:            r.ID,
		OpportunityID: r.OpportunityID,
		Title:         r.Title,
		Script:        r.Script,
		VideoPath:     r.VideoPath,
		ThumbnailPath: r.ThumbnailPath,
		Duration:      r.Duration,
		Style:         r.Style,
		Status:        domain.VideoStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Description.Valid {
		v.Description = &r.Description.String
	}
	return v
}

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

func (s *VideoStore) Create(ctx context.Context, v *domain.Video) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		v.ID,
		v.OpportunityID,
		v.Title,
		v.Description,
		v.Script,
		v.VideoPath,
		v.ThumbnailPath,
		v.Duration,
		v.Style,
		string(v.Status),
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (s *VideoStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var row videoRow
	query := `SELECT` + videoColumns + ` FROM videos WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}

	v := row.toDomain()
	return &v, nil
}

func (s *VideoStore) ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]domain.Video, error) {
	query := `SELECT` + videoColumns + ` FROM videos WHERE opportunity_id = $1 ORDER BY created_at DESC`

	var rows []videoRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, opportunityID); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	result := make([]domain.Video, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *VideoStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count, `SELECT COUNT(*) FROM videos`); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}
