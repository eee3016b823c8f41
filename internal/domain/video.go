package domain

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

type Video struct {
	ID            uuid.UUID
	OpportunityID uuid.UUID
	Title         string
	Description   *string
	Script        string
	VideoPath     string
	ThumbnailPath string
	Duration      int // seconds, rounded
	Style         string
	Status        VideoStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
