package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts_pipeline/internal/domain"
)

func TestNewVideoMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.FixedZone("CET", 3600))
	video := &domain.Video{
		ID:            uuid.New(),
		OpportunityID: uuid.New(),
		Title:         "Thing - Viral Video",
		VideoPath:     "/out/v.mp4",
		ThumbnailPath: "/out/v.jpg",
		Duration:      12,
		Style:         "meme-style",
	}

	msg := NewVideoMessage(video, "instagram", at)

	assert.Equal(t, EventVideoCompleted, msg.Event)
	assert.Equal(t, "instagram", msg.Platform)
	assert.Equal(t, video.ID, msg.VideoID)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, float64(12), fields["duration_seconds"])
	assert.Equal(t, "/out/v.mp4", fields["video_path"])
	assert.NotContains(t, fields, "description")
}
