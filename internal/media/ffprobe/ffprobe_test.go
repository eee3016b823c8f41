package ffprobe

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FormatDuration(t *testing.T) {
	result, err := Parse([]byte(`{
		"streams": [{"index": 0, "codec_type": "audio", "codec_name": "mp3", "duration": "12.000000"}],
		"format": {"filename": "narration.mp3", "duration": "12.025000", "format_name": "mp3"}
	}`))
	require.NoError(t, err)

	assert.InDelta(t, 12.025, result.DurationSeconds(), 1e-9)
	assert.False(t, result.HasVideo())
}

func TestResult_DurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Duration: "9.5"},
			{CodecType: "audio", Duration: "10.25"},
		},
		Format: Format{Duration: "N/A"},
	}

	assert.Equal(t, 10.25, result.DurationSeconds())
	assert.True(t, result.HasVideo())
}

func TestResult_DurationUnparsable(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}

	assert.True(t, math.IsNaN(result.DurationSeconds()))
}

func TestResult_DurationMissing(t *testing.T) {
	assert.Zero(t, Result{}.DurationSeconds())
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestInspect_EmptyPath(t *testing.T) {
	_, err := Inspect(context.Background(), "ffprobe", "  ")
	assert.Error(t, err)
}
