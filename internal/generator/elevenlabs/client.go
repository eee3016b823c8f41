package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shorts_pipeline/internal/domain"
)

const (
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	DefaultModelID = "eleven_monolingual_v1"

	narrationFile = "narration.mp3"
)

type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
	Timeout time.Duration
}

// Client converts scripts to speech with the ElevenLabs text-to-speech API.
type Client struct {
	apiKey     string
	voiceID    string
	modelID    string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io/v1"
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		voiceID:    cfg.VoiceID,
		modelID:    cfg.ModelID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "elevenlabs"),
	}
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize writes the narration for script into outDir and returns its path.
func (c *Client) Synthesize(ctx context.Context, script, outDir string) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", fmt.Errorf("synthesize: empty script: %w", domain.ErrEmptyContent)
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("elevenlabs api key not configured: %w", domain.ErrCapabilityUnavailable)
	}

	body, err := json.Marshal(ttsRequest{
		Text:          script,
		ModelID:       c.modelID,
		VoiceSettings: voiceSettings{Stability: 0.5, SimilarityBoost: 0.5},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("execute request: %w: %w", domain.ErrCapabilityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("elevenlabs status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(msg)), domain.ErrCapabilityUnavailable)
	}

	path := filepath.Join(outDir, narrationFile)
	n, err := writeFile(path, resp.Body)
	if err != nil {
		return "", err
	}
	if n == 0 {
		_ = os.Remove(path)
		return "", fmt.Errorf("elevenlabs returned no audio: %w", domain.ErrCapabilityUnavailable)
	}

	c.logger.Info("narration synthesized", "path", path, "bytes", n, "voice_id", c.voiceID)
	return path, nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create audio file: %w", err)
	}

	n, copyErr := io.Copy(file, r)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write audio file: %w", err)
	}
	return n, nil
}
