package compose

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

const outputTailBytes = 2048

// Runner executes one ffmpeg invocation. The last argument is always the
// output file.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// Prober reports the duration in seconds of a media file.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

type FFmpeg struct {
	binary string
	logger *slog.Logger
}

func NewFFmpeg(binary string, logger *slog.Logger) *FFmpeg {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary, logger: logger}
}

func (f *FFmpeg) Run(ctx context.Context, args []string) error {
	full := append([]string{"-hide_banner", "-loglevel", "error", "-y"}, args...)
	f.logger.Debug("running ffmpeg", "args", full)

	cmd := exec.CommandContext(ctx, f.binary, full...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(out.String()))
	}
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > outputTailBytes {
		return "..." + s[len(s)-outputTailBytes:]
	}
	return s
}
