package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shorts_pipeline/internal/domain"
)

type Config struct {
	Width             int
	Height            int
	FPS               int
	MinSegmentSeconds float64
	MaxOverlays       int
	FontFile          string
}

// Request describes one slideshow. Images are composed in the given order.
type Request struct {
	AudioPath string
	Images    []string
	// Captions are generated overlay lines; empty selects the rule-based set.
	Captions  []string
	Subject   Subject
	WorkDir   string // intermediates, removed after composition
	OutputDir string
	Name      string // base name of the final video and thumbnail
}

type Output struct {
	VideoPath     string
	ThumbnailPath string
	Duration      float64
	Segments      int
	Dropped       int
}

// Composer renders a narrated slideshow with ffmpeg.
type Composer struct {
	runner Runner
	prober Prober
	cfg    Config
	logger *slog.Logger
}

func NewComposer(runner Runner, prober Prober, cfg Config, logger *slog.Logger) *Composer {
	if cfg.MaxOverlays < 1 {
		cfg.MaxOverlays = 5
	}
	return &Composer{
		runner: runner,
		prober: prober,
		cfg:    cfg,
		logger: logger.With("component", "composer"),
	}
}

func (c *Composer) Compose(ctx context.Context, req Request) (*Output, error) {
	logger := c.logger.With("name", req.Name)

	narration, err := c.prober.Duration(ctx, req.AudioPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("narration duration unavailable", "error", err)
		narration = math.NaN()
	}

	images := req.Images
	if len(images) == 0 {
		return nil, fmt.Errorf("no images: %w", domain.ErrCompositionFatal)
	}
	timing := Plan(narration, len(images), c.cfg.MinSegmentSeconds)

	var global []Overlay
	if len(req.Captions) > 0 {
		global = AIOverlays(req.Captions, timing.Total, c.cfg.MaxOverlays)
	}

	var intermediates []string
	defer func() {
		c.cleanup(logger, intermediates)
	}()

	var segments []string
	for i, img := range images {
		overlays := FallbackOverlays(i, timing.PerSegment, req.Subject)
		if len(global) > 0 {
			overlays = SegmentOverlays(global, timing.Start(i), timing.PerSegment)
		}

		segment := filepath.Join(req.WorkDir, fmt.Sprintf("segment-%02d.mp4", i))
		intermediates = append(intermediates, segment)

		if err := c.renderSegment(ctx, img, segment, timing.PerSegment, overlays); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("dropping segment", "index", i, "image", img, "error", err)
			continue
		}
		segments = append(segments, segment)
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("all %d segments failed: %w", len(images), domain.ErrCompositionFatal)
	}

	listFile := filepath.Join(req.WorkDir, "segments.txt")
	silent := filepath.Join(req.WorkDir, "slideshow.mp4")
	intermediates = append(intermediates, listFile, silent)

	if err := writeConcatList(listFile, segments); err != nil {
		return nil, err
	}
	if err := c.runner.Run(ctx, concatArgs(listFile, silent)); err != nil {
		return nil, c.fatal(ctx, "concat segments", err)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	videoPath := filepath.Join(req.OutputDir, req.Name+".mp4")
	thumbPath := filepath.Join(req.OutputDir, req.Name+".jpg")

	if err := c.runner.Run(ctx, muxArgs(silent, req.AudioPath, videoPath)); err != nil {
		removeQuietly(videoPath)
		return nil, c.fatal(ctx, "mux narration", err)
	}

	duration, err := c.prober.Duration(ctx, videoPath)
	if err != nil || math.IsNaN(duration) || duration <= 0 {
		if ctx.Err() != nil {
			removeQuietly(videoPath)
			return nil, ctx.Err()
		}
		logger.Warn("final duration unavailable, using plan", "error", err, "planned", timing.Total)
		duration = timing.Total
	}

	if err := c.runner.Run(ctx, thumbnailArgs(videoPath, thumbPath, duration*0.5, c.cfg.Width, c.cfg.Height)); err != nil {
		removeQuietly(videoPath)
		removeQuietly(thumbPath)
		return nil, c.fatal(ctx, "extract thumbnail", err)
	}

	out := &Output{
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		Duration:      duration,
		Segments:      len(segments),
		Dropped:       len(images) - len(segments),
	}

	logger.Info("video composed",
		"segments", out.Segments,
		"dropped", out.Dropped,
		"narration", narration,
		"duration", out.Duration,
	)

	return out, nil
}

func (c *Composer) renderSegment(ctx context.Context, image, out string, length float64, overlays []Overlay) error {
	if err := c.runner.Run(ctx, c.segmentArgs(image, out, length, overlays)); err != nil {
		return err
	}
	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("segment output: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("segment output is empty")
	}
	return nil
}

func (c *Composer) segmentArgs(image, out string, length float64, overlays []Overlay) []string {
	w, h := c.cfg.Width, c.cfg.Height
	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", w, h),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black", w, h),
		"setsar=1",
		"format=yuv420p",
	}
	for _, o := range overlays {
		filters = append(filters, drawtextFilter(o, c.cfg.FontFile))
	}

	return []string{
		"-loop", "1",
		"-i", image,
		"-t", formatSeconds(length),
		"-vf", strings.Join(filters, ","),
		"-r", strconv.Itoa(c.cfg.FPS),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-an",
		out,
	}
}

func concatArgs(listFile, out string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		out,
	}
}

func muxArgs(video, audio, out string) []string {
	return []string{
		"-i", video,
		"-i", audio,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		"-movflags", "+faststart",
		out,
	}
}

func thumbnailArgs(video, out string, at float64, w, h int) []string {
	return []string{
		"-ss", formatSeconds(at),
		"-i", video,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", w, h),
		"-q:v", "2",
		out,
	}
}

// writeConcatList writes an ffmpeg concat demuxer list in segment order.
func writeConcatList(path string, segments []string) error {
	var b strings.Builder
	for _, s := range segments {
		abs, err := filepath.Abs(s)
		if err != nil {
			return fmt.Errorf("resolve segment path: %w", err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func (c *Composer) fatal(ctx context.Context, step string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%s: %w: %w", step, domain.ErrCompositionFatal, err)
}

func (c *Composer) cleanup(logger *slog.Logger, paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove intermediate", "path", p, "error", err)
		}
	}
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
