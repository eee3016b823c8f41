package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"net/http"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

const jpegQuality = 90

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Normalize returns image bytes ffmpeg can loop and draw on, together with
// the file extension to store them under. JPEG and PNG pass through, other
// recognised formats are re-encoded as baseline JPEG.
func Normalize(data []byte) ([]byte, string, error) {
	contentType := http.DetectContentType(data)

	var decode func([]byte) (image.Image, error)
	switch contentType {
	case "image/jpeg":
		return data, ".jpg", nil
	case "image/png":
		return data, ".png", nil
	case "image/webp":
		decode = func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) }
	case "image/bmp":
		decode = func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) }
	case "image/gif":
		decode = func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) }
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}

	img, err := decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", contentType, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), ".jpg", nil
}

var placeholderColor = color.RGBA{R: 0x14, G: 0x14, B: 0x1e, A: 0xff}

// WritePlaceholder writes a solid portrait JPEG of the given size to path.
func WritePlaceholder(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: placeholderColor}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode placeholder: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}
