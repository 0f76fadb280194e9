// Package imaging re-encodes story photos so they fit the upload limits of
// the story API.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxBytes is the upload ceiling of the story API.
	DefaultMaxBytes = 1_000_000
	// DefaultMaxDimension bounds the longer edge of the output.
	DefaultMaxDimension = 1600

	startQuality = 100
	qualityStep  = 5
	minQuality   = 5
	shrinkFactor = 0.75
	maxShrinks   = 8
)

var ErrCannotFit = errors.New("image cannot be reduced under the size limit")

// JPEGTransform decodes an image, scales it down to MaxDimension and encodes
// it as JPEG, stepping quality down by 5 until the file is at most MaxBytes.
// If the lowest quality is still too large the image is shrunk and the
// quality search starts over.
type JPEGTransform struct {
	MaxBytes     int
	MaxDimension int
	// OutDir receives the re-encoded files; os.TempDir() when empty.
	OutDir string
}

func NewJPEGTransform(maxBytes, maxDimension int, outDir string) *JPEGTransform {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &JPEGTransform{MaxBytes: maxBytes, MaxDimension: maxDimension, OutDir: outDir}
}

// Transform writes the reduced JPEG next to the other outputs and returns its
// path. The source file is left untouched.
func (t *JPEGTransform) Transform(srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img := scaleToFit(src, t.MaxDimension)

	data, err := t.encodeUnderLimit(img)
	if err != nil {
		return "", err
	}

	dir := t.OutDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	out := filepath.Join(dir, uuid.NewString()+".jpg")
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return out, nil
}

func (t *JPEGTransform) encodeUnderLimit(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	for shrink := 0; shrink <= maxShrinks; shrink++ {
		for q := startQuality; q >= minQuality; q -= qualityStep {
			buf.Reset()
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
				return nil, fmt.Errorf("failed to encode JPEG: %w", err)
			}
			if buf.Len() <= t.MaxBytes {
				return buf.Bytes(), nil
			}
		}
		img = scaleBy(img, shrinkFactor)
	}

	return nil, fmt.Errorf("%w: %d bytes", ErrCannotFit, t.MaxBytes)
}

// scaleToFit scales img so its longer edge is at most maxDim, preserving the
// aspect ratio. It never upscales.
func scaleToFit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	longer := w
	if h > longer {
		longer = h
	}
	return scaleBy(img, float64(maxDim)/float64(longer))
}

func scaleBy(img image.Image, ratio float64) image.Image {
	b := img.Bounds()
	newW := max(1, int(float64(b.Dx())*ratio))
	newH := max(1, int(float64(b.Dy())*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
