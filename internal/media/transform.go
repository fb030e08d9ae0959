package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/refugio-dev/refugio/internal/config"
)

// Watermark corners. Margins are measured from the chosen corner.
const (
	CornerNorthWest = "northwest"
	CornerNorthEast = "northeast"
	CornerSouthWest = "southwest"
	CornerSouthEast = "southeast"
)

const jpegQuality = 85

// TransformError marks a per-file pipeline failure. One bad file must not
// abort its batch siblings, so callers match on this type and drop the file.
type TransformError struct {
	Cause error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("image transform failed: %v", e.Cause)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// TransformResult is the display-ready encoding of one uploaded file.
type TransformResult struct {
	Bytes    []byte
	Width    int
	Height   int
	MimeType string
}

// Transformer turns raw uploaded image bytes into a bounded, watermarked
// JPEG. It is pure over bytes: no network, no persistence.
type Transformer struct {
	cfg       config.Media
	watermark image.Image
}

// NewTransformer loads the watermark asset once at startup. An opacity
// outside [0,1] is clamped.
func NewTransformer(cfg config.Media) (*Transformer, error) {
	var watermark image.Image
	if cfg.WatermarkPath != "" {
		f, err := os.Open(cfg.WatermarkPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open watermark asset %s: %w", cfg.WatermarkPath, err)
		}
		defer f.Close()
		watermark, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode watermark asset %s: %w", cfg.WatermarkPath, err)
		}
	}
	cfg.WatermarkOpacity = math.Min(math.Max(cfg.WatermarkOpacity, 0), 1)
	return &Transformer{cfg: cfg, watermark: watermark}, nil
}

// Transform decodes raw bytes, resizes to fit inside the configured bounds
// without upscaling, composites the watermark and re-encodes as JPEG.
// Any decode failure is a *TransformError; no partial output is returned.
func (t *Transformer) Transform(raw []byte) (*TransformResult, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &TransformError{Cause: err}
	}

	canvas := t.resize(src)
	t.composite(canvas)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, &TransformError{Cause: err}
	}

	bounds := canvas.Bounds()
	return &TransformResult{
		Bytes:    buf.Bytes(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: "image/jpeg",
	}, nil
}

// resize scales src so neither dimension exceeds the configured maximum,
// preserving aspect ratio. Images already within bounds are copied, never
// upscaled.
func (t *Transformer) resize(src image.Image) *image.NRGBA {
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	targetW, targetH := fitInside(w, h, t.cfg.MaxWidth, t.cfg.MaxHeight)

	dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	if targetW == w && targetH == h {
		draw.Draw(dst, dst.Bounds(), src, srcBounds.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, srcBounds, xdraw.Src, nil)
	}
	return dst
}

// composite overlays the watermark at the configured corner. The
// watermark's own alpha is attenuated by the configured opacity. A canvas
// smaller than the watermark footprint still composites; the overflow is
// clipped at the canvas edges.
func (t *Transformer) composite(canvas *image.NRGBA) {
	if t.watermark == nil || t.cfg.WatermarkOpacity == 0 {
		return
	}

	wmBounds := t.watermark.Bounds()
	offset := cornerOffset(
		t.cfg.WatermarkCorner,
		canvas.Bounds().Dx(), canvas.Bounds().Dy(),
		wmBounds.Dx(), wmBounds.Dy(),
		t.cfg.WatermarkMarginX, t.cfg.WatermarkMarginY,
	)
	rect := wmBounds.Sub(wmBounds.Min).Add(offset)

	if t.cfg.WatermarkOpacity >= 1 {
		draw.Draw(canvas, rect, t.watermark, wmBounds.Min, draw.Over)
		return
	}

	alpha := uint8(math.Round(t.cfg.WatermarkOpacity * 255))
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(canvas, rect, t.watermark, wmBounds.Min, mask, image.Point{}, draw.Over)
}

// fitInside returns the largest dimensions not exceeding the maxima that
// preserve the w:h ratio. Non-positive maxima leave that axis unbounded.
func fitInside(w, h, maxW, maxH int) (int, int) {
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && float64(h)*scale > float64(maxH) {
		scale = float64(maxH) / float64(h)
	}
	if scale >= 1 {
		return w, h
	}
	targetW := int(math.Round(float64(w) * scale))
	targetH := int(math.Round(float64(h) * scale))
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}
	return targetW, targetH
}

func cornerOffset(corner string, canvasW, canvasH, wmW, wmH, marginX, marginY int) image.Point {
	switch corner {
	case CornerNorthWest:
		return image.Pt(marginX, marginY)
	case CornerNorthEast:
		return image.Pt(canvasW-wmW-marginX, marginY)
	case CornerSouthWest:
		return image.Pt(marginX, canvasH-wmH-marginY)
	default: // southeast
		return image.Pt(canvasW-wmW-marginX, canvasH-wmH-marginY)
	}
}
