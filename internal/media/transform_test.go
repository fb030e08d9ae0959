package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refugio-dev/refugio/internal/config"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return img
}

func newTestTransformer(cfg config.Media, watermark image.Image) *Transformer {
	if cfg.WatermarkOpacity < 0 {
		cfg.WatermarkOpacity = 0
	}
	if cfg.WatermarkOpacity > 1 {
		cfg.WatermarkOpacity = 1
	}
	return &Transformer{cfg: cfg, watermark: watermark}
}

func TestNewTransformer(t *testing.T) {
	t.Run("empty watermark path disables the stage", func(t *testing.T) {
		tr, err := NewTransformer(config.Media{MaxWidth: 900, MaxHeight: 600, WatermarkOpacity: 0.6})
		require.NoError(t, err)

		input := encodePNG(t, solidImage(100, 100, color.NRGBA{200, 200, 200, 255}))
		result, err := tr.Transform(input)
		require.NoError(t, err)
		assert.Equal(t, 100, result.Width)
	})

	t.Run("watermark asset loaded from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watermark.png")
		wm := encodePNG(t, solidImage(10, 10, color.NRGBA{0, 0, 0, 255}))
		require.NoError(t, os.WriteFile(path, wm, 0o644))

		tr, err := NewTransformer(config.Media{MaxWidth: 900, MaxHeight: 600, WatermarkPath: path, WatermarkOpacity: 1})
		require.NoError(t, err)
		require.NotNil(t, tr.watermark)
	})

	t.Run("missing watermark asset errors", func(t *testing.T) {
		_, err := NewTransformer(config.Media{MaxWidth: 900, MaxHeight: 600, WatermarkPath: "does/not/exist.png"})
		assert.Error(t, err)
	})

	t.Run("undecodable watermark asset errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watermark.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

		_, err := NewTransformer(config.Media{MaxWidth: 900, MaxHeight: 600, WatermarkPath: path})
		assert.Error(t, err)
	})
}

func TestTransformBoundsDimensions(t *testing.T) {
	tr := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600}, nil)

	input := encodePNG(t, solidImage(1800, 600, color.NRGBA{200, 200, 200, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	assert.Equal(t, 900, result.Width)
	assert.Equal(t, 300, result.Height)
	assert.Equal(t, "image/jpeg", result.MimeType)

	decoded := decodeJPEG(t, result.Bytes)
	assert.Equal(t, 900, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestTransformNeverUpscales(t *testing.T) {
	tr := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600}, nil)

	input := encodePNG(t, solidImage(200, 100, color.NRGBA{200, 200, 200, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	assert.Equal(t, 200, result.Width)
	assert.Equal(t, 100, result.Height)
}

func TestTransformHeightBound(t *testing.T) {
	tr := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600}, nil)

	input := encodePNG(t, solidImage(300, 1200, color.NRGBA{10, 10, 10, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	assert.Equal(t, 150, result.Width)
	assert.Equal(t, 600, result.Height)
}

func TestTransformCorruptInput(t *testing.T) {
	tr := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600}, nil)

	result, err := tr.Transform([]byte("definitely not an image"))
	assert.Nil(t, result)

	var transformErr *TransformError
	assert.ErrorAs(t, err, &transformErr)
}

func TestWatermarkOpacityZeroMatchesPlainResize(t *testing.T) {
	watermark := solidImage(20, 20, color.NRGBA{255, 0, 0, 255})
	input := encodePNG(t, solidImage(100, 100, color.NRGBA{255, 255, 255, 255}))

	plain := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600}, nil)
	marked := newTestTransformer(config.Media{MaxWidth: 900, MaxHeight: 600, WatermarkOpacity: 0}, watermark)

	plainResult, err := plain.Transform(input)
	require.NoError(t, err)
	markedResult, err := marked.Transform(input)
	require.NoError(t, err)

	assert.Equal(t, plainResult.Bytes, markedResult.Bytes)
}

func TestWatermarkOpacityOneFullFootprint(t *testing.T) {
	watermark := solidImage(10, 10, color.NRGBA{0, 0, 0, 255})
	tr := newTestTransformer(config.Media{
		MaxWidth:         900,
		MaxHeight:        600,
		WatermarkOpacity: 1,
		WatermarkCorner:  CornerSouthEast,
	}, watermark)

	input := encodePNG(t, solidImage(100, 100, color.NRGBA{255, 255, 255, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	decoded := decodeJPEG(t, result.Bytes)

	// Inside the watermark footprint: dark. JPEG compression allows tolerance.
	r, _, _, _ := decoded.At(95, 95).RGBA()
	assert.Less(t, r>>8, uint32(50), "watermark corner should be dark")

	// Far from the watermark: still white.
	r, _, _, _ = decoded.At(5, 5).RGBA()
	assert.Greater(t, r>>8, uint32(200), "opposite corner should stay white")
}

func TestWatermarkHalfOpacity(t *testing.T) {
	watermark := solidImage(10, 10, color.NRGBA{0, 0, 0, 255})
	tr := newTestTransformer(config.Media{
		MaxWidth:         900,
		MaxHeight:        600,
		WatermarkOpacity: 0.5,
		WatermarkCorner:  CornerSouthEast,
	}, watermark)

	input := encodePNG(t, solidImage(100, 100, color.NRGBA{255, 255, 255, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	decoded := decodeJPEG(t, result.Bytes)

	// Half-attenuated black over white lands mid-gray.
	r, _, _, _ := decoded.At(95, 95).RGBA()
	assert.InDelta(t, 127, int(r>>8), 30)
}

func TestWatermarkLargerThanCanvas(t *testing.T) {
	watermark := solidImage(20, 20, color.NRGBA{0, 0, 0, 255})
	tr := newTestTransformer(config.Media{
		MaxWidth:         900,
		MaxHeight:        600,
		WatermarkOpacity: 1,
		WatermarkCorner:  CornerSouthEast,
	}, watermark)

	// Canvas smaller than the watermark footprint: the overlay still
	// composites, clipped at the canvas edges.
	input := encodePNG(t, solidImage(8, 8, color.NRGBA{255, 255, 255, 255}))
	result, err := tr.Transform(input)
	require.NoError(t, err)

	decoded := decodeJPEG(t, result.Bytes)
	r, _, _, _ := decoded.At(4, 4).RGBA()
	assert.Less(t, r>>8, uint32(50))
}

func TestFitInside(t *testing.T) {
	cases := []struct {
		name                 string
		w, h, maxW, maxH     int
		expectedW, expectedH int
	}{
		{"within bounds", 100, 100, 900, 600, 100, 100},
		{"exactly at bounds", 900, 600, 900, 600, 900, 600},
		{"wide", 1800, 600, 900, 600, 900, 300},
		{"tall", 300, 1200, 900, 600, 150, 600},
		{"both over", 1800, 1200, 900, 600, 900, 600},
		{"unbounded axes", 5000, 4000, 0, 0, 5000, 4000},
		{"tiny result floors to 1", 2000, 1, 900, 600, 900, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := fitInside(tc.w, tc.h, tc.maxW, tc.maxH)
			assert.Equal(t, tc.expectedW, w)
			assert.Equal(t, tc.expectedH, h)
		})
	}
}

func TestCornerOffset(t *testing.T) {
	// 100x100 canvas, 10x10 watermark, 5px margins
	cases := map[string]image.Point{
		CornerNorthWest: image.Pt(5, 5),
		CornerNorthEast: image.Pt(85, 5),
		CornerSouthWest: image.Pt(5, 85),
		CornerSouthEast: image.Pt(85, 85),
		"":              image.Pt(85, 85), // southeast is the default
	}

	for corner, expected := range cases {
		assert.Equal(t, expected, cornerOffset(corner, 100, 100, 10, 10, 5, 5), corner)
	}
}
