package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	b := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(b, img, nil))
	return b.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	t.Run("valid jpeg", func(t *testing.T) {
		assert.NoError(t, p.ValidateImage(jpegBytes(t, 10, 10)))
	})

	t.Run("valid png", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		b := new(bytes.Buffer)
		require.NoError(t, png.Encode(b, img))
		assert.NoError(t, p.ValidateImage(b.Bytes()))
	})

	t.Run("not an image", func(t *testing.T) {
		assert.Error(t, p.ValidateImage([]byte("definitely not pixels")))
	})

	t.Run("too large", func(t *testing.T) {
		p := &ImageProcessor{MaxSize: 10, MaxWidth: 1600}
		assert.Error(t, p.ValidateImage(jpegBytes(t, 10, 10)))
	})
}

func TestNormalize(t *testing.T) {
	p := &ImageProcessor{MaxSize: 5 * 1024 * 1024, MaxWidth: 100}

	t.Run("small image kept at size", func(t *testing.T) {
		out, err := p.Normalize(jpegBytes(t, 50, 40))
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 50, cfg.Width)
	})

	t.Run("wide image scaled down", func(t *testing.T) {
		out, err := p.Normalize(jpegBytes(t, 400, 200))
		require.NoError(t, err)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Width)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := p.Normalize([]byte("nope"))
		assert.Error(t, err)
	})
}
