package testsupport

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// StripImage renders a solid-color image of the given size.
func StripImage(t testing.TB, width, height int, fill color.RGBA) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img
}

// PNGStrip encodes a solid-color image as a base64 PNG payload.
func PNGStrip(t testing.TB, width, height int, fill color.RGBA) string {
	t.Helper()
	return EncodePNG(t, StripImage(t, width, height, fill))
}

// EncodePNG base64-encodes img as PNG.
func EncodePNG(t testing.TB, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DataURLStrip wraps a PNG payload in a data URL header.
func DataURLStrip(t testing.TB, width, height int, fill color.RGBA) string {
	t.Helper()
	return "data:image/png;base64," + PNGStrip(t, width, height, fill)
}
