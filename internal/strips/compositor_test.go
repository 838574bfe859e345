package strips

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"restitch/internal/testsupport"
)

type captureReporter struct {
	decoded []string
	skipped []int
}

func (r *captureReporter) StripDecoded(index, width, height int) {
	r.decoded = append(r.decoded, fmt.Sprintf("%d:%dx%d", index, width, height))
}

func (r *captureReporter) StripSkipped(index int, err error) {
	r.skipped = append(r.skipped, index)
}

func TestCombineStacksStrips(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	batch := []string{
		testsupport.PNGStrip(t, 5, 10, red),
		testsupport.PNGStrip(t, 8, 20, green),
		testsupport.PNGStrip(t, 3, 30, blue),
	}

	composite, err := Combine(batch, nil)
	if err != nil {
		t.Fatal(err)
	}
	if composite.Width() != 8 || composite.Height() != 60 {
		t.Fatalf("canvas size %dx%d, want 8x60", composite.Width(), composite.Height())
	}
	if composite.Decoded != 3 || composite.Skipped != 0 {
		t.Fatalf("decoded=%d skipped=%d, want 3/0", composite.Decoded, composite.Skipped)
	}

	black := color.RGBA{A: 255}
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red}, {4, 9, red},
		{5, 0, black}, {7, 9, black}, // right of the narrow first strip
		{0, 10, green}, {7, 29, green},
		{0, 30, blue}, {2, 59, blue},
		{3, 30, black}, {7, 59, black}, // right of the narrow third strip
	}
	for _, c := range checks {
		if got := composite.Image.RGBAAt(c.x, c.y); got != c.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestCombineSkipsBadStripWithoutGap(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	batch := []string{
		testsupport.PNGStrip(t, 4, 10, red),
		"definitely-not-base64!",
		testsupport.PNGStrip(t, 4, 5, blue),
	}

	reporter := &captureReporter{}
	composite, err := Combine(batch, reporter)
	if err != nil {
		t.Fatal(err)
	}
	if composite.Width() != 4 || composite.Height() != 15 {
		t.Fatalf("canvas size %dx%d, want 4x15", composite.Width(), composite.Height())
	}
	if composite.Decoded != 2 || composite.Skipped != 1 {
		t.Fatalf("decoded=%d skipped=%d, want 2/1", composite.Decoded, composite.Skipped)
	}
	if len(composite.Failures) != 1 || composite.Failures[0].Index != 1 {
		t.Fatalf("unexpected failures: %v", composite.Failures)
	}

	// The third strip starts immediately after the first; no blank band.
	if got := composite.Image.RGBAAt(0, 9); got != red {
		t.Fatalf("pixel (0,9) = %v, want red", got)
	}
	if got := composite.Image.RGBAAt(0, 10); got != blue {
		t.Fatalf("pixel (0,10) = %v, want blue", got)
	}

	if len(reporter.skipped) != 1 || reporter.skipped[0] != 1 {
		t.Fatalf("reporter skipped %v, want [1]", reporter.skipped)
	}
	if len(reporter.decoded) != 2 {
		t.Fatalf("reporter decoded %v, want two entries", reporter.decoded)
	}
}

func TestCombineNothingDecodes(t *testing.T) {
	_, err := Combine([]string{"junk", "more junk"}, nil)
	if !errors.Is(err, ErrNoStrips) {
		t.Fatalf("expected ErrNoStrips, got %v", err)
	}
}

func TestCombineEmptyBatch(t *testing.T) {
	_, err := Combine(nil, nil)
	if !errors.Is(err, ErrNoStrips) {
		t.Fatalf("expected ErrNoStrips, got %v", err)
	}
}

func TestCombineDataURLEquivalence(t *testing.T) {
	green := color.RGBA{G: 255, A: 255}
	plain, err := Combine([]string{testsupport.PNGStrip(t, 6, 4, green)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	prefixed, err := Combine([]string{testsupport.DataURLStrip(t, 6, 4, green)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Width() != prefixed.Width() || plain.Height() != prefixed.Height() {
		t.Fatal("data URL prefix changed composite dimensions")
	}
	for y := 0; y < plain.Height(); y++ {
		for x := 0; x < plain.Width(); x++ {
			if plain.Image.RGBAAt(x, y) != prefixed.Image.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestCombineRoundTrip(t *testing.T) {
	// Slice a source image into row-aligned strips and reassemble it.
	source := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			source.SetRGBA(x, y, color.RGBA{R: uint8(40 * y), G: uint8(40 * x), B: 128, A: 255})
		}
	}

	var batch []string
	for _, band := range []image.Rectangle{
		image.Rect(0, 0, 6, 2),
		image.Rect(0, 2, 6, 5),
		image.Rect(0, 5, 6, 6),
	} {
		batch = append(batch, testsupport.EncodePNG(t, source.SubImage(band)))
	}

	composite, err := Combine(batch, nil)
	if err != nil {
		t.Fatal(err)
	}
	if composite.Width() != 6 || composite.Height() != 6 {
		t.Fatalf("canvas size %dx%d, want 6x6", composite.Width(), composite.Height())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got, want := composite.Image.RGBAAt(x, y), source.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
