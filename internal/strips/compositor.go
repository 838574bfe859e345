package strips

import (
	"image"
	"image/color"
	"image/draw"
)

// Composite is the result of stacking one batch of decoded strips.
type Composite struct {
	Image    *image.RGBA
	Decoded  int
	Skipped  int
	Failures []*StripError
}

// Width returns the canvas width (the widest decoded strip).
func (c *Composite) Width() int { return c.Image.Bounds().Dx() }

// Height returns the canvas height (sum of decoded strip heights).
func (c *Composite) Height() int { return c.Image.Bounds().Dy() }

// Combine decodes every payload in batch and stacks the results
// top-to-bottom in batch order. Strips that fail to decode are reported and
// skipped; the survivors close ranks without a gap. The canvas is as wide as
// the widest strip and as tall as the surviving heights summed; narrower
// strips sit left-justified over an opaque black background.
//
// ErrNoStrips comes back when nothing decodes, including for an empty
// batch; callers that care about the difference inspect len(batch).
func Combine(batch []string, reporter Reporter) (*Composite, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}

	images := make([]image.Image, 0, len(batch))
	var failures []*StripError
	for i, payload := range batch {
		img, err := DecodeStrip(payload)
		if err != nil {
			failures = append(failures, &StripError{Index: i, Err: err})
			reporter.StripSkipped(i, err)
			continue
		}
		images = append(images, img)
		bounds := img.Bounds()
		reporter.StripDecoded(i, bounds.Dx(), bounds.Dy())
	}

	if len(images) == 0 {
		return nil, ErrNoStrips
	}

	var width, height int
	for _, img := range images {
		bounds := img.Bounds()
		if bounds.Dx() > width {
			width = bounds.Dx()
		}
		height += bounds.Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	y := 0
	for _, img := range images {
		bounds := img.Bounds()
		target := image.Rect(0, y, bounds.Dx(), y+bounds.Dy())
		draw.Draw(canvas, target, img, bounds.Min, draw.Src)
		y += bounds.Dy()
	}

	return &Composite{
		Image:    canvas,
		Decoded:  len(images),
		Skipped:  len(failures),
		Failures: failures,
	}, nil
}
