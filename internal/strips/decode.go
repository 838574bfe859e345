package strips

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const dataURLMarker = "data:image"

// DecodeStrip turns one base64 payload into a raster image. A data-URL
// header ("data:image/<subtype>;base64,") is removed before decoding;
// everything up to and including the first comma goes.
func DecodeStrip(encoded string) (image.Image, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, dataURLMarker) {
		if idx := strings.IndexByte(payload, ','); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	if payload == "" {
		return nil, errors.New("empty payload")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
