package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
)

// ColorMode defines the color mode for rendering
type ColorMode string

const (
	ColorRGB  ColorMode = "rgb"
	ColorGray ColorMode = "gray"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 85

// JPEGMIMEType is the MIME type sent alongside rendered page images.
const JPEGMIMEType = "image/jpeg"

// EncodeJPEG encodes a rendered page image as JPEG, converting to
// grayscale first when requested. Returns JPEG bytes, width, height.
func EncodeJPEG(img image.Image, quality int, mode ColorMode) ([]byte, int, int, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var finalImg image.Image
	if mode == ColorGray {
		grayImg := image.NewGray(bounds)
		draw.Draw(grayImg, bounds, img, image.Point{}, draw.Src)
		finalImg = grayImg
	} else {
		// go-fitz output is already RGBA
		finalImg = img
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: quality}
	if err := jpeg.Encode(&buf, finalImg, opts); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), width, height, nil
}

// EncodeToBase64 converts binary data to base64 string
func EncodeToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
