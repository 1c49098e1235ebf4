package testutils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// PNG returns a valid PNG of the given size.
func PNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{G: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MinimalPNG returns a 1x1 PNG.
func MinimalPNG() []byte {
	return PNG(1, 1)
}
