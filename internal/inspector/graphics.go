package inspector

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"

	"github.com/s2tools/s2ui/pkg/tga"
)

// DecodeGraphic decodes an image resource. Game graphics are predominantly
// TGA, which the stdlib registry does not know, so TGA is tried after the
// registered formats (PNG, JPEG, BMP).
func DecodeGraphic(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	img, tgaErr := tga.Decode(bytes.NewReader(data))
	if tgaErr != nil {
		return nil, fmt.Errorf("decoding graphic: %w", tgaErr)
	}
	return img, nil
}

// EncodePNG serializes an image as PNG for the browser, which cannot
// display TGA.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// ButtonNormalState crops a button graphic to its "normal" state. Button
// bitmaps store four states side by side; the second quarter is the one
// shown at rest.
func ButtonNormalState(img image.Image) image.Image {
	b := img.Bounds()
	quarter := b.Dx() / 4
	if quarter < 1 {
		return img
	}
	return transform.Crop(clone.AsRGBA(img), image.Rect(b.Min.X+quarter, b.Min.Y, b.Min.X+2*quarter, b.Max.Y))
}

// Placeholder returns the swatch served when a referenced graphic is
// missing from every loaded package.
func Placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	red := color.RGBA{R: 0xC0, A: 0xFF}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, red)
		}
	}
	return img
}
