// Package tga decodes Targa images, the format the game stores most UI
// graphics in. Supports uncompressed and RLE true-color images (types 2
// and 10) at 24 or 32 bits per pixel, either vertical origin.
package tga

import (
	"errors"
	"fmt"
	"image"
	"io"
)

// TGA format errors.
var (
	ErrUnsupportedType  = errors.New("unsupported TGA image type")
	ErrUnsupportedDepth = errors.New("unsupported TGA pixel depth")
	ErrTruncatedData    = errors.New("truncated TGA data")
	ErrInvalidSize      = errors.New("invalid TGA dimensions")
)

const (
	typeTrueColor    = 2
	typeTrueColorRLE = 10

	// descriptor bit 5: origin at top-left instead of bottom-left
	descTopOrigin = 0x20
)

// Decode reads a TGA image and returns it as NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	header := make([]byte, 18)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrTruncatedData
	}

	idLength := int(header[0])
	imageType := header[2]
	width := int(header[12]) | int(header[13])<<8
	height := int(header[14]) | int(header[15])<<8
	depth := int(header[16])
	descriptor := header[17]

	if imageType != typeTrueColor && imageType != typeTrueColorRLE {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedType, imageType)
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("%w: %d bpp", ErrUnsupportedDepth, depth)
	}
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}

	if idLength > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(idLength)); err != nil {
			return nil, ErrTruncatedData
		}
	}

	bytesPerPixel := depth / 8
	pixelCount := width * height

	var pixels []byte
	var err error
	if imageType == typeTrueColorRLE {
		pixels, err = readRLE(r, pixelCount, bytesPerPixel)
	} else {
		pixels = make([]byte, pixelCount*bytesPerPixel)
		if _, e := io.ReadFull(r, pixels); e != nil {
			err = ErrTruncatedData
		}
	}
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	topDown := descriptor&descTopOrigin != 0

	for y := 0; y < height; y++ {
		srcRow := y
		if !topDown {
			srcRow = height - 1 - y
		}
		for x := 0; x < width; x++ {
			src := (srcRow*width + x) * bytesPerPixel
			dst := img.PixOffset(x, y)
			// TGA stores BGR(A)
			img.Pix[dst] = pixels[src+2]
			img.Pix[dst+1] = pixels[src+1]
			img.Pix[dst+2] = pixels[src]
			if bytesPerPixel == 4 {
				img.Pix[dst+3] = pixels[src+3]
			} else {
				img.Pix[dst+3] = 0xFF
			}
		}
	}

	return img, nil
}

// readRLE expands run-length encoded pixel data.
// Packet header: bit 7 set = run of (n&0x7F)+1 repeats of one pixel,
// otherwise (n&0x7F)+1 raw pixels follow.
func readRLE(r io.Reader, pixelCount, bytesPerPixel int) ([]byte, error) {
	out := make([]byte, 0, pixelCount*bytesPerPixel)
	header := make([]byte, 1)
	pixel := make([]byte, bytesPerPixel)

	for len(out) < pixelCount*bytesPerPixel {
		if _, err := io.ReadFull(r, header); err != nil {
			return nil, ErrTruncatedData
		}
		count := int(header[0]&0x7F) + 1

		if header[0]&0x80 != 0 {
			if _, err := io.ReadFull(r, pixel); err != nil {
				return nil, ErrTruncatedData
			}
			for i := 0; i < count; i++ {
				out = append(out, pixel...)
			}
		} else {
			raw := make([]byte, count*bytesPerPixel)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, ErrTruncatedData
			}
			out = append(out, raw...)
		}
	}

	return out[:pixelCount*bytesPerPixel], nil
}
