package nineslice

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// EdgeImage reconstructs a graphic with edgeimage/blttype=edge set, at the
// given target size. The four corners are the source's own quadrants,
// placed unscaled; edges are 1-pixel strips from the quadrant midlines,
// stretched to span; the center is the single midpoint pixel, stretched to
// fill the interior. The engine appears to tile these regions instead, but
// stretching is visually close enough and is the policy kept here.
func EdgeImage(src image.Image, width, height int) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	original := normalizeEven(clone.AsRGBA(src))
	w := original.Bounds().Dx()
	h := original.Bounds().Dy()
	cornerW := w / 2
	cornerH := h / 2

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))

	topLeft := transform.Crop(original, image.Rect(0, 0, cornerW, cornerH))
	topRight := transform.Crop(original, image.Rect(cornerW, 0, w, cornerH))
	bottomLeft := transform.Crop(original, image.Rect(0, cornerH, cornerW, h))
	bottomRight := transform.Crop(original, image.Rect(cornerW, cornerH, w, h))

	topEdge := transform.Crop(original, image.Rect(cornerW, 0, cornerW+1, cornerH))
	bottomEdge := transform.Crop(original, image.Rect(cornerW, cornerH, cornerW+1, h))
	leftEdge := transform.Crop(original, image.Rect(0, cornerH, cornerW, cornerH+1))
	rightEdge := transform.Crop(original, image.Rect(cornerW, cornerH, w, cornerH+1))

	spanW := width - 2*cornerW
	spanH := height - 2*cornerH

	// Every stretched region is one pixel thick, so nearest-neighbor
	// reproduces the exact source colors.
	if spanW > 0 {
		topEdge = transform.Resize(topEdge, spanW, cornerH, transform.NearestNeighbor)
		bottomEdge = transform.Resize(bottomEdge, spanW, cornerH, transform.NearestNeighbor)
	}
	if spanH > 0 {
		leftEdge = transform.Resize(leftEdge, cornerW, spanH, transform.NearestNeighbor)
		rightEdge = transform.Resize(rightEdge, cornerW, spanH, transform.NearestNeighbor)
	}

	paste(canvas, bottomLeft, image.Point{0, height - cornerH})
	paste(canvas, bottomRight, image.Point{width - cornerW, height - cornerH})
	paste(canvas, topLeft, image.Point{0, 0})
	paste(canvas, topRight, image.Point{width - cornerW, 0})

	paste(canvas, bottomEdge, image.Point{cornerW, height - cornerH})
	paste(canvas, topEdge, image.Point{cornerW, 0})
	paste(canvas, leftEdge, image.Point{0, cornerH})
	paste(canvas, rightEdge, image.Point{width - cornerW, cornerH})

	center := transform.Crop(original, image.Rect(cornerW, cornerH, cornerW+1, cornerH+1))
	if spanW > 0 && spanH > 0 {
		center = transform.Resize(center, spanW, spanH, transform.NearestNeighbor)
	}
	paste(canvas, center, image.Point{cornerW, cornerH})

	return canvas
}

// normalizeEven grows odd dimensions by one pixel so the image has an
// exact integer midpoint. Even dimensions pass through untouched.
func normalizeEven(img *image.RGBA) *image.RGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w%2 != 0 {
		img = transform.Resize(img, w+1, h, transform.NearestNeighbor)
		w++
	}
	if h%2 != 0 {
		img = transform.Resize(img, w, h+1, transform.NearestNeighbor)
	}
	return img
}
