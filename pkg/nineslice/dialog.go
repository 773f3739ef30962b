package nineslice

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// Dialog background slice geometry, in source pixel space. Constants are
// fixed by the reference graphic (90x186), but any source size is accepted.
const (
	dialogTile         = 30  // corner/edge tile size
	dialogBottomY      = 124 // source y of the bottom corner band
	dialogBottomHeight = 62  // bottom corners and edge are taller
)

// DialogBackground reconstructs a dialog background graphic at the given
// target size. Corners are pinned, edges and center are tiled at native
// size (never stretched), painted center first, edges next, corners last
// so the corners are never overwritten.
func DialogBackground(src image.Image, width, height int) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	original := clone.AsRGBA(src)
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))

	rightEdgeStarts := width - dialogTile
	bottomEdgeStarts := height - dialogBottomHeight

	// Center
	tileRegion(canvas, original, dialogTile, dialogTile, dialogTile, dialogTile,
		dialogTile, dialogTile, rightEdgeStarts, bottomEdgeStarts)

	// Left, right, top, bottom edges
	tileRegion(canvas, original, 0, dialogTile, dialogTile, dialogTile,
		0, dialogTile, dialogTile, bottomEdgeStarts)
	tileRegion(canvas, original, 2*dialogTile, dialogTile, dialogTile, dialogTile,
		rightEdgeStarts, dialogTile, rightEdgeStarts+dialogTile, bottomEdgeStarts)
	tileRegion(canvas, original, dialogTile, 0, dialogTile, dialogTile,
		dialogTile, 0, rightEdgeStarts, dialogTile)
	tileRegion(canvas, original, dialogTile, dialogBottomY, dialogTile, dialogBottomHeight,
		dialogTile, bottomEdgeStarts, rightEdgeStarts, bottomEdgeStarts+dialogBottomY)

	// Corners
	copyRegion(canvas, original, 0, 0, dialogTile, dialogTile, 0, 0)
	copyRegion(canvas, original, 2*dialogTile, 0, dialogTile, dialogTile, rightEdgeStarts, 0)
	copyRegion(canvas, original, 0, dialogBottomY, dialogTile, dialogBottomHeight, 0, bottomEdgeStarts)
	copyRegion(canvas, original, 2*dialogTile, dialogBottomY, dialogTile, dialogBottomHeight, rightEdgeStarts, bottomEdgeStarts)

	return canvas
}

// copyRegion pastes one source region unscaled at the destination point.
func copyRegion(canvas, src *image.RGBA, srcX, srcY, w, h, dstX, dstY int) {
	region := transform.Crop(src, image.Rect(srcX, srcY, srcX+w, srcY+h))
	paste(canvas, region, image.Point{dstX, dstY})
}

// tileRegion repeats one source region at native size across the given
// span. Tiles start on a fixed grid; the final row/column may run past
// the span and is clipped by the canvas only, matching the engine's
// observed behavior (later paint passes cover the overshoot).
func tileRegion(canvas, src *image.RGBA, srcX, srcY, tileW, tileH, x0, y0, x1, y1 int) {
	if tileW < 1 || tileH < 1 {
		return
	}
	region := transform.Crop(src, image.Rect(srcX, srcY, srcX+tileW, srcY+tileH))
	for x := x0; x < x1; x += tileW {
		for y := y0; y < y1; y += tileH {
			paste(canvas, region, image.Point{x, y})
		}
	}
}
