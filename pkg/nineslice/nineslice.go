// Package nineslice reconstructs stretchable UI graphics the way the
// legacy game engine renders them. Two modes exist: dialog backgrounds
// (fixed slice geometry, tiled fills) and generic edge images (slices
// derived from the source midpoint, stretched fills).
//
// Both modes are approximations from eye observation of the real engine;
// their exact policies are deliberate and should not be "corrected".
// Degenerate target sizes produce overlapping but well-formed output,
// never an error.
package nineslice

import (
	"image"
	"image/draw"
)

// paste draws src at dp on the canvas, replacing pixels (including alpha).
// The source may carry non-zero bounds (crops keep their offsets).
func paste(canvas *image.RGBA, src image.Image, dp image.Point) {
	b := src.Bounds()
	r := image.Rect(dp.X, dp.Y, dp.X+b.Dx(), dp.Y+b.Dy())
	draw.Draw(canvas, r, src, b.Min, draw.Src)
}
