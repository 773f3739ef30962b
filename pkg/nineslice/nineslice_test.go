package nineslice

import (
	"image"
	"image/color"
	"testing"
)

// gradientImage builds a source where every pixel is unique, so region
// copies can be verified exactly.
func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8((x + y) % 251), A: 255})
		}
	}
	return img
}

func samePixel(t *testing.T, got *image.RGBA, gx, gy int, want *image.RGBA, wx, wy int) {
	t.Helper()
	g := got.RGBAAt(gx, gy)
	w := want.RGBAAt(wx, wy)
	if g != w {
		t.Errorf("canvas (%d,%d) = %v, expected source (%d,%d) = %v", gx, gy, g, wx, wy, w)
	}
}

func TestDialogBackground_Size(t *testing.T) {
	src := gradientImage(90, 186)
	for _, size := range [][2]int{{200, 300}, {90, 92}, {1000, 64}, {16, 16}, {1, 1}} {
		out := DialogBackground(src, size[0], size[1])
		b := out.Bounds()
		if b.Dx() != size[0] || b.Dy() != size[1] {
			t.Errorf("target %dx%d: got %dx%d", size[0], size[1], b.Dx(), b.Dy())
		}
	}
}

func TestDialogBackground_CornersPinned(t *testing.T) {
	src := gradientImage(90, 186)
	out := DialogBackground(src, 200, 300)

	// Top corners are 30x30 at source (0,0) and (60,0).
	samePixel(t, out, 0, 0, src, 0, 0)
	samePixel(t, out, 29, 29, src, 29, 29)
	samePixel(t, out, 170, 0, src, 60, 0)
	samePixel(t, out, 199, 29, src, 89, 29)

	// Bottom corners are 30x62 at source (0,124) and (60,124).
	samePixel(t, out, 0, 238, src, 0, 124)
	samePixel(t, out, 29, 299, src, 29, 185)
	samePixel(t, out, 170, 238, src, 60, 124)
	samePixel(t, out, 199, 299, src, 89, 185)
}

func TestDialogBackground_EdgesTiledNotStretched(t *testing.T) {
	src := gradientImage(90, 186)
	out := DialogBackground(src, 200, 300)

	// The top edge repeats the 30px source strip at native size, so the
	// pattern at x and x+30 is identical.
	samePixel(t, out, 30, 10, src, 30, 10)
	samePixel(t, out, 60, 10, src, 30, 10)
	samePixel(t, out, 95, 10, src, 35, 10)

	// Center tiles start at (30,30) with the source's (30,30) tile.
	samePixel(t, out, 30, 30, src, 30, 30)
	samePixel(t, out, 90, 90, src, 30, 30)
}

func TestDialogBackground_DegenerateTargetDoesNotPanic(t *testing.T) {
	src := gradientImage(90, 186)
	for _, size := range [][2]int{{10, 10}, {31, 63}, {0, 0}, {-5, 40}} {
		out := DialogBackground(src, size[0], size[1])
		if out == nil {
			t.Fatalf("target %v: nil output", size)
		}
	}

	// Tiny sources must also compose without panicking.
	if DialogBackground(gradientImage(4, 4), 200, 300) == nil {
		t.Fatal("small source: nil output")
	}
}

func TestDialogBackground_CornersWinAtMinimumSize(t *testing.T) {
	src := gradientImage(90, 186)
	out := DialogBackground(src, 60, 92)
	// width 60 means rightEdgeStarts=30: no gap between corners, and
	// every corner pixel must still win over edge tiling.
	samePixel(t, out, 59, 0, src, 89, 0)
	samePixel(t, out, 0, 91, src, 0, 185)
}

func TestEdgeImage_Size(t *testing.T) {
	src := gradientImage(8, 6)
	for _, size := range [][2]int{{20, 20}, {8, 6}, {100, 3}, {1, 1}} {
		out := EdgeImage(src, size[0], size[1])
		b := out.Bounds()
		if b.Dx() != size[0] || b.Dy() != size[1] {
			t.Errorf("target %dx%d: got %dx%d", size[0], size[1], b.Dx(), b.Dy())
		}
	}
}

func TestEdgeImage_CornerQuadrants(t *testing.T) {
	src := gradientImage(8, 6) // quadrants are 4x3
	out := EdgeImage(src, 20, 20)

	// Top-left quadrant
	samePixel(t, out, 0, 0, src, 0, 0)
	samePixel(t, out, 3, 2, src, 3, 2)
	// Top-right quadrant
	samePixel(t, out, 16, 0, src, 4, 0)
	samePixel(t, out, 19, 2, src, 7, 2)
	// Bottom-left quadrant
	samePixel(t, out, 0, 17, src, 0, 3)
	samePixel(t, out, 3, 19, src, 3, 5)
	// Bottom-right quadrant
	samePixel(t, out, 16, 17, src, 4, 3)
	samePixel(t, out, 19, 19, src, 7, 5)
}

func TestEdgeImage_StretchedStrips(t *testing.T) {
	src := gradientImage(8, 6)
	out := EdgeImage(src, 20, 20)

	// Top edge is the 1px column at x=4 stretched across x=4..15.
	for _, x := range []int{4, 9, 15} {
		samePixel(t, out, x, 1, src, 4, 1)
	}
	// Left edge is the 1px row at y=3 stretched across y=3..16.
	for _, y := range []int{3, 10, 16} {
		samePixel(t, out, 1, y, src, 1, 3)
	}
	// Center is the single midpoint pixel.
	samePixel(t, out, 8, 8, src, 4, 3)
	samePixel(t, out, 15, 16, src, 4, 3)
}

func TestEdgeImage_OddDimensionsNormalized(t *testing.T) {
	src := gradientImage(7, 5)
	out := EdgeImage(src, 16, 16)
	b := out.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("got %dx%d", b.Dx(), b.Dy())
	}
	// After normalization to 8x6, the top-left quadrant still starts with
	// untouched source pixels.
	samePixel(t, out, 0, 0, src, 0, 0)
}

func TestNormalizeEven_Idempotent(t *testing.T) {
	src := gradientImage(8, 6)
	once := normalizeEven(src)
	twice := normalizeEven(once)

	if once != src {
		t.Error("even-dimensioned input should pass through unchanged")
	}
	if twice != once {
		t.Error("normalization must be a no-op on already-even dimensions")
	}

	odd := normalizeEven(gradientImage(7, 5))
	b := odd.Bounds()
	if b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("7x5 should normalize to 8x6, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestEdgeImage_TargetSmallerThanCorners(t *testing.T) {
	// Spans are negative: no stretching happens, corners overlap in paint
	// order, and nothing panics.
	src := gradientImage(20, 20)
	out := EdgeImage(src, 5, 5)
	if out.Bounds().Dx() != 5 || out.Bounds().Dy() != 5 {
		t.Errorf("got %v", out.Bounds())
	}
}
