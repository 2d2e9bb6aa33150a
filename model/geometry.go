package model

import "math"

// BBox is an axis-aligned bounding box in page reading coordinates:
// X grows rightward, Y grows downward, so Top() is the smallest Y.
// Page decoders that report PDF-style bottom-origin boxes must flip
// them before handing spans to this library.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top (reading coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from an origin and dimensions.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// FromCorners creates a bounding box from (x0,y0)-(x1,y1) corner pairs,
// the form page decoders typically emit.
func FromCorners(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Corners returns the box as an (x0,y0,x1,y1) quadruple.
func (b BBox) Corners() [4]float64 {
	return [4]float64{b.X, b.Y, b.X + b.Width, b.Y + b.Height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
