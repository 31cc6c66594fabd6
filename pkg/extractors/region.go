package extractors

import (
	"math"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
)

// Region is a rectangle in user space. X and Y are the lower-left corner.
type Region struct {
	X, Y, Width, Height float64
}

// NewRegion creates a region, normalizing negative sizes
func NewRegion(x, y, width, height float64) Region {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	return Region{X: x, Y: y, Width: width, Height: height}
}

// Contains reports whether v lies inside the region, edges included
func (r Region) Contains(v content.Vector) bool {
	return v.X >= r.X && v.X <= r.X+r.Width &&
		v.Y >= r.Y && v.Y <= r.Y+r.Height
}

// Accept keeps a glyph whose start point lies inside the region
func (r Region) Accept(g content.GlyphSpan) bool {
	return r.Contains(g.Start)
}

// Intersects reports whether a llx, lly, urx, ury box overlaps the region
func (r Region) Intersects(box [4]float64) bool {
	return box[0] <= r.X+r.Width && box[2] >= r.X &&
		box[1] <= r.Y+r.Height && box[3] >= r.Y
}

// unionBounds grows box to cover other. An empty box is all infinities.
func unionBounds(box, other [4]float64) [4]float64 {
	return [4]float64{
		math.Min(box[0], other[0]),
		math.Min(box[1], other[1]),
		math.Max(box[2], other[2]),
		math.Max(box[3], other[3]),
	}
}

func emptyBounds() [4]float64 {
	return [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}
