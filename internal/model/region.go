package model

// Region is a rectangle on the render surface, used as the target locus of
// an action.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the region's midpoint, the point most actions target.
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// NewCenteredRegion builds the synthetic region PlanTranslator uses when a
// predictor response gives only a point: width 50, height 30, centered on
// (x, y).
func NewCenteredRegion(x, y int) Region {
	return Region{X: x - 25, Y: y - 15, Width: 50, Height: 30}
}
