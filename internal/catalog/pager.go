package catalog

import "math"

// DefaultScrollFraction is the share of the visible width one scroll step moves.
const DefaultScrollFraction = 0.8

// Pager is the horizontal scroll window of a row measured in tiles.
type Pager struct {
	Offset   int     // index of the first visible tile
	Viewport int     // number of visible tiles
	Total    int     // number of tiles in the row
	Fraction float64 // share of the viewport moved per step
}

// NewPager creates a pager at offset 0. A non-positive fraction selects DefaultScrollFraction.
func NewPager(viewport, total int, fraction float64) Pager {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultScrollFraction
	}
	return Pager{Viewport: viewport, Total: total, Fraction: fraction}
}

// Step returns how many tiles one scroll moves: at least one.
func (p Pager) Step() int {
	step := int(math.Floor(float64(p.Viewport) * p.Fraction))
	if step < 1 {
		return 1
	}
	return step
}

// MaxOffset is the largest offset that still fills the viewport.
func (p Pager) MaxOffset() int {
	return max(0, p.Total-p.Viewport)
}

// Left scrolls one step towards the start.
func (p Pager) Left() Pager {
	p.Offset = p.clamp(p.Offset - p.Step())
	return p
}

// Right scrolls one step towards the end.
func (p Pager) Right() Pager {
	p.Offset = p.clamp(p.Offset + p.Step())
	return p
}

// Resize changes the viewport or total and re-clamps the offset.
func (p Pager) Resize(viewport, total int) Pager {
	p.Viewport = viewport
	p.Total = total
	p.Offset = p.clamp(p.Offset)
	return p
}

// Visible returns the half-open index range [start, end) of the visible tiles.
func (p Pager) Visible() (start, end int) {
	start = p.clamp(p.Offset)
	end = min(p.Total, start+p.Viewport)
	return start, end
}

func (p Pager) clamp(offset int) int {
	return min(max(offset, 0), p.MaxOffset())
}
