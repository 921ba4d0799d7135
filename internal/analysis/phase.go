package analysis

import (
	"math"
	"strings"
)

// Portrait is a 2-D phase plot built from two recorded columns.
type Portrait struct {
	XLabel, YLabel string
	X, Y           []float64
}

// NewPortrait pairs two equal-length series. Extra samples in the
// longer series are dropped.
func NewPortrait(xLabel, yLabel string, x, y []float64) *Portrait {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	return &Portrait{XLabel: xLabel, YLabel: yLabel, X: x[:n], Y: y[:n]}
}

// Render draws the portrait as ASCII, marking the trajectory with dots
// and the final point with a cross.
func (p *Portrait) Render(width, height int) string {
	if len(p.X) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := bounds(p.X)
	minY, maxY := bounds(p.Y)
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}

	plot := func(x, y float64, mark byte) {
		col := int((x - minX) / (maxX - minX) * float64(width-1))
		row := height - 1 - int((y-minY)/(maxY-minY)*float64(height-1))
		grid[row][col] = mark
	}

	for i := range p.X {
		plot(p.X[i], p.Y[i], '.')
	}
	plot(p.X[len(p.X)-1], p.Y[len(p.Y)-1], '+')

	var b strings.Builder
	b.WriteString(p.YLabel + "\n")
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("-", width) + "> " + p.XLabel + "\n")
	return b.String()
}

func bounds(vals []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
