// seehuhn.de/go/tourplot - render point sets and their tours
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster converts vector paths into anti-aliased pixel coverage.
//
// Paths are given in user space and mapped to device space by a CTM.
// Coverage is delivered one scanline at a time through an emit callback,
// so that the caller decides how to composite it.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  coverage[i] is the
// fraction of pixel (xMin+i, y) covered by the shape, in the range [0, 1].
// The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer computes pixel coverage for filled and stroked paths.
// Internal buffers are reused between calls, so one Rasterizer should be
// kept around and used for many paths.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be invertible.
	CTM matrix.Matrix

	// Clip limits output to this device-space rectangle.  The corners
	// must have integer coordinates.
	Clip rect.Rect

	// Flatness is the maximal distance in device pixels between a curve
	// and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the shape used at the open ends of stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the shape used where two stroked segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  Longer miters are drawn as bevels.
	MiterLimit float64

	cover  []float32 // signed vertical extent of edges, per pixel
	area   []float32 // cover weighted by the uncovered part of the pixel
	edges  []edge
	active []int // indices into edges

	// bounding box of the current edge list, in device space
	haveBox      bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64

	segs     []segment // flattened stroke segments
	subpaths []subpath
	dots     []vec.Vec2 // subpaths without direction
	outline  []vec.Vec2 // stroke outline rings, contiguous
	rings    []int      // start of each ring in outline
}

// edge is a non-horizontal line segment in device space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Default parameter values, as in PDF.
const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0
)

const (
	// edges with a smaller vertical extent do not change coverage
	flatEdge = 1e-10

	// stroke segments shorter than this are dropped
	minSegLength = 1e-10

	// |sin θ| below this means two segments continue in a straight line
	straightSin = 1e-6

	// cos θ below this means the path turns back on itself
	cuspCos = -0.9999
)

// NewRasterizer returns a Rasterizer for the given device clip rectangle,
// with an identity CTM and the PDF defaults for all stroke parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffers are kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p path.Path, emit EmitFunc) {
	r.startEdges()

	var cur, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			c1, c2 := quadToCubic(cur, pts[0], pts[1])
			r.flattenCubic(cur, c1, c2, pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
			open = false
		}
	}
	// Filling implicitly closes every subpath.
	if open && cur != start {
		r.addEdge(cur, start)
	}

	r.scan(emit)
}

// quadToCubic returns the control points of the cubic Bézier curve which
// traces the same curve as the quadratic with control point q.
func quadToCubic(p0, q, p1 vec.Vec2) (c1, c2 vec.Vec2) {
	c1 = p0.Add(q.Sub(p0).Mul(2.0 / 3))
	c2 = p1.Add(q.Sub(p1).Mul(2.0 / 3))
	return c1, c2
}

// linear applies the linear part of the CTM to v.
func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenCubic replaces a cubic Bézier curve by line segments.
// The number of segments is chosen by Wang's formula, measured in
// device space.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	dd1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	dd2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()

	n := 1
	if m := max(dd1, dd2); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(k))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.haveBox = false
}

// addEdge transforms a user-space line segment to device space and
// appends it to the edge list.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < flatEdge {
		return
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		dxdy: (x1 - x0) / dy,
	})

	if !r.haveBox {
		r.boxX0, r.boxX1 = min(x0, x1), max(x0, x1)
		r.boxY0, r.boxY1 = min(y0, y1), max(y0, y1)
		r.haveBox = true
		return
	}
	r.boxX0 = min(r.boxX0, x0, x1)
	r.boxX1 = max(r.boxX1, x0, x1)
	r.boxY0 = min(r.boxY0, y0, y1)
	r.boxY1 = max(r.boxY1, y0, y1)
}

// box returns the integer bounding box of the edge list, intersected
// with the clip rectangle.
func (r *Rasterizer) box() (xMin, xMax, yMin, yMax int, ok bool) {
	if !r.haveBox {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.boxX0)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.boxX1))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.boxY0)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.boxY1))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// The coverage of a pixel is the signed area of the shape inside it.
// Every edge passing through scanline y leaves two numbers in each pixel
// column it crosses:
//
//	cover: the signed height of the edge piece in this column
//	area:  cover times the fraction of the pixel to the right of the piece
//
// Walking the row from left to right, the coverage of pixel i is the sum
// of cover over all columns left of i, plus area[i].  For the nonzero rule
// the absolute value is clamped to 1.

// scan sweeps the edge list from top to bottom using an active edge list.
func (r *Rasterizer) scan(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.box()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := top + 1

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if row, offs := trimZeros(r.cover); row != nil {
			emit(y, xMin+offs, row)
		}
	}
}

// accumulate adds the part of e which lies in scanline y to the cover and
// area buffers.  Columns left of xMin are folded into the first buffer
// entry, columns right of xMax are dropped.  The return value reports
// whether e intersects the scanline.
func (r *Rasterizer) accumulate(e *edge, y, xMin, xMax int) bool {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	switch {
	case right < xMin:
		c := sign * float32(bot-top)
		r.cover[0] += c
		r.area[0] += c
		return true
	case left >= xMax:
		return true
	case left == right:
		r.addPiece(e, top, bot, sign, left, xMin, xMax)
		return true
	}

	// The edge crosses several columns; split it at the column boundaries.
	dydx := 1 / e.dxdy
	for col := left; col <= right; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		pTop := max(min(ya, yb), top)
		pBot := min(max(ya, yb), bot)
		if pBot <= pTop {
			continue
		}
		r.addPiece(e, pTop, pBot, sign, col, xMin, xMax)
	}
	return true
}

// addPiece records the piece of e between heights top and bot, which lies
// inside pixel column col.
func (r *Rasterizer) addPiece(e *edge, top, bot float64, sign float32, col, xMin, xMax int) {
	c := sign * float32(bot-top)
	switch {
	case col < xMin:
		r.cover[0] += c
		r.area[0] += c
	case col < xMax:
		xMid := e.x0 + e.dxdy*((top+bot)/2-e.y0)
		frac := xMid - float64(col)
		i := col - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-frac)
	}
}

// integrateNonZero turns the cover and area buffers into coverage values,
// in place in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips zero coverage from both ends of a row.
// A row without any coverage gives nil.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}
