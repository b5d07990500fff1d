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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a flattened piece of a stroked path, in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // T rotated by +90°
}

// reversed returns the same segment traversed from B to A.
func (s segment) reversed() segment {
	return segment{A: s.B, B: s.A, T: s.T.Mul(-1), N: s.N.Mul(-1)}
}

// subpath locates one flattened subpath in Rasterizer.segs.
type subpath struct {
	start, end int
	closed     bool
}

// Stroke paints the outline of p, using the Width, Cap, Join and
// MiterLimit fields of r.
//
// The outline of each subpath is built as one or two closed polygons, and
// all polygons are filled together with the nonzero rule.  Overlapping
// parts of the stroke are therefore painted only once.
func (r *Rasterizer) Stroke(p path.Path, emit EmitFunc) {
	r.flatten(p)

	r.outline = r.outline[:0]
	r.rings = r.rings[:0]
	d := r.Width / 2

	// A subpath without any extent has no direction; only a round cap
	// gives it a shape.
	if r.Cap == graphics.LineCapRound {
		for _, c := range r.dots {
			r.beginRing()
			r.arc(c, d, vec.Vec2{X: 1}, 2*math.Pi, true)
		}
	}

	var rev []segment
	for _, sp := range r.subpaths {
		segs := r.segs[sp.start:sp.end]
		rev = rev[:0]
		for i := len(segs) - 1; i >= 0; i-- {
			rev = append(rev, segs[i].reversed())
		}

		if sp.closed {
			// Two rings of opposite orientation: the region between them
			// has winding number ±1, the inside of the inner ring has 0.
			r.beginRing()
			r.side(segs, d, true)
			r.beginRing()
			r.side(rev, d, true)
			continue
		}

		// The outline runs along the +N side of the path, around the end
		// cap, back along the −N side and around the start cap.
		first, last := segs[0], segs[len(segs)-1]
		r.beginRing()
		r.side(segs, d, false)
		r.cap(last.B, last.T, d)
		r.side(rev, d, false)
		r.cap(first.A, first.T.Mul(-1), d)
	}

	r.startEdges()
	for i, start := range r.rings {
		end := len(r.outline)
		if i+1 < len(r.rings) {
			end = r.rings[i+1]
		}
		ring := r.outline[start:end]
		if len(ring) < 3 {
			continue
		}
		for j := 1; j < len(ring); j++ {
			r.addEdge(ring[j-1], ring[j])
		}
		r.addEdge(ring[len(ring)-1], ring[0])
	}
	r.scan(emit)
}

func (r *Rasterizer) beginRing() {
	r.rings = append(r.rings, len(r.outline))
}

// flatten splits p into subpaths of straight segments.
func (r *Rasterizer) flatten(p path.Path) {
	r.segs = r.segs[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]

	var cur, start vec.Vec2
	first := 0
	open := false
	drawn := false

	finish := func(closed bool) {
		if !open {
			return
		}
		switch {
		case len(r.segs) > first:
			r.subpaths = append(r.subpaths, subpath{start: first, end: len(r.segs), closed: closed})
		case drawn || closed:
			r.dots = append(r.dots, start)
		}
		first = len(r.segs)
		open = false
		drawn = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur, start = pts[0], pts[0]
			first = len(r.segs)
			open = true
		case path.CmdLineTo:
			if !open {
				continue
			}
			drawn = true
			r.addSegment(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			if !open {
				continue
			}
			drawn = true
			c1, c2 := quadToCubic(cur, pts[0], pts[1])
			r.flattenCubic(cur, c1, c2, pts[1], r.addSegment)
			cur = pts[1]
		case path.CmdCubeTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addSegment)
			cur = pts[2]
		case path.CmdClose:
			if !open {
				continue
			}
			if cur != start {
				r.addSegment(cur, start)
			}
			finish(true)
			cur = start
		}
	}
	finish(false)
}

func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	v := b.Sub(a)
	l := v.Length()
	if l < minSegLength {
		return
	}
	t := v.Mul(1 / l)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// side appends the offset line at distance d on the +N side of segs.
// For closed subpaths the corner between the last and the first segment
// is included and the ring closes on itself.
func (r *Rasterizer) side(segs []segment, d float64, closed bool) {
	n := len(segs)
	if !closed {
		r.outline = append(r.outline, segs[0].A.Add(segs[0].N.Mul(d)))
	}
	for i := range n {
		if i == n-1 && !closed {
			break
		}
		r.corner(&segs[i], &segs[(i+1)%n], d)
	}
	if !closed {
		last := &segs[n-1]
		r.outline = append(r.outline, last.B.Add(last.N.Mul(d)))
	}
}

// corner appends the +N side of the corner where s ends and next begins.
func (r *Rasterizer) corner(s, next *segment, d float64) {
	P := s.B
	cos := s.T.Dot(next.T)
	sin := s.T.X*next.T.Y - s.T.Y*next.T.X

	switch {
	case cos < cuspCos:
		// The path doubles back: go around the tip.
		r.outline = append(r.outline, P.Add(s.N.Mul(d)))
		r.cap(P, s.T, d)
		r.outline = append(r.outline, P.Add(next.N.Mul(d)))
	case math.Abs(sin) < straightSin:
		r.outline = append(r.outline, P.Add(s.N.Mul(d)), P.Add(next.N.Mul(d)))
	case sin > 0:
		// +N is the inside of the turn
		if q, ok := innerPoint(P, s.N, next.N, cos, d); ok {
			r.outline = append(r.outline, q)
		} else {
			r.outline = append(r.outline, P.Add(s.N.Mul(d)), P.Add(next.N.Mul(d)))
		}
	default:
		r.outline = append(r.outline, P.Add(s.N.Mul(d)))
		r.join(P, s, next, cos, d)
		r.outline = append(r.outline, P.Add(next.N.Mul(d)))
	}
}

// innerPoint returns the point where the two offset lines on the inside of
// a corner meet.
func innerPoint(P, n1, n2 vec.Vec2, cos, d float64) (vec.Vec2, bool) {
	half := math.Sqrt((1 + cos) / 2) // cos(θ/2)
	if half < 1e-9 {
		return vec.Vec2{}, false
	}
	dir := n1.Add(n2)
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * half))), true
}

// join appends the extra outline points of a join on the outside of a
// corner, between the offset points of s and next.  The path must turn
// towards −N at P.
func (r *Rasterizer) join(P vec.Vec2, s, next *segment, cos, d float64) {
	switch r.Join {
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		r.arc(P, d, s.N, -angle, false)

	case graphics.LineJoinMiter:
		// The miter length relative to the width is 1/sin(φ/2), where φ is
		// the angle inside the corner.  sin(φ/2) = cos(θ/2).
		half := math.Sqrt((1 + cos) / 2)
		if half <= 0 || 1/half > r.MiterLimit+1e-10 {
			return // bevel
		}
		dir := s.N.Add(next.N)
		if l := dir.Length(); l > minSegLength {
			r.outline = append(r.outline, P.Add(dir.Mul(d/(l*half))))
		}
	}
	// LineJoinBevel needs no extra points.
}

// cap appends the cap at the end point P of a stroke, where T points away
// from the stroke.  The cap runs from P+d·N to P−d·N, with N = T rotated
// by +90°.
func (r *Rasterizer) cap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		tip := P.Add(T.Mul(d))
		r.outline = append(r.outline, tip.Add(N.Mul(d)), tip.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.arc(P, d, N, -math.Pi, false)
	}
}

// arc appends points on the circle of the given radius around c.
// The arc starts in direction from (a unit vector) and sweeps the given
// angle, counter-clockwise for positive sweep.  The start point itself is
// only added if withStart is set.
func (r *Rasterizer) arc(c vec.Vec2, radius float64, from vec.Vec2, sweep float64, withStart bool) {
	devR := max(r.linear(vec.Vec2{X: radius}).Length(), r.linear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devR > r.Flatness {
		// A chord spanning angle α deviates from the circle by
		// R·(1 − cos(α/2)).
		step := 2 * math.Acos(1-r.Flatness/devR)
		if !(step > 0) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if withStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		phi := sweep * float64(i) / float64(n)
		sin, cos := math.Sincos(phi)
		dir := vec.Vec2{
			X: from.X*cos - from.Y*sin,
			Y: from.X*sin + from.Y*cos,
		}
		r.outline = append(r.outline, c.Add(dir.Mul(radius)))
	}
}
