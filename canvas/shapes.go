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

package canvas

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa places the control points of a cubic Bézier curve which
// approximates a quarter circle.
const kappa = 0.5522847498

// Disc returns a closed path approximating the circle with the given
// center and radius, traced counter-clockwise.
func Disc(center vec.Vec2, radius float64) path.Path {
	cx, cy := center.X, center.Y
	r := radius
	k := kappa * r
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2

		buf[0] = vec.Vec2{X: cx + r, Y: cy}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		buf[0], buf[1], buf[2] = vec.Vec2{X: cx + r, Y: cy + k}, vec.Vec2{X: cx + k, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}
		if !yield(path.CmdCubeTo, buf[:3]) {
			return
		}
		buf[0], buf[1], buf[2] = vec.Vec2{X: cx - k, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + k}, vec.Vec2{X: cx - r, Y: cy}
		if !yield(path.CmdCubeTo, buf[:3]) {
			return
		}
		buf[0], buf[1], buf[2] = vec.Vec2{X: cx - r, Y: cy - k}, vec.Vec2{X: cx - k, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}
		if !yield(path.CmdCubeTo, buf[:3]) {
			return
		}
		buf[0], buf[1], buf[2] = vec.Vec2{X: cx + k, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - k}, vec.Vec2{X: cx + r, Y: cy}
		if !yield(path.CmdCubeTo, buf[:3]) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// Polyline returns the open path which visits pts in order.
func Polyline(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
	}
}
