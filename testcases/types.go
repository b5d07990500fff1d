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

// Package testcases provides named point sets for tests, benchmarks and
// visual comparisons.
package testcases

import (
	"seehuhn.de/go/tourplot/points"
)

// Case is a named point set together with the canvas size it should
// produce.
type Case struct {
	Name   string     // lowercase a-z and _ only
	Points points.Set // the scene, in input order
	Width  int        // expected canvas width in pixels
	Height int        // expected canvas height in pixels
}

// Input returns the points in the "x1,y1;x2,y2;..." text format.
func (c Case) Input() string {
	return points.Format(c.Points)
}

// pt is a helper to create a points.Point from x, y coordinates.
func pt(x, y float64) points.Point {
	return points.Point{X: x, Y: y}
}
