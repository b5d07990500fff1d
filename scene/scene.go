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

// Package scene derives the canvas size for a point set.
package scene

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/tourplot/points"
)

// ErrEmptyPointSet is returned when a scene is requested for zero points.
var ErrEmptyPointSet = errors.New("scene: empty point set")

// Scene is a point set together with the size of the canvas it is drawn on.
// The canvas has its origin at (0, 0).  A Scene must not be modified after
// construction.
type Scene struct {
	Points points.Set

	// Width and Height are the maxima of the x- and y-coordinates,
	// truncated toward zero.  A point with a fractional coordinate
	// above the truncated value may fall just outside the canvas.
	Width, Height int
}

// New returns the scene for pts.
// The point set is used as is; the caller must not modify it afterwards.
func New(pts points.Set) (*Scene, error) {
	w, h, err := Size(pts)
	if err != nil {
		return nil, err
	}
	return &Scene{Points: pts, Width: w, Height: h}, nil
}

// Size computes the canvas size for pts.
// Each dimension is the largest coordinate along that axis, truncated
// toward zero, so that x = 99.9 gives a width of 99.
func Size(pts points.Set) (width, height int, err error) {
	if len(pts) == 0 {
		return 0, 0, ErrEmptyPointSet
	}

	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return truncate(maxX), truncate(maxY), nil
}

// truncate converts x to an int, rounding toward zero.  Values outside
// the range of int saturate.
func truncate(x float64) int {
	switch {
	case x >= math.MaxInt:
		return math.MaxInt
	case x <= math.MinInt:
		return math.MinInt
	}
	return int(x)
}

func (s *Scene) String() string {
	return fmt.Sprintf("%d points on %dx%d", len(s.Points), s.Width, s.Height)
}
