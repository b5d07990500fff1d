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

// Package tour finds short visiting orders for point sets.
//
// The renderer only depends on the [Optimizer] interface.  [KOpt] is a
// local-search implementation using 2-opt and 3-opt edge exchanges under a
// wall-clock budget; [Identity] keeps the input order and is useful as a
// stand-in during testing.
package tour

import (
	"errors"
	"math"
	"time"

	"seehuhn.de/go/tourplot/points"
)

// ErrNoPoints is returned when a tour is requested for an empty point set.
var ErrNoPoints = errors.New("tour: no points")

// Cost gives the non-negative, symmetric travel cost between two points.
type Cost func(a, b points.Point) float64

// Euclidean is the straight-line distance between a and b.
func Euclidean(a, b points.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Optimizer reorders a point set into a short tour.
//
// Optimize must return a reordering of pts and must not modify pts.
// The budget bounds the time spent on improving the tour; a budget of zero
// or less means no bound.  Implementations must not fail on non-empty
// input.
type Optimizer interface {
	Optimize(pts []points.Point, budget time.Duration) ([]points.Point, error)
}

// Identity is an Optimizer which keeps the input order.
type Identity struct{}

// Optimize returns a copy of pts.
func (Identity) Optimize(pts []points.Point, _ time.Duration) ([]points.Point, error) {
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	return append([]points.Point(nil), pts...), nil
}

// Length returns the total cost of visiting path in order.
// If closed is true, the edge from the last point back to the first is
// included.
func Length(path []points.Point, cost Cost, closed bool) float64 {
	if cost == nil {
		cost = Euclidean
	}
	var sum float64
	for i := 1; i < len(path); i++ {
		sum += cost(path[i-1], path[i])
	}
	if closed && len(path) > 2 {
		sum += cost(path[len(path)-1], path[0])
	}
	return sum
}

// IsPermutation reports whether b contains exactly the points of a,
// with the same multiplicities.
func IsPermutation(a, b []points.Point) bool {
	if len(a) != len(b) {
		return false
	}
	return IsSubset(b, a)
}

// IsSubset reports whether every point of sub occurs in set, counting
// multiplicities.
func IsSubset(sub, set []points.Point) bool {
	count := make(map[points.Point]int, len(set))
	for _, p := range set {
		count[p]++
	}
	for _, p := range sub {
		if count[p] == 0 {
			return false
		}
		count[p]--
	}
	return true
}
