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

package tour

import (
	"time"

	"seehuhn.de/go/tourplot/points"
)

// DefaultEps is the acceptance tolerance used when KOpt.Eps is not set.
// It keeps rounding noise from producing endless sequences of moves.
const DefaultEps = 1e-9

// KOpt improves a nearest-neighbour tour by k-opt local search.
//
// The tour is treated as a closed cycle.  The search alternates 2-opt
// sweeps (segment reversal) with, if enabled, 3-opt sweeps (reconnecting
// two adjacent segments in any of seven ways) and stops once neither finds
// an improving move or the budget runs out.  Running out of time is not an
// error: the best tour found so far is returned.
//
// The zero value is ready to use and minimises Euclidean length.
type KOpt struct {
	// Cost is the edge cost.  Nil means Euclidean.
	Cost Cost

	// Eps is the minimal improvement for a move to be accepted.
	// Values <= 0 select DefaultEps.
	Eps float64

	// Seed selects a randomised scan order.  Zero means the canonical
	// order, which makes the result depend only on the input as long as
	// the budget is not exhausted.
	Seed int64

	// ThreeOpt enables the 3-opt neighbourhood after each 2-opt sweep
	// has converged.
	ThreeOpt bool
}

// Optimize returns a short tour through pts, starting at pts[0].
// The returned slice lists every point exactly once and does not repeat
// the start point at the end.
func (k KOpt) Optimize(pts []points.Point, budget time.Duration) ([]points.Point, error) {
	n := len(pts)
	if n == 0 {
		return nil, ErrNoPoints
	}
	if n <= 3 {
		// every order is optimal on a closed cycle
		return append([]points.Point(nil), pts...), nil
	}

	cost := k.Cost
	if cost == nil {
		cost = Euclidean
	}

	eps := k.Eps
	if eps <= 0 {
		eps = DefaultEps
	}

	s := newSearch(pts, cost, eps, k.Seed, budget)
	s.order = nearestNeighbor(n, s.dist)
	s.run(k.ThreeOpt)

	out := make([]points.Point, n)
	for i, v := range s.order {
		out[i] = pts[v]
	}
	return out, nil
}

// NearestNeighbor returns a tour through pts as a list of indices into
// pts.  The tour starts at pts[0] and repeatedly moves to the closest
// unvisited point; ties go to the smaller index.  A nil cost means
// Euclidean.
func NearestNeighbor(pts []points.Point, cost Cost) []int {
	if cost == nil {
		cost = Euclidean
	}
	return nearestNeighbor(len(pts), func(u, v int) float64 {
		return cost(pts[u], pts[v])
	})
}

func nearestNeighbor(n int, dist func(u, v int) float64) []int {
	if n == 0 {
		return nil
	}
	order := make([]int, 0, n)
	visited := make([]bool, n)

	cur := 0
	visited[0] = true
	order = append(order, 0)
	for len(order) < n {
		next := -1
		var best float64
		for v := range n {
			if visited[v] {
				continue
			}
			if d := dist(cur, v); next < 0 || d < best {
				next, best = v, d
			}
		}
		visited[next] = true
		order = append(order, next)
		cur = next
	}
	return order
}
