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
	"math/rand"
	"time"

	"seehuhn.de/go/tourplot/points"
)

// search holds the state of one local-search run on a closed tour.
//
// The tour is stored as a permutation of 0..n-1 without repeating the
// start.  order[0] never moves, so the returned tour starts where the
// construction started.
type search struct {
	n     int
	pts   []points.Point
	cost  Cost
	w     []float64 // dense n×n costs, nil for large n
	eps   float64
	rng   *rand.Rand // nil means canonical scan order
	order []int
	buf   []int // scratch space for 3-opt moves

	useDeadline bool
	deadline    time.Time
	steps       int
	expired     bool
}

// denseLimit is the largest n for which all pairwise costs are cached.
// 2048² float64 values take 32 MiB.
const denseLimit = 2048

// deadlineMask throttles clock reads to one per 1024 move evaluations.
const deadlineMask = 1023

func newSearch(pts []points.Point, cost Cost, eps float64, seed int64, budget time.Duration) *search {
	n := len(pts)
	s := &search{
		n:    n,
		pts:  pts,
		cost: cost,
		eps:  eps,
		buf:  make([]int, n),
	}
	if budget > 0 {
		s.useDeadline = true
		s.deadline = time.Now().Add(budget)
	}
	if seed != 0 {
		s.rng = rngFromSeed(seed)
	}

	if n <= denseLimit {
		s.w = make([]float64, n*n)
		for i := range n {
			for j := i + 1; j < n; j++ {
				d := cost(pts[i], pts[j])
				s.w[i*n+j] = d
				s.w[j*n+i] = d
			}
		}
	}
	return s
}

// dist returns the cost between vertices u and v.
func (s *search) dist(u, v int) float64 {
	if s.w != nil {
		return s.w[u*s.n+v]
	}
	return s.cost(s.pts[u], s.pts[v])
}

// tick counts one move evaluation and reports whether the budget is spent.
func (s *search) tick() bool {
	if s.expired {
		return true
	}
	s.steps++
	if !s.useDeadline || s.steps&deadlineMask != 0 {
		return false
	}
	s.expired = time.Now().After(s.deadline)
	return s.expired
}

// run alternates 2-opt and 3-opt until neither improves the tour.
func (s *search) run(threeOpt bool) {
	for {
		s.twoOpt()
		if s.expired || !threeOpt {
			return
		}
		if !s.threeOpt() || s.expired {
			return
		}
	}
}

// twoOpt applies improving segment reversals until a full sweep finds none.
//
// Removing edges (a,b) and (c,d) with a=T[i], b=T[i+1], c=T[j], d=T[j+1]
// and reconnecting as (a,c), (b,d) reverses T[i+1..j].  The gain is
// Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d).
func (s *search) twoOpt() bool {
	n := s.n
	t := s.order
	changed := false
	for {
		improved := false
		for _, i := range s.scanOrder(n - 2) {
			a := t[i]
			for j := i + 2; j < n; j++ {
				if i == 0 && j == n-1 {
					continue // both edges touch t[0]
				}
				if s.tick() {
					return changed
				}
				b, c, d := t[i+1], t[j], t[(j+1)%n]
				delta := s.dist(a, c) + s.dist(b, d) - s.dist(a, b) - s.dist(c, d)
				if delta < -s.eps {
					reverse(t[i+1 : j+1])
					improved = true
					changed = true
				}
			}
		}
		if !improved {
			return changed
		}
	}
}

// segment identifies one of the two inner segments of a 3-opt move,
// possibly reversed.
type segment uint8

const (
	seg1  segment = iota // T[i+1..j]
	seg1R                // T[i+1..j] reversed
	seg2                 // T[j+1..k]
	seg2R                // T[j+1..k] reversed
)

// reconnections lists the seven ways of joining the two segments other
// than the identity.
var reconnections = [7][2]segment{
	{seg1R, seg2},
	{seg1, seg2R},
	{seg1R, seg2R},
	{seg2, seg1},
	{seg2, seg1R},
	{seg2R, seg1},
	{seg2R, seg1R},
}

// threeOpt performs one first-improvement sweep over all triples of cut
// points and reports whether any move was applied.
//
// With a=T[i], b=T[i+1], c=T[j], d=T[j+1], e=T[k], f=T[k+1] the tour is
// P · S1 · S2 · Q with S1 = b..c and S2 = d..e.  A move replaces it by
// P · X · Y · Q for one of the reconnections (X, Y).
func (s *search) threeOpt() bool {
	n := s.n
	t := s.order
	improved := false
	for _, i := range s.scanOrder(n - 2) {
	cuts:
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				a, b, c := t[i], t[i+1], t[j]
				d, e, f := t[j+1], t[k], t[(k+1)%n]
				removed := s.dist(a, b) + s.dist(c, d) + s.dist(e, f)

				for _, rc := range reconnections {
					if s.tick() {
						return improved
					}
					xFirst, xLast := ends(rc[0], b, c, d, e)
					yFirst, yLast := ends(rc[1], b, c, d, e)
					added := s.dist(a, xFirst) + s.dist(xLast, yFirst) + s.dist(yLast, f)
					if added-removed < -s.eps {
						s.apply3Opt(i, j, k, rc)
						improved = true
						break cuts
					}
				}
			}
		}
	}
	return improved
}

// ends returns the first and last vertex of a segment in its chosen
// orientation.
func ends(sg segment, b, c, d, e int) (first, last int) {
	switch sg {
	case seg1:
		return b, c
	case seg1R:
		return c, b
	case seg2:
		return d, e
	default:
		return e, d
	}
}

// apply3Opt rewrites T[i+1..k] as X · Y.
func (s *search) apply3Opt(i, j, k int, rc [2]segment) {
	t := s.order
	out := s.buf[:0]
	for _, sg := range rc {
		switch sg {
		case seg1:
			out = append(out, t[i+1:j+1]...)
		case seg1R:
			for p := j; p > i; p-- {
				out = append(out, t[p])
			}
		case seg2:
			out = append(out, t[j+1:k+1]...)
		case seg2R:
			for p := k; p > j; p-- {
				out = append(out, t[p])
			}
		}
	}
	copy(t[i+1:k+1], out)
}

// scanOrder returns the outer loop indices 0..m-1, shuffled if the search
// was seeded.
func (s *search) scanOrder(m int) []int {
	idx := make([]int, max(m, 0))
	for i := range idx {
		idx[i] = i
	}
	if s.rng != nil {
		s.rng.Shuffle(len(idx), func(a, b int) {
			idx[a], idx[b] = idx[b], idx[a]
		})
	}
	return idx
}

func reverse(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
