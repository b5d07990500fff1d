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

package testcases

import (
	"math"
	"math/rand"

	"seehuhn.de/go/tourplot/points"
)

var regularCases = []Case{
	{
		Name:   "square",
		Points: points.Set{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)},
		Width:  10,
		Height: 10,
	},
	{
		// 5x5 lattice with spacing 20, listed row by row
		Name:   "grid",
		Points: lattice(5, 5, 10, 20),
		Width:  90,
		Height: 90,
	},
	{
		// 24 points on a circle, every second one listed first
		Name:   "ring",
		Points: ring(24, 100, 100, 80),
		Width:  180,
		Height: 180,
	},
	{
		// points on a horizontal line, from the outside in
		Name: "line",
		Points: points.Set{
			pt(5, 50), pt(95, 50), pt(15, 50), pt(85, 50), pt(25, 50),
			pt(75, 50), pt(35, 50), pt(65, 50), pt(45, 50), pt(55, 50),
		},
		Width:  95,
		Height: 50,
	},
}

var randomCases = []Case{
	{
		// three clusters inside a frame given by two corner points
		Name:   "cluster",
		Points: clusters(1, 200, 150, 15),
		Width:  200,
		Height: 150,
	},
	{
		Name:   "uniform",
		Points: uniform(2, 320, 240, 100),
		Width:  320,
		Height: 240,
	},
}

var degenerateCases = []Case{
	{
		Name: "duplicates",
		Points: points.Set{
			pt(5, 5), pt(5, 5), pt(30, 20), pt(5, 5),
			pt(30, 20), pt(5, 5), pt(30, 20), pt(5, 5),
		},
		Width:  30,
		Height: 20,
	},
	{
		Name:   "single",
		Points: points.Set{pt(42.7, 17.2)},
		Width:  42,
		Height: 17,
	},
	{
		Name:   "vertical",
		Points: points.Set{pt(10, 0), pt(10, 100), pt(10, 25), pt(10, 75), pt(10, 50)},
		Width:  10,
		Height: 100,
	},
	{
		// fractional maxima are truncated
		Name:   "fraction",
		Points: points.Set{pt(0.5, 0.5), pt(63.99, 12.5), pt(20.25, 31.75)},
		Width:  63,
		Height: 31,
	},
}

func lattice(nx, ny int, offset, step float64) points.Set {
	var res points.Set
	for j := range ny {
		for i := range nx {
			res = append(res, pt(offset+float64(i)*step, offset+float64(j)*step))
		}
	}
	return res
}

// ring returns n points on a circle.  Coordinates are rounded to three
// decimal places, so that the extreme points lie exactly on cx±r, cy±r
// when n is a multiple of four.
func ring(n int, cx, cy, r float64) points.Set {
	res := make(points.Set, 0, n)
	for _, start := range []int{0, 1} {
		for i := start; i < n; i += 2 {
			phi := 2 * math.Pi * float64(i) / float64(n)
			x := round3(cx + r*math.Cos(phi))
			y := round3(cy + r*math.Sin(phi))
			res = append(res, pt(x, y))
		}
	}
	return res
}

// clusters returns two corner points followed by three groups of m points
// each.  All points lie inside the rectangle [0, w] x [0, h].
func clusters(seed int64, w, h float64, m int) points.Set {
	rng := rand.New(rand.NewSource(seed))
	res := points.Set{pt(0, 0), pt(w, h)}
	centers := [][2]float64{{0.25, 0.3}, {0.7, 0.25}, {0.5, 0.75}}
	for _, c := range centers {
		for range m {
			x := c[0]*w + 10*rng.NormFloat64()
			y := c[1]*h + 10*rng.NormFloat64()
			res = append(res, pt(round3(clamp(x, 1, w-1)), round3(clamp(y, 1, h-1))))
		}
	}
	return res
}

// uniform returns the corner point (w, h) followed by n-1 points spread
// uniformly over the rectangle [0, w) x [0, h).
func uniform(seed int64, w, h float64, n int) points.Set {
	rng := rand.New(rand.NewSource(seed))
	res := points.Set{pt(w, h)}
	for range n - 1 {
		res = append(res, pt(round3(rng.Float64()*(w-1)), round3(rng.Float64()*(h-1))))
	}
	return res
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}
