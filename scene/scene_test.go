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

package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/tourplot/points"
)

func TestSize(t *testing.T) {
	cases := []struct {
		in   string
		w, h int
	}{
		{"0,0;10,0;10,10;0,10", 10, 10},
		{"99.9,0.5", 99, 0},
		{"10.9,3;2,20.999", 10, 20},
		{"-5,-7;-1.5,-2.5", -1, -2},
		{"-0.5,4", 0, 4},
		{"7,7;7,7;7,7", 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			pts, err := points.Parse(tc.in)
			require.NoError(t, err)

			w, h, err := Size(pts)
			require.NoError(t, err)
			assert.Equal(t, tc.w, w)
			assert.Equal(t, tc.h, h)
		})
	}
}

func TestSizeEmpty(t *testing.T) {
	_, _, err := Size(nil)
	assert.ErrorIs(t, err, ErrEmptyPointSet)

	sc, err := New(points.Set{})
	assert.ErrorIs(t, err, ErrEmptyPointSet)
	assert.Nil(t, sc)
}

// TestSizeBounds checks that the size equals the truncated maxima
// for random point sets.
func TestSizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 100 {
		n := 1 + rng.Intn(30)
		pts := make(points.Set, n)
		maxX, maxY := -1.0, -1.0
		for i := range pts {
			pts[i] = points.Point{X: rng.Float64() * 500, Y: rng.Float64() * 300}
			maxX = max(maxX, pts[i].X)
			maxY = max(maxY, pts[i].Y)
		}

		sc, err := New(pts)
		require.NoError(t, err)
		assert.Equal(t, int(maxX), sc.Width)
		assert.Equal(t, int(maxY), sc.Height)
		assert.LessOrEqual(t, float64(sc.Width), maxX)
		assert.Greater(t, float64(sc.Width)+1, maxX)
	}
}

func TestSizeSaturates(t *testing.T) {
	cases := []struct {
		in   string
		w, h int
	}{
		{"1e19,2", math.MaxInt, 2},
		{"1e300,1e300", math.MaxInt, math.MaxInt},
		{"-1e300,-1e19", math.MinInt, math.MinInt},
	}
	for _, tc := range cases {
		pts, err := points.Parse(tc.in)
		require.NoError(t, err)
		w, h, err := Size(pts)
		require.NoError(t, err)
		assert.Equal(t, tc.w, w, tc.in)
		assert.Equal(t, tc.h, h, tc.in)
	}
}
