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

package points

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Set
	}{
		{"single", "1,2", Set{{1, 2}}},
		{"square", "0,0;10,0;10,10;0,10", Set{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
		{"signs", "-1.5,+2;3e2,-4E-1", Set{{-1.5, 2}, {300, -0.4}}},
		{"fractions", ".5,5.;0.25,1e0", Set{{0.5, 5}, {0.25, 1}}},
		{"whitespace", "  1 , 2 ; 3,4\n", Set{{1, 2}, {3, 4}}},
		{"duplicates", "1,1;1,1", Set{{1, 1}, {1, 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in     string
		want   error
		record int
	}{
		{"1,2;3", ErrMalformedRecord, 1},
		{"1,2;", ErrMalformedRecord, 1},
		{";", ErrMalformedRecord, 0},
		{"1,2,3", ErrMalformedRecord, 0},
		{",", ErrMalformedRecord, 0},
		{"1,a;2,3", ErrInvalidNumber, 0},
		{"1,", ErrInvalidNumber, 0},
		{"NaN,1", ErrInvalidNumber, 0},
		{"1,Inf", ErrInvalidNumber, 0},
		{"0x10,1", ErrInvalidNumber, 0},
		{"1_000,1", ErrInvalidNumber, 0},
		{"1e,1", ErrInvalidNumber, 0},
		{"1e999,1", ErrInvalidNumber, 0},
		{"-,1", ErrInvalidNumber, 0},
		{"0,0;1.2.3,4", ErrInvalidNumber, 1},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.record, perr.Record)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

// TestFormatRoundTrip checks that Parse is a left inverse of Format.
func TestFormatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 50; n++ {
		pts := make(Set, n)
		for i := range pts {
			pts[i] = Point{
				X: (rng.Float64() - 0.25) * math.Pow(10, float64(rng.Intn(12)-4)),
				Y: rng.NormFloat64() * 1000,
			}
		}
		if n%7 == 0 {
			pts[n-1] = pts[0]
		}

		got, err := Parse(Format(pts))
		require.NoError(t, err)
		require.Equal(t, pts, got)
	}
}

func TestFormat(t *testing.T) {
	pts := Set{{0, 0}, {10.5, -3}, {1e21, 0.125}}
	assert.Equal(t, "0,0;10.5,-3;1e+21,0.125", Format(pts))
	assert.Equal(t, "", Format(nil))
}
