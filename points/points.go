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

// Package points parses coordinate lists of the form "x1,y1;x2,y2;...".
package points

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Separators of the coordinate text format.
const (
	RecordSep = ";"
	FieldSep  = ","
)

var (
	// ErrEmptyInput is returned for input without any records.
	ErrEmptyInput = errors.New("points: empty input")

	// ErrMalformedRecord is returned for a record which is not a pair of
	// fields separated by exactly one comma.
	ErrMalformedRecord = errors.New("points: malformed record")

	// ErrInvalidNumber is returned when a field is not a finite decimal
	// floating-point literal.
	ErrInvalidNumber = errors.New("points: invalid number")
)

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Vec converts p to a geometry vector.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

func (p Point) String() string {
	return formatFloat(p.X) + FieldSep + formatFloat(p.Y)
}

// Set is an ordered sequence of points, in input order.
// Duplicates are allowed.
type Set []Point

// ParseError describes a record which could not be parsed.
type ParseError struct {
	Record int    // zero-based index of the record
	Text   string // the offending record
	Err    error  // ErrMalformedRecord or ErrInvalidNumber
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d %q: %v", e.Record, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts coordinate text into a point set.
// Records are separated by ";" and each record holds two decimal numbers
// separated by a single ",". Whitespace around the input and around
// individual numbers is ignored.
func Parse(s string) (Set, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}

	records := strings.Split(s, RecordSep)
	res := make(Set, 0, len(records))
	for i, rec := range records {
		xs, ys, ok := strings.Cut(rec, FieldSep)
		if !ok || strings.Contains(ys, FieldSep) {
			return nil, &ParseError{Record: i, Text: rec, Err: ErrMalformedRecord}
		}
		xs, ys = strings.TrimSpace(xs), strings.TrimSpace(ys)
		if xs == "" && ys == "" {
			return nil, &ParseError{Record: i, Text: rec, Err: ErrMalformedRecord}
		}

		x, err := parseNumber(xs)
		if err != nil {
			return nil, &ParseError{Record: i, Text: rec, Err: err}
		}
		y, err := parseNumber(ys)
		if err != nil {
			return nil, &ParseError{Record: i, Text: rec, Err: err}
		}
		res = append(res, Point{X: x, Y: y})
	}
	return res, nil
}

// Format is the inverse of Parse.  Numbers use the shortest
// representation which parses back to the same float64 value.
func Format(pts Set) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteString(RecordSep)
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// parseNumber accepts an optional sign, digits with an optional fractional
// part and an optional exponent.  strconv.ParseFloat on its own would also
// accept "NaN", "Inf", hex floats and digit separators.
func parseNumber(s string) (float64, error) {
	if !isDecimal(s) {
		return 0, ErrInvalidNumber
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(x, 0) {
		return 0, ErrInvalidNumber
	}
	return x, nil
}

func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
