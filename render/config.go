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

package render

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/pdf/graphics"
)

// Config holds the static styling of a rendering.
type Config struct {
	// Background fills the whole canvas before anything is drawn.
	Background color.RGBA

	// Foreground is used for markers and for the tour.
	Foreground color.RGBA

	// MarkerRadius is the radius of the point markers, in pixels.
	// Zero disables markers.
	MarkerRadius float64

	// LineWidth is the width of the tour polyline, in pixels.
	LineWidth float64

	LineCap  graphics.LineCapStyle
	LineJoin graphics.LineJoinStyle

	// YUp places the origin in the bottom-left corner of the image, with
	// y increasing upwards.  Otherwise the origin is the top-left corner
	// and y increases downwards.
	YUp bool

	// Grid is the spacing of an optional mesh of thin lines drawn below
	// the markers.  Zero disables the mesh, other values must be at
	// least one pixel.
	Grid      float64
	GridColor color.RGBA

	// Output is the path of the PNG file written by Session.Finalize.
	Output string
}

// DefaultConfig returns white markers and lines on a black background,
// written to "output.png".
func DefaultConfig() Config {
	return Config{
		Background:   color.RGBA{A: 0xff},
		Foreground:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		MarkerRadius: 3,
		LineWidth:    1,
		LineCap:      graphics.LineCapRound,
		LineJoin:     graphics.LineJoinRound,
		YUp:          true,
		GridColor:    color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		Output:       "output.png",
	}
}

// Validate checks that all fields have usable values.
// The returned error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case !(c.MarkerRadius >= 0) || c.MarkerRadius > maxLength:
		return fmt.Errorf("%w: marker radius %g", ErrInvalidConfig, c.MarkerRadius)
	case !(c.LineWidth > 0) || c.LineWidth > maxLength:
		return fmt.Errorf("%w: line width %g", ErrInvalidConfig, c.LineWidth)
	case !(c.Grid == 0 || c.Grid >= 1) || c.Grid > maxLength:
		return fmt.Errorf("%w: grid spacing %g", ErrInvalidConfig, c.Grid)
	case c.Output == "":
		return fmt.Errorf("%w: no output path", ErrInvalidConfig)
	}

	switch c.LineCap {
	case graphics.LineCapButt, graphics.LineCapRound, graphics.LineCapSquare:
	default:
		return fmt.Errorf("%w: line cap %d", ErrInvalidConfig, c.LineCap)
	}
	switch c.LineJoin {
	case graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel:
	default:
		return fmt.Errorf("%w: line join %d", ErrInvalidConfig, c.LineJoin)
	}
	return nil
}

// maxLength bounds radii, widths and grid spacings.
const maxLength = 1e6
