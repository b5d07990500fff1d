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

// Package canvas implements an RGBA drawing surface on top of the
// rasterizer in package raster.
//
// Shapes are described as [path.Path] values in user space.  The canvas
// turns them into coverage masks and composites the masks onto the image
// with golang.org/x/image/draw, using the Porter-Duff "over" operator.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/tourplot/raster"
)

// MaxPixels is the largest number of pixels a canvas may have.
const MaxPixels = 1 << 26

// flatness is the curve tolerance in pixels.  Markers are only a few
// pixels across, so this is finer than the PDF default.
const flatness = 0.1

var (
	// ErrSize is returned by New if the width or height is not positive.
	ErrSize = errors.New("canvas: width and height must be positive")

	// ErrTooLarge is returned by New if the canvas would exceed MaxPixels.
	ErrTooLarge = errors.New("canvas: too large")
)

// StrokeStyle describes how lines are drawn.
type StrokeStyle struct {
	Color      color.Color
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64 // values below 1 select the PDF default of 10
}

// Canvas is an image together with the state needed to draw into it.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img  *image.RGBA
	ras  *raster.Rasterizer
	ctm  matrix.Matrix
	mask *image.Alpha // one row of coverage
}

// New allocates a canvas of the given size in pixels and fills it with
// the background color bg.
func New(width, height int, bg color.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrSize, width, height)
	}
	if width > MaxPixels || height > MaxPixels/width {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, width, height)
	}

	bounds := image.Rect(0, 0, width, height)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(bg), image.Point{}, draw.Src)

	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	c := &Canvas{
		img:  img,
		ras:  raster.NewRasterizer(clip),
		ctm:  matrix.Identity,
		mask: image.NewAlpha(image.Rect(0, 0, width, 1)),
	}
	return c, nil
}

// Bounds returns the pixel rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// SetTransform sets the map from user space to device pixels for all
// subsequent drawing operations.
func (c *Canvas) SetTransform(m matrix.Matrix) {
	c.ctm = m
}

// Fill paints the interior of p, using the nonzero winding rule.
func (c *Canvas) Fill(p path.Path, col color.Color) {
	c.reset()
	c.ras.FillNonZero(p, c.painter(col))
}

// Stroke paints the outline of p.
func (c *Canvas) Stroke(p path.Path, style StrokeStyle) {
	c.reset()
	c.ras.Width = style.Width
	c.ras.Cap = style.Cap
	c.ras.Join = style.Join
	if style.MiterLimit >= 1 {
		c.ras.MiterLimit = style.MiterLimit
	}
	c.ras.Stroke(p, c.painter(style.Color))
}

// Disc fills the circle with the given center and radius.
func (c *Canvas) Disc(center vec.Vec2, radius float64, col color.Color) {
	c.Fill(Disc(center, radius), col)
}

// Polyline strokes the open polyline through pts.
func (c *Canvas) Polyline(pts []vec.Vec2, style StrokeStyle) {
	if len(pts) < 2 {
		return
	}
	c.Stroke(Polyline(pts), style)
}

// Image returns the underlying image.  The image is shared with the
// canvas and changes when more shapes are drawn.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Encode writes the canvas to w in PNG format.
func (c *Canvas) Encode(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) reset() {
	b := c.img.Bounds()
	c.ras.Reset(rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	})
	c.ras.CTM = c.ctm
	c.ras.Flatness = flatness
}

// painter returns an emit function which composites one row of coverage
// in the given color over the image.
func (c *Canvas) painter(col color.Color) raster.EmitFunc {
	src := image.NewUniform(col)
	return func(y, xMin int, coverage []float32) {
		row := c.mask.Pix[:len(coverage)]
		for i, v := range coverage {
			row[i] = uint8(v*255 + 0.5)
		}
		r := image.Rect(xMin, y, xMin+len(coverage), y+1)
		draw.DrawMask(c.img, r, src, image.Point{}, c.mask, image.Point{}, draw.Over)
	}
}
