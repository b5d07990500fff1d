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

// Package render draws a scene and a tour through its points into a PNG
// file.
//
// Drawing happens in layers.  [Renderer.Begin] fills the background,
// draws the optional grid and then one marker for every point of the
// scene.  [Session.DrawTour] adds a marker for every tour point and the
// open polyline which connects the tour points in order.
// [Session.Finalize] writes the result.
//
// Marker and polyline positions are rounded to whole pixels.
package render

import (
	"bufio"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/tourplot/canvas"
	"seehuhn.de/go/tourplot/points"
	"seehuhn.de/go/tourplot/scene"
)

// Surface is the drawing target of a session.
// [*canvas.Canvas] implements this interface.
type Surface interface {
	SetTransform(m matrix.Matrix)
	Disc(center vec.Vec2, radius float64, col color.Color)
	Polyline(pts []vec.Vec2, style canvas.StrokeStyle)
	Encode(w io.Writer) error
}

// SurfaceFunc allocates a surface of the given size, filled with bg.
type SurfaceFunc func(width, height int, bg color.Color) (Surface, error)

func newCanvas(width, height int, bg color.Color) (Surface, error) {
	c, err := canvas.New(width, height, bg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSurface replaces the PNG canvas used for drawing.
func WithSurface(f SurfaceFunc) Option {
	return func(r *Renderer) {
		r.newSurface = f
	}
}

// Renderer turns scenes into images.
type Renderer struct {
	cfg        Config
	newSurface SurfaceFunc
}

// New returns a renderer which uses the styling in cfg.
// The configuration is validated by Begin.
func New(cfg Config, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:        cfg,
		newSurface: newCanvas,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session is a rendering in progress.
type Session struct {
	cfg   Config
	sc    *scene.Scene
	surf  Surface
	done  bool
	drawn int // number of markers drawn so far
}

// Begin starts a rendering of sc.  It allocates the surface, fills the
// background and draws one marker for every point of the scene.
//
// On failure, the returned error is a *SetupError.
func (r *Renderer) Begin(sc *scene.Scene) (*Session, error) {
	if sc == nil || len(sc.Points) == 0 {
		return nil, &SetupError{Err: scene.ErrEmptyPointSet}
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, &SetupError{Width: sc.Width, Height: sc.Height, Err: err}
	}

	surf, err := r.newSurface(sc.Width, sc.Height, r.cfg.Background)
	if err != nil {
		return nil, &SetupError{Width: sc.Width, Height: sc.Height, Err: err}
	}

	s := &Session{
		cfg:  r.cfg,
		sc:   sc,
		surf: surf,
	}
	if r.cfg.YUp {
		surf.SetTransform(matrix.Matrix{1, 0, 0, -1, 0, float64(sc.Height)})
	}
	s.drawGrid()
	for _, p := range sc.Points {
		s.marker(p)
	}
	return s, nil
}

// Markers returns the number of markers drawn so far.
func (s *Session) Markers() int {
	return s.drawn
}

// DrawTour draws a marker at every point of tour, followed by the open
// polyline which visits the points in order.  The polyline is not closed:
// a tour of n points gives n-1 line segments.
func (s *Session) DrawTour(tour []points.Point) error {
	if s.done {
		return ErrFinalized
	}

	for _, p := range tour {
		s.marker(p)
	}
	if len(tour) < 2 {
		return nil
	}

	line := make([]vec.Vec2, len(tour))
	for i, p := range tour {
		line[i] = pixel(p)
	}
	s.surf.Polyline(line, canvas.StrokeStyle{
		Color: s.cfg.Foreground,
		Width: s.cfg.LineWidth,
		Cap:   s.cfg.LineCap,
		Join:  s.cfg.LineJoin,
	})
	return nil
}

// Finalize writes the image to the configured output path.  The image is
// first written to a temporary file in the same directory, which is then
// renamed into place.  On failure, the temporary file is removed and a
// *FinalizeError is returned.
//
// Finalize can be called only once.  Later calls, and calls to DrawTour
// after Finalize, return ErrFinalized.
func (s *Session) Finalize() error {
	if s.done {
		return ErrFinalized
	}
	s.done = true

	out := s.cfg.Output
	err := s.writeFile(out)
	if err != nil {
		return &FinalizeError{Path: out, Err: err}
	}
	return nil
}

func (s *Session) writeFile(out string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(out), ".tourplot-*.png")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = s.surf.Encode(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, out); err != nil {
		return err
	}
	return nil
}

func (s *Session) marker(p points.Point) {
	s.drawn++
	if s.cfg.MarkerRadius == 0 {
		return
	}
	s.surf.Disc(pixel(p), s.cfg.MarkerRadius, s.cfg.Foreground)
}

// drawGrid draws the mesh lines at multiples of the grid spacing.
func (s *Session) drawGrid() {
	step := s.cfg.Grid
	if step <= 0 {
		return
	}
	style := canvas.StrokeStyle{
		Color: s.cfg.GridColor,
		Width: 1,
		Cap:   graphics.LineCapButt,
		Join:  graphics.LineJoinMiter,
	}
	w, h := float64(s.sc.Width), float64(s.sc.Height)
	for x := 0.0; x <= w; x += step {
		s.surf.Polyline([]vec.Vec2{{X: x, Y: 0}, {X: x, Y: h}}, style)
	}
	for y := 0.0; y <= h; y += step {
		s.surf.Polyline([]vec.Vec2{{X: 0, Y: y}, {X: w, Y: y}}, style)
	}
}

// pixel rounds p to the nearest whole pixel position.
func pixel(p points.Point) vec.Vec2 {
	return vec.Vec2{X: math.Round(p.X), Y: math.Round(p.Y)}
}

var _ Surface = (*canvas.Canvas)(nil)
