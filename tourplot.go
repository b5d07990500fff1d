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

// Package tourplot draws a set of points in the plane together with a short
// tour through them.
//
// The input is a list of coordinates like "0,0;10,0;10,10;0,10".  [Run]
// parses the input, draws a marker for every point, asks a
// [tour.Optimizer] for a visiting order, draws the tour as an open
// polyline on top and writes the image as a PNG file.  The image is as
// wide and as tall as the largest x and y coordinates, truncated to whole
// pixels.
package tourplot

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf

import (
	"errors"
	"fmt"
	"time"

	"seehuhn.de/go/tourplot/points"
	"seehuhn.de/go/tourplot/render"
	"seehuhn.de/go/tourplot/scene"
	"seehuhn.de/go/tourplot/tour"
)

// ErrInvalidTour is returned when the optimizer returns points which are
// not part of the input.
var ErrInvalidTour = errors.New("tourplot: tour visits unknown points")

// Options controls a run.
type Options struct {
	// Render holds the styling and the output path.
	Render render.Config

	// Optimizer orders the points.  Nil selects [tour.KOpt] with 3-opt
	// moves enabled.
	Optimizer tour.Optimizer

	// Budget bounds the time spent by the optimizer.  Zero or less means
	// no bound.
	Budget time.Duration

	// Surface, if set, replaces the PNG canvas.
	Surface render.SurfaceFunc
}

// DefaultOptions returns the options used by the tourplot command when no
// settings file is given.
func DefaultOptions() Options {
	return Options{
		Render:    render.DefaultConfig(),
		Optimizer: tour.KOpt{ThreeOpt: true},
		Budget:    10 * time.Second,
	}
}

// Result summarises a successful run.
type Result struct {
	Points  int // number of input points
	Visited int // number of points on the tour

	Width, Height int // image size in pixels

	// InitialLength is the length of the open path through the points in
	// input order, Length the length of the drawn tour.
	InitialLength float64
	Length        float64

	Output string // the file written
}

// Run renders input and the tour through its points.
// No file is written if an error occurs.
func Run(input string, opts Options) (*Result, error) {
	pts, err := points.Parse(input)
	if err != nil {
		return nil, err
	}
	sc, err := scene.New(pts)
	if err != nil {
		return nil, err
	}

	var ropts []render.Option
	if opts.Surface != nil {
		ropts = append(ropts, render.WithSurface(opts.Surface))
	}
	session, err := render.New(opts.Render, ropts...).Begin(sc)
	if err != nil {
		return nil, err
	}

	opt := opts.Optimizer
	if opt == nil {
		opt = tour.KOpt{ThreeOpt: true}
	}
	visit, err := opt.Optimize(sc.Points, opts.Budget)
	if err != nil {
		return nil, fmt.Errorf("tourplot: optimizing %d points: %w", len(sc.Points), err)
	}
	if !tour.IsSubset(visit, sc.Points) {
		return nil, ErrInvalidTour
	}

	err = session.DrawTour(visit)
	if err != nil {
		return nil, err
	}
	err = session.Finalize()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Points:        len(sc.Points),
		Visited:       len(visit),
		Width:         sc.Width,
		Height:        sc.Height,
		InitialLength: tour.Length(sc.Points, tour.Euclidean, false),
		Length:        tour.Length(visit, tour.Euclidean, false),
		Output:        opts.Render.Output,
	}
	return res, nil
}
