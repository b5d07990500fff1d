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

// Package config reads tourplot settings from YAML files.
//
// A settings file looks like this:
//
//	output: tour.png
//	background: black
//	foreground: "#ffcc00"
//	marker_radius: 3
//	line_width: 1.5
//	line_cap: round
//	line_join: miter
//	y_up: true
//	grid: 50
//	budget: 5s
//	seed: 1
//	three_opt: true
//
// All keys are optional.  Missing keys keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/tourplot/render"
	"seehuhn.de/go/tourplot/tour"
)

// DefaultBudget is the time allowed for tour optimization.
const DefaultBudget = 10 * time.Second

var (
	// ErrColor indicates a color which is neither a CSS color name nor a
	// hex color.
	ErrColor = errors.New("config: invalid color")

	// ErrStyle indicates an unknown line cap or line join style.
	ErrStyle = errors.New("config: invalid line style")

	// ErrBudget indicates a negative or malformed time budget.
	ErrBudget = errors.New("config: invalid budget")
)

// File holds the contents of a settings file.
type File struct {
	Output       string   `yaml:"output"`
	Background   string   `yaml:"background"`
	Foreground   string   `yaml:"foreground"`
	GridColor    string   `yaml:"grid_color"`
	MarkerRadius float64  `yaml:"marker_radius"`
	LineWidth    float64  `yaml:"line_width"`
	LineCap      string   `yaml:"line_cap"`
	LineJoin     string   `yaml:"line_join"`
	YUp          bool     `yaml:"y_up"`
	Grid         float64  `yaml:"grid"`
	Budget       Duration `yaml:"budget"`
	Seed         int64    `yaml:"seed"`
	ThreeOpt     bool     `yaml:"three_opt"`
}

// Default returns the settings used when no file is given.
func Default() *File {
	return &File{
		Output:       "output.png",
		Background:   "black",
		Foreground:   "white",
		GridColor:    "#404040",
		MarkerRadius: 3,
		LineWidth:    1,
		LineCap:      "round",
		LineJoin:     "round",
		YUp:          true,
		Budget:       Duration(DefaultBudget),
		ThreeOpt:     true,
	}
}

// Load reads the settings file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a settings file.  Keys not present in data keep their
// default values, and unknown keys are an error.
func Parse(data []byte) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(f)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return f, nil
}

// Render converts the styling part of the settings.
// The result is validated.
func (f *File) Render() (render.Config, error) {
	cfg := render.Config{
		MarkerRadius: f.MarkerRadius,
		LineWidth:    f.LineWidth,
		YUp:          f.YUp,
		Grid:         f.Grid,
		Output:       f.Output,
	}

	var err error
	if cfg.Background, err = ParseColor(f.Background); err != nil {
		return render.Config{}, err
	}
	if cfg.Foreground, err = ParseColor(f.Foreground); err != nil {
		return render.Config{}, err
	}
	if cfg.GridColor, err = ParseColor(f.GridColor); err != nil {
		return render.Config{}, err
	}
	if cfg.LineCap, err = parseCap(f.LineCap); err != nil {
		return render.Config{}, err
	}
	if cfg.LineJoin, err = parseJoin(f.LineJoin); err != nil {
		return render.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return render.Config{}, err
	}
	return cfg, nil
}

// Optimizer returns the tour optimizer described by the settings.
func (f *File) Optimizer() tour.KOpt {
	return tour.KOpt{
		Cost:     tour.Euclidean,
		Eps:      tour.DefaultEps,
		Seed:     f.Seed,
		ThreeOpt: f.ThreeOpt,
	}
}

// Duration is a time.Duration which is written as a Go duration string,
// for example "1m30s", in settings files.
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a duration", ErrBudget, value.Line)
	}
	x, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrBudget, value.Line, err)
	}
	if x < 0 {
		return fmt.Errorf("%w: line %d: negative duration %s", ErrBudget, value.Line, x)
	}
	*d = Duration(x)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ParseColor converts a CSS color name, like "steelblue", or a hex color
// of the form "#rgb" or "#rrggbb" to an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		var digits [6]byte
		switch len(hex) {
		case 3:
			for i := range 3 {
				digits[2*i], digits[2*i+1] = hex[i], hex[i]
			}
		case 6:
			copy(digits[:], hex)
		default:
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
		v, err := strconv.ParseUint(string(digits[:]), 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}

	col, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	return col, nil
}

func parseCap(s string) (graphics.LineCapStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butt":
		return graphics.LineCapButt, nil
	case "round":
		return graphics.LineCapRound, nil
	case "square", "projecting":
		return graphics.LineCapSquare, nil
	}
	return 0, fmt.Errorf("%w: line cap %q", ErrStyle, s)
}

func parseJoin(s string) (graphics.LineJoinStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "miter", "mitre":
		return graphics.LineJoinMiter, nil
	case "round":
		return graphics.LineJoinRound, nil
	case "bevel":
		return graphics.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("%w: line join %q", ErrStyle, s)
}
