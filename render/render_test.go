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
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/tourplot/canvas"
	"seehuhn.de/go/tourplot/points"
	"seehuhn.de/go/tourplot/scene"
)

// recorder is a Surface which remembers what was drawn.
type recorder struct {
	width, height int
	bg            color.Color
	ctm           matrix.Matrix
	ops           []string
	discs         []vec.Vec2
	radii         []float64
	lines         [][]vec.Vec2
	styles        []canvas.StrokeStyle
	encodeErr     error
}

func (r *recorder) SetTransform(m matrix.Matrix) {
	r.ctm = m
	r.ops = append(r.ops, "transform")
}

func (r *recorder) Disc(center vec.Vec2, radius float64, col color.Color) {
	r.discs = append(r.discs, center)
	r.radii = append(r.radii, radius)
	r.ops = append(r.ops, "disc")
}

func (r *recorder) Polyline(pts []vec.Vec2, style canvas.StrokeStyle) {
	r.lines = append(r.lines, append([]vec.Vec2(nil), pts...))
	r.styles = append(r.styles, style)
	r.ops = append(r.ops, "polyline")
}

func (r *recorder) Encode(w io.Writer) error {
	if r.encodeErr != nil {
		return r.encodeErr
	}
	_, err := w.Write([]byte("image data"))
	return err
}

// recording returns a renderer which draws into rec.
func recording(cfg Config, rec *recorder) *Renderer {
	return New(cfg, WithSurface(func(w, h int, bg color.Color) (Surface, error) {
		rec.width, rec.height, rec.bg = w, h, bg
		return rec, nil
	}))
}

func mustScene(t *testing.T, s string) *scene.Scene {
	t.Helper()
	pts, err := points.Parse(s)
	require.NoError(t, err)
	sc, err := scene.New(pts)
	require.NoError(t, err)
	return sc
}

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.Output = filepath.Join(t.TempDir(), "out.png")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, color.RGBA{A: 255}, cfg.Background)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, cfg.Foreground)
	assert.Equal(t, 3.0, cfg.MarkerRadius)
	assert.True(t, cfg.YUp)
	assert.Zero(t, cfg.Grid)
	assert.Equal(t, "output.png", cfg.Output)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative radius": func(c *Config) { c.MarkerRadius = -1 },
		"zero width":      func(c *Config) { c.LineWidth = 0 },
		"huge width":      func(c *Config) { c.LineWidth = 1e9 },
		"tiny grid":       func(c *Config) { c.Grid = 0.01 },
		"no output":       func(c *Config) { c.Output = "" },
		"bad cap":         func(c *Config) { c.LineCap = 17 },
		"bad join":        func(c *Config) { c.LineJoin = 17 },
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.MarkerRadius = 0
	cfg.Grid = 25
	cfg.LineCap = graphics.LineCapSquare
	cfg.LineJoin = graphics.LineJoinBevel
	assert.NoError(t, cfg.Validate())
}

func TestTourLayers(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	r := recording(cfg, rec)

	sc := mustScene(t, "0,0;10,0;10,10;0,10")
	s, err := r.Begin(sc)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.width)
	assert.Equal(t, 10, rec.height)
	assert.Equal(t, cfg.Background, rec.bg)
	assert.Equal(t, matrix.Matrix{1, 0, 0, -1, 0, 10}, rec.ctm)
	assert.Len(t, rec.discs, 4)
	assert.Empty(t, rec.lines)

	tour := []points.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	require.NoError(t, s.DrawTour(tour))

	// four tour markers on top of the scene markers
	assert.Len(t, rec.discs, 8)
	assert.Equal(t, 8, s.Markers())
	for i, p := range tour {
		assert.Equal(t, p.Vec(), rec.discs[4+i])
	}
	for _, radius := range rec.radii {
		assert.Equal(t, cfg.MarkerRadius, radius)
	}

	// one open polyline with three segments
	require.Len(t, rec.lines, 1)
	line := rec.lines[0]
	require.Len(t, line, 4)
	assert.Equal(t, line[0], vec.Vec2{X: 0, Y: 0})
	assert.Equal(t, line[3], vec.Vec2{X: 0, Y: 10})
	assert.Equal(t, cfg.LineWidth, rec.styles[0].Width)
	assert.Equal(t, cfg.LineCap, rec.styles[0].Cap)
	assert.Equal(t, color.Color(cfg.Foreground), rec.styles[0].Color)

	// the polyline is drawn last
	assert.Equal(t, "polyline", rec.ops[len(rec.ops)-1])
}

func TestRounding(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	cfg.YUp = false
	r := recording(cfg, rec)

	s, err := r.Begin(mustScene(t, "2.4,3.6;20.5,9.49"))
	require.NoError(t, err)
	assert.NotContains(t, rec.ops, "transform")
	assert.Equal(t, []vec.Vec2{{X: 2, Y: 4}, {X: 21, Y: 9}}, rec.discs)

	require.NoError(t, s.DrawTour([]points.Point{{X: 20.5, Y: 9.49}, {X: 2.4, Y: 3.6}}))
	require.Len(t, rec.lines, 1)
	assert.Equal(t, []vec.Vec2{{X: 21, Y: 9}, {X: 2, Y: 4}}, rec.lines[0])
}

func TestShortTours(t *testing.T) {
	rec := &recorder{}
	s, err := recording(testConfig(t), rec).Begin(mustScene(t, "5,5;8,8"))
	require.NoError(t, err)

	require.NoError(t, s.DrawTour(nil))
	assert.Len(t, rec.discs, 2)
	assert.Empty(t, rec.lines)

	require.NoError(t, s.DrawTour([]points.Point{{X: 5, Y: 5}}))
	assert.Len(t, rec.discs, 3)
	assert.Empty(t, rec.lines)
}

func TestNoMarkers(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	cfg.MarkerRadius = 0
	s, err := recording(cfg, rec).Begin(mustScene(t, "5,5;8,8"))
	require.NoError(t, err)
	require.NoError(t, s.DrawTour([]points.Point{{X: 5, Y: 5}, {X: 8, Y: 8}}))
	assert.Empty(t, rec.discs)
	assert.Equal(t, 4, s.Markers())
	assert.Len(t, rec.lines, 1)
}

func TestGrid(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	cfg.Grid = 5
	_, err := recording(cfg, rec).Begin(mustScene(t, "10,10"))
	require.NoError(t, err)

	// lines at 0, 5 and 10 in both directions, then the marker
	require.Len(t, rec.lines, 6)
	assert.Equal(t, []vec.Vec2{{X: 5, Y: 0}, {X: 5, Y: 10}}, rec.lines[1])
	assert.Equal(t, []vec.Vec2{{X: 0, Y: 10}, {X: 10, Y: 10}}, rec.lines[5])
	assert.Equal(t, color.Color(cfg.GridColor), rec.styles[0].Color)
	assert.Equal(t, "disc", rec.ops[len(rec.ops)-1])
}

func TestBeginErrors(t *testing.T) {
	cfg := testConfig(t)
	failing := errors.New("no memory")

	cases := []struct {
		name string
		r    *Renderer
		sc   *scene.Scene
		want error
	}{
		{"nil scene", New(cfg), nil, scene.ErrEmptyPointSet},
		{"empty scene", New(cfg), &scene.Scene{}, scene.ErrEmptyPointSet},
		{"zero size", New(cfg), mustScene(t, "0.5,0.5"), canvas.ErrSize},
		{"bad config", New(Config{}), mustScene(t, "1,1"), ErrInvalidConfig},
		{"surface", New(cfg, WithSurface(func(int, int, color.Color) (Surface, error) {
			return nil, failing
		})), mustScene(t, "1,1"), failing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := tc.r.Begin(tc.sc)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrSetup)
			assert.ErrorIs(t, err, tc.want)

			var setupErr *SetupError
			assert.ErrorAs(t, err, &setupErr)
		})
	}

	_, err := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(err), "output written on setup failure")
}

func TestFinalizePNG(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg).Begin(mustScene(t, "5,5;20,20"))
	require.NoError(t, err)
	require.NoError(t, s.DrawTour([]points.Point{{X: 5, Y: 5}, {X: 20, Y: 20}}))
	require.NoError(t, s.Finalize())

	fd, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer fd.Close()
	img, err := png.Decode(fd)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())

	// (5,5) with the y axis pointing up is the device point (5,15)
	r, g, b, _ := img.At(5, 14).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})

	assertOnly(t, filepath.Dir(cfg.Output), "out.png")
}

func TestFinalizeOnce(t *testing.T) {
	rec := &recorder{}
	s, err := recording(testConfig(t), rec).Begin(mustScene(t, "3,3"))
	require.NoError(t, err)
	require.NoError(t, s.Finalize())

	assert.ErrorIs(t, s.Finalize(), ErrFinalized)
	assert.ErrorIs(t, s.DrawTour([]points.Point{{X: 3, Y: 3}}), ErrFinalized)
}

func TestFinalizeErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Output = filepath.Join(t.TempDir(), "missing", "out.png")
		s, err := recording(cfg, &recorder{}).Begin(mustScene(t, "3,3"))
		require.NoError(t, err)

		err = s.Finalize()
		assert.ErrorIs(t, err, ErrFinalize)
		var finErr *FinalizeError
		require.ErrorAs(t, err, &finErr)
		assert.Equal(t, cfg.Output, finErr.Path)
	})

	t.Run("encoder", func(t *testing.T) {
		cfg := testConfig(t)
		failing := errors.New("disk full")
		s, err := recording(cfg, &recorder{encodeErr: failing}).Begin(mustScene(t, "3,3"))
		require.NoError(t, err)

		err = s.Finalize()
		assert.ErrorIs(t, err, ErrFinalize)
		assert.ErrorIs(t, err, failing)
		assertOnly(t, filepath.Dir(cfg.Output))
	})

	t.Run("target is a directory", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.Output, 0o755))
		s, err := recording(cfg, &recorder{}).Begin(mustScene(t, "3,3"))
		require.NoError(t, err)

		assert.ErrorIs(t, s.Finalize(), ErrFinalize)
		assertOnly(t, filepath.Dir(cfg.Output), "out.png")
	})
}

// assertOnly checks that dir contains exactly the given entries.
func assertOnly(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, names, got)
}
