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

// Command genpdf draws the test scenes as vector PDF files, for visual
// comparison with the PNG output of tourplot.  With -png, the PDF files
// are also rendered to PNG using Ghostscript.
// Run from the tourplot module root directory.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/tourplot/canvas"
	"seehuhn.de/go/tourplot/render"
	"seehuhn.de/go/tourplot/testcases"
)

const refDir = "testdata/reference"

func main() {
	withPNG := flag.Bool("png", false, "also render the PDF files using Ghostscript")
	flag.Parse()

	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	cfg := render.DefaultConfig()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(tc, &cfg, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			if *withPNG {
				if err := renderPNG(pdfPath, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

// generatePDF draws the markers of tc and the path through the points in
// input order.  PDF user space has the y axis pointing up, which matches
// the image orientation of tourplot with y_up set.
func generatePDF(tc testcases.Case, cfg *render.Config, pdfPath string) error {
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(tc.Width), float64(tc.Height))
	page.Fill()

	page.SetFillColor(color.DeviceGray(1))
	page.SetStrokeColor(color.DeviceGray(1))
	page.SetLineWidth(cfg.LineWidth)
	page.SetLineCap(cfg.LineCap)
	page.SetLineJoin(cfg.LineJoin)

	drawPath := func(p path.Path) {
		for cmd, pts := range p {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
	}

	line := make([]vec.Vec2, len(tc.Points))
	for i, p := range tc.Points {
		line[i] = p.Vec()
		drawPath(canvas.Disc(line[i], cfg.MarkerRadius))
	}
	page.Fill()

	if len(line) > 1 {
		drawPath(canvas.Polyline(line))
		page.Stroke()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
