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

// Tourplot draws a set of points and a short tour through them.
//
// Usage:
//
//	tourplot [flags] "x1,y1;x2,y2;..."
//
// The image is written to output.png, unless a different file is given
// with -o or in a settings file.  On success, the number of points on
// the tour is printed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"seehuhn.de/go/tourplot"
	"seehuhn.de/go/tourplot/config"
)

var errUsage = errors.New("expected exactly one coordinate list")

func main() {
	log.SetFlags(0)
	log.SetPrefix("tourplot: ")

	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	} else if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tourplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "read settings from `file`")
	output := fs.String("o", "", "write the image to `file`")
	budget := fs.Duration("budget", config.DefaultBudget, "time allowed for tour optimization")
	seed := fs.Int64("seed", 0, "randomise the tour search (0 means deterministic)")
	verbose := fs.Bool("v", false, "print progress information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), `usage: tourplot [flags] "x1,y1;x2,y2;..."`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	settings := config.Default()
	if *configFile != "" {
		var err error
		settings, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			settings.Output = *output
		case "budget":
			settings.Budget = config.Duration(*budget)
		case "seed":
			settings.Seed = *seed
		}
	})

	if settings.Budget < 0 {
		return fmt.Errorf("%w: negative duration %s", config.ErrBudget, time.Duration(settings.Budget))
	}

	cfg, err := settings.Render()
	if err != nil {
		return err
	}
	opts := tourplot.Options{
		Render:    cfg,
		Optimizer: settings.Optimizer(),
		Budget:    time.Duration(settings.Budget),
	}

	start := time.Now()
	res, err := tourplot.Run(fs.Arg(0), opts)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("%d points on a %dx%d canvas", res.Points, res.Width, res.Height)
		log.Printf("tour length %.2f (input order %.2f)", res.Length, res.InitialLength)
		log.Printf("wrote %s in %v", res.Output, time.Since(start).Round(time.Millisecond))
	}
	fmt.Fprintln(stdout, res.Visited)
	return nil
}
