// Command export writes the test scenes to JSON, for use by external
// plotting tools.
// Run from the tourplot module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/tourplot/testcases"
)

func main() {
	var out struct {
		Scenes []jsonScene `json:"scenes"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.Scenes = append(out.Scenes, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/scenes.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScene struct {
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Input  string      `json:"input"`
	Points [][]float64 `json:"points"`
}

func toJSON(category string, tc testcases.Case) jsonScene {
	js := jsonScene{
		Name:   category + "_" + tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Input:  tc.Input(),
		Points: make([][]float64, len(tc.Points)),
	}
	for i, p := range tc.Points {
		js.Points[i] = []float64{p.X, p.Y}
	}
	return js
}
