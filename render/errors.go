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
	"fmt"
)

var (
	// ErrSetup matches every *SetupError.
	ErrSetup = errors.New("render: setup failed")

	// ErrFinalize matches every *FinalizeError.
	ErrFinalize = errors.New("render: cannot write image")

	// ErrFinalized is returned when a session is used after Finalize.
	ErrFinalized = errors.New("render: session already finalized")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("render: invalid config")
)

// SetupError reports that a rendering session could not be started.
// No file has been written when this error occurs.
type SetupError struct {
	Width, Height int
	Err           error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("render: cannot set up %dx%d canvas: %v", e.Width, e.Height, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSetup) hold for every SetupError.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}

// FinalizeError reports that the image could not be written.
// Any partially written file has been removed.
type FinalizeError struct {
	Path string
	Err  error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("render: cannot write %q: %v", e.Path, e.Err)
}

func (e *FinalizeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFinalize) hold for every FinalizeError.
func (e *FinalizeError) Is(target error) bool {
	return target == ErrFinalize
}
