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

package tour

import "math/rand"

// rngFromSeed returns a deterministic random source.  The same seed gives
// the same scan order on every platform.
//
// A *rand.Rand is not safe for concurrent use; each search owns its own.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(mixSeed(seed)))
}

// mixSeed spreads the bits of small seeds such as 1, 2, 3 so that
// neighbouring seeds give unrelated streams.  It is the SplitMix64
// finaliser.
func mixSeed(seed int64) int64 {
	x := uint64(seed) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
