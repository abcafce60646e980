// This file is part of intcode - https://github.com/intcode-vm/intcode
//
// Copyright 2019 The intcode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ascii provides helpers to run Intcode programs that speak ASCII: one
// character per cell on input and output, with values outside of the ASCII
// range used for out of band results.
package ascii

import (
	"strings"

	"github.com/intcode-vm/intcode/vm"
)

// MaxASCII is the largest cell value considered as text.
const MaxASCII = 127

// IsASCII reports whether v is an ASCII character.
func IsASCII(v vm.Cell) bool {
	return v >= 0 && v <= MaxASCII
}

// Encode converts s to cells, one byte per cell.
func Encode(s string) []vm.Cell {
	cells := make([]vm.Cell, len(s))
	for n := 0; n < len(s); n++ {
		cells[n] = vm.Cell(s[n])
	}
	return cells
}

// Decode converts cells back to text. Values that are not ASCII characters are
// skipped and returned in order in nonASCII.
func Decode(cells []vm.Cell) (text string, nonASCII []vm.Cell) {
	var b strings.Builder
	b.Grow(len(cells))
	for _, c := range cells {
		if !IsASCII(c) {
			nonASCII = append(nonASCII, c)
			continue
		}
		b.WriteByte(byte(c))
	}
	return b.String(), nonASCII
}
