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

package vm

import "strconv"

// Opcode is an Intcode instruction number, i.e. the two low decimal digits of
// an opcode cell.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJt   Opcode = 5
	OpJf   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

type opInfo struct {
	name   string
	params int
	// index of the destination parameter (1 based), 0 if none
	dst int
}

var opcodes = map[Opcode]opInfo{
	OpAdd:  {"add", 3, 3},
	OpMul:  {"mul", 3, 3},
	OpIn:   {"in", 1, 1},
	OpOut:  {"out", 1, 0},
	OpJt:   {"jt", 2, 0},
	OpJf:   {"jf", 2, 0},
	OpLt:   {"lt", 3, 3},
	OpEq:   {"eq", 3, 3},
	OpArb:  {"arb", 1, 0},
	OpHalt: {"hlt", 0, 0},
}

// Valid returns true if op is a defined Intcode instruction.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameter cells following the opcode cell.
func (op Opcode) Params() int {
	return opcodes[op].params
}

// Len returns the instruction length in cells, opcode cell included.
func (op Opcode) Len() int {
	return opcodes[op].params + 1
}

// Dst returns the 1 based index of the parameter that op uses as a write
// address, or 0 if op does not write to memory.
func (op Opcode) Dst() int {
	return opcodes[op].dst
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Mode is a parameter addressing mode.
type Mode Cell

// Parameter modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.FormatInt(int64(m), 10) + ")"
}
