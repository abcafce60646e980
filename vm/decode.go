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

import "github.com/pkg/errors"

// Instruction is a decoded instruction: the opcode tag along with the raw
// opcode cell (where the parameter modes live) and the raw parameter cells.
type Instruction struct {
	Op   Opcode
	Cell Cell
	Args [3]Cell
}

// Decode splits an opcode cell into its instruction number and parameter
// modes. Parameter cells are not filled in.
func Decode(c Cell) (Instruction, error) {
	op := Opcode(c % 100)
	if !op.Valid() {
		return Instruction{}, errors.Wrapf(ErrInvalidOpcode, "opcode %d", c)
	}
	return Instruction{Op: op, Cell: c}, nil
}

var pow10 = [...]Cell{1, 10, 100, 1000, 10000, 100000}

// Mode returns the addressing mode of the k-th parameter (k >= 1).
func (in *Instruction) Mode(k int) (Mode, error) {
	if k < 1 || k+1 >= len(pow10) {
		return 0, errors.Wrapf(ErrInvalidMode, "parameter %d", k)
	}
	m := Mode(in.Cell / pow10[k+1] % 10)
	switch m {
	case Position, Immediate, Relative:
		return m, nil
	}
	return m, errors.Wrapf(ErrInvalidMode, "parameter %d: mode %d", k, m)
}

// Len returns the instruction length in cells.
func (in *Instruction) Len() int {
	return in.Op.Len()
}
