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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/intcode-vm/intcode/internal/errw"
	"github.com/intcode-vm/intcode/vm"
)

var opcodes = map[vm.Opcode][]string{
	vm.OpAdd:  {"add"},
	vm.OpMul:  {"mul"},
	vm.OpIn:   {"in"},
	vm.OpOut:  {"out"},
	vm.OpJt:   {"jt", "jnz"},
	vm.OpJf:   {"jf", "jz"},
	vm.OpLt:   {"lt"},
	vm.OpEq:   {"eq"},
	vm.OpArb:  {"arb", "rb"},
	vm.OpHalt: {"hlt", "halt"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range opcodes {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

var modePrefix = [...]string{vm.Position: "", vm.Immediate: "#", vm.Relative: "@"}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	p := newParser()
	return p.Parse(name, r)
}

// decode returns the instruction at pc, or false if the cell at pc cannot be
// decoded as a valid instruction that fits in mem.
func decode(mem []vm.Cell, pc int) (vm.Instruction, bool) {
	in, err := vm.Decode(mem[pc])
	if err != nil || pc+in.Len() > len(mem) {
		return in, false
	}
	// reject mode digits for non-existent parameters
	if in.Cell >= 100*pow10(in.Op.Params()) {
		return in, false
	}
	for k := 1; k <= in.Op.Params(); k++ {
		m, err := in.Mode(k)
		if err != nil || (m == vm.Immediate && k == in.Op.Dst()) {
			return in, false
		}
		in.Args[k-1] = mem[pc+k]
	}
	return in, true
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction are written as .dat
// directives.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := errw.New(w)
	in, ok := decode(mem, pc)
	if !ok {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, opcodes[in.Op][0])
	for k := 1; k <= in.Op.Params(); k++ {
		m, _ := in.Mode(k)
		ew.Write([]byte{' '})
		io.WriteString(ew, modePrefix[m])
		io.WriteString(ew, strconv.FormatInt(int64(in.Args[k-1]), 10))
	}
	return pc + in.Len(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := errw.New(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
