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

import (
	"io"
	"strconv"

	"github.com/intcode-vm/intcode/internal/errw"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Status is the execution status of a VM Instance.
type Status int

// VM statuses.
const (
	Ready Status = iota
	Running
	AwaitingInput
	Halted
)

var statusNames = [...]string{"ready", "running", "awaiting input", "halted"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int  // Program Counter (aka. Instruction Pointer)
	RB       Cell // Relative Base
	mem      Memory
	status   Status
	err      error
	input    queue
	output   []Cell
	insCount int64
	inH      InHandler
	outH     OutHandler
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.ProvideInput(v...); return nil }
}

// MemSize preallocates memory for size cells. Memory grows as needed anyway,
// this only saves reallocations for programs known to use a lot of memory.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size > cap(i.mem) {
			m := make(Memory, len(i.mem), size)
			copy(m, i.mem)
			i.mem = m
		}
		return nil
	}
}

// BindInHandler binds the provided IN handler. See InHandler.
func BindInHandler(h InHandler) Option {
	return func(i *Instance) error { i.inH = h; return nil }
}

// BindOutHandler binds the provided OUT handler. See OutHandler.
//
// Once bound, output values no longer go to the output log.
func BindOutHandler(h OutHandler) Option {
	return func(i *Instance) error { i.outH = h; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied into the VM memory, so the caller is free to reuse
// it, for example to create more instances running the same program.
//
// Options will be set by calling SetOptions.
func New(program Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: Memory(program.Clone()),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Status returns the current VM status.
func (i *Instance) Status() Status {
	return i.status
}

// Err returns the fatal error that stopped the VM, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Len returns the current memory size in cells.
func (i *Instance) Len() int {
	return len(i.mem)
}

// Memory returns the VM memory. The returned slice is the live memory, not a
// copy: value changes will be reflected in the instance's memory, but growing
// it will not. Use Poke for that, and State for a snapshot.
func (i *Instance) Memory() []Cell {
	return i.mem
}

// Peek returns the value at memory address addr.
func (i *Instance) Peek(addr Cell) (Cell, error) {
	return i.mem.Read(addr)
}

// Poke sets the value at memory address addr to v.
func (i *Instance) Poke(addr, v Cell) error {
	return i.mem.Write(addr, v)
}

// State is a snapshot of the complete VM state.
type State struct {
	PC     int
	RB     Cell
	Status Status
	Memory []Cell
	Input  []Cell
	Output []Cell
}

// State returns a snapshot of the VM state. The returned value shares
// nothing with the VM.
func (i *Instance) State() State {
	return State{
		PC:     i.PC,
		RB:     i.RB,
		Status: i.status,
		Memory: append([]Cell(nil), i.mem...),
		Input:  append([]Cell(nil), i.input.peek()...),
		Output: append([]Cell(nil), i.output...),
	}
}

func dumpSlice(w io.Writer, a []Cell) {
	b := make([]byte, 0, 24)
	for n, v := range a {
		b = b[:0]
		if n > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		w.Write(b)
	}
	w.Write([]byte{'\n'})
}

// Dump writes the VM registers, status, pending I/O and memory to the
// specified io.Writer, one item per line.
func (i *Instance) Dump(w io.Writer) error {
	ew := errw.New(w)
	io.WriteString(ew, "pc="+strconv.Itoa(i.PC)+" rb="+strconv.FormatInt(int64(i.RB), 10)+" status="+i.status.String()+"\n")
	io.WriteString(ew, "in:")
	dumpSlice(ew, i.input.peek())
	io.WriteString(ew, "out:")
	dumpSlice(ew, i.output)
	io.WriteString(ew, "mem:")
	dumpSlice(ew, i.mem)
	return ew.Err
}
