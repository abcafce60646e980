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

package vm_test

import (
	stderrors "errors"
	"testing"

	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var tests = [...]struct {
		cell  vm.Cell
		op    vm.Opcode
		modes []vm.Mode
	}{
		{1, vm.OpAdd, []vm.Mode{vm.Position, vm.Position, vm.Position}},
		{1002, vm.OpMul, []vm.Mode{vm.Position, vm.Immediate, vm.Position}},
		{21101, vm.OpAdd, []vm.Mode{vm.Immediate, vm.Immediate, vm.Relative}},
		{203, vm.OpIn, []vm.Mode{vm.Relative}},
		{104, vm.OpOut, []vm.Mode{vm.Immediate}},
		{1205, vm.OpJt, []vm.Mode{vm.Relative, vm.Immediate}},
		{6, vm.OpJf, []vm.Mode{vm.Position, vm.Position}},
		{20107, vm.OpLt, []vm.Mode{vm.Immediate, vm.Position, vm.Relative}},
		{1108, vm.OpEq, []vm.Mode{vm.Immediate, vm.Immediate, vm.Position}},
		{209, vm.OpArb, []vm.Mode{vm.Relative}},
		{99, vm.OpHalt, nil},
	}
	for _, test := range tests {
		in, err := vm.Decode(test.cell)
		require.NoError(t, err, "%d", test.cell)
		assert.Equal(t, test.op, in.Op, "%d", test.cell)
		assert.Equal(t, len(test.modes)+1, in.Len(), "%d", test.cell)
		for k, want := range test.modes {
			m, err := in.Mode(k + 1)
			require.NoError(t, err)
			assert.Equal(t, want, m, "%d: parameter %d", test.cell, k+1)
		}
	}
}

func TestDecode_invalid(t *testing.T) {
	for _, c := range []vm.Cell{0, 10, 98, 100, 12345, -1, -99, -1001} {
		_, err := vm.Decode(c)
		assert.Equal(t, vm.ErrInvalidOpcode, errors.Cause(err), "%d", c)
	}

	// modes are checked lazily
	in, err := vm.Decode(30001)
	require.NoError(t, err)
	_, err = in.Mode(1)
	assert.NoError(t, err)
	_, err = in.Mode(3)
	assert.Equal(t, vm.ErrInvalidMode, errors.Cause(err))
}

func TestOpcode_String(t *testing.T) {
	assert.Equal(t, "add", vm.OpAdd.String())
	assert.Equal(t, "hlt", vm.OpHalt.String())
	assert.Equal(t, "op(42)", vm.Opcode(42).String())
	assert.Equal(t, "relative", vm.Relative.String())
	assert.Equal(t, "mode(7)", vm.Mode(7).String())
	assert.Equal(t, 3, vm.OpEq.Dst())
	assert.Equal(t, 1, vm.OpIn.Dst())
	assert.Equal(t, 0, vm.OpJt.Dst())
}

func TestMemory(t *testing.T) {
	var m vm.Memory
	v, err := m.Read(10)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Empty(t, m)
	v, err = m.Read(1 << 60)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Empty(t, m)

	require.NoError(t, m.Write(10, 1))
	assert.Len(t, m, 11)
	require.NoError(t, m.Write(3, 42))
	assert.Len(t, m, 11, "memory must not shrink")
	require.NoError(t, m.Write(100, -5))
	assert.Len(t, m, 101)

	for addr, want := range map[vm.Cell]vm.Cell{3: 42, 100: -5, 50: 0, 0: 0} {
		v, err = m.Read(addr)
		require.NoError(t, err)
		assert.Equal(t, want, v, "@%d", addr)
	}

	_, err = m.Read(-1)
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
	err = m.Write(-1, 0)
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
	err = m.Write(vm.MaxMemory, 0)
	assert.Equal(t, vm.ErrMemoryLimit, errors.Cause(err))
	assert.Len(t, m, 101)
}

func TestPeekPoke(t *testing.T) {
	i := setup(t, C{1, 0, 0, 0, 99})
	require.NoError(t, i.Poke(1, 4))
	require.NoError(t, i.Poke(2, 4))
	require.NoError(t, i.Poke(500, 7))
	assert.Equal(t, 501, i.Len())
	_, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(198), peek(t, i, 0))
	assert.Equal(t, vm.Cell(7), peek(t, i, 500))
	assert.Equal(t, vm.Cell(0), peek(t, i, 499))
	assert.Error(t, i.Poke(-3, 0))
	_, err = i.Peek(-3)
	assert.Error(t, err)
}

func TestStep_errors(t *testing.T) {
	var tests = [...]struct {
		name  string
		code  C
		cause error
		pc    int
	}{
		{"zero", C{0}, vm.ErrInvalidOpcode, 0},
		{"unknown", C{1101, 1, 1, 5, 98, 0}, vm.ErrInvalidOpcode, 4},
		{"jump-out", C{1105, 1, 1000}, vm.ErrInvalidOpcode, 1000},
		{"jump-far", C{1105, 1, 1 << 60}, vm.ErrInvalidOpcode, 1 << 60},
		{"write-far", C{1101, 1, 1, 1 << 60, 99}, vm.ErrMemoryLimit, 0},
		{"write-limit", C{1101, 1, 1, vm.MaxMemory, 99}, vm.ErrMemoryLimit, 0},
		{"jump-negative", C{1105, 1, -4}, vm.ErrNegativeAddress, -4},
		{"mode-3", C{301, 0, 0, 0, 99}, vm.ErrInvalidMode, 0},
		{"immediate-dst", C{10001, 0, 0, 0, 99}, vm.ErrInvalidMode, 0},
		{"immediate-in", C{103, 0, 99}, vm.ErrInvalidMode, 0},
		{"negative-read", C{4, -1, 99}, vm.ErrNegativeAddress, 0},
		{"negative-write", C{1101, 1, 1, -3, 99}, vm.ErrNegativeAddress, 0},
		{"negative-relative", C{109, -5, 204, 0, 99}, vm.ErrNegativeAddress, 2},
		{"negative-relative-dst", C{109, -5, 21101, 1, 1, 2, 99}, vm.ErrNegativeAddress, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code, 1)
			st, err := i.Run()
			require.Error(t, err)
			assert.Equal(t, test.cause, errors.Cause(err))
			assert.True(t, stderrors.Is(err, test.cause))
			assert.Equal(t, vm.Running, st)
			assert.Equal(t, test.pc, i.PC)
			assert.Equal(t, err, i.Err())

			// poisoned
			st, err2 := i.Step()
			assert.Equal(t, vm.Running, st)
			assert.Equal(t, err, err2)
			assert.Equal(t, test.pc, i.PC)
		})
	}
}

// A fault must not have any side effect on the input queue.
func TestStep_errorKeepsInput(t *testing.T) {
	i := setup(t, C{103, 0, 99}, 5)
	_, err := i.Step()
	require.Error(t, err)
	assert.Equal(t, 1, i.Pending())
}
