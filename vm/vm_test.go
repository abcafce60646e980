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
	"testing"

	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

// quine outputs a copy of itself.
var quine = C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

// cmp8 outputs 999 if its input is below 8, 1000 if it is 8, 1001 above 8.
var cmp8 = C{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
	1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
	999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}

func setup(t testing.TB, code C, input ...vm.Cell) *vm.Instance {
	t.Helper()
	i, err := vm.New(vm.Image(code), vm.Input(input...))
	require.NoError(t, err)
	return i
}

func run(t testing.TB, code C, input ...vm.Cell) *vm.Instance {
	t.Helper()
	i := setup(t, code, input...)
	st, err := i.Run()
	require.NoError(t, err)
	require.Equal(t, vm.Halted, st)
	return i
}

func peek(t testing.TB, i *vm.Instance, addr vm.Cell) vm.Cell {
	t.Helper()
	v, err := i.Peek(addr)
	require.NoError(t, err)
	return v
}

func TestRun_memory(t *testing.T) {
	var tests = [...]struct {
		name string
		code C
		mem  C
		pc   int
	}{
		{"arith", C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}, 8},
		{"add", C{1, 0, 0, 0, 99}, C{2, 0, 0, 0, 99}, 4},
		{"mul", C{2, 3, 0, 3, 99}, C{2, 3, 0, 6, 99}, 4},
		{"mul-grow", C{2, 4, 4, 5, 99, 0}, C{2, 4, 4, 5, 99, 9801}, 4},
		{"self-modify", C{1, 1, 1, 4, 99, 5, 6, 0, 99}, C{30, 1, 1, 4, 2, 5, 6, 0, 99}, 8},
		{"immediate", C{1101, 100, -1, 4, 0}, C{1101, 100, -1, 4, 99}, 4},
		{"mul-immediate", C{1002, 4, 3, 4, 33}, C{1002, 4, 3, 4, 99}, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := run(t, test.code)
			assert.Equal(t, test.pc, i.PC, "pc")
			assert.Equal(t, []vm.Cell(test.mem), i.Memory())
		})
	}
}

func TestRun_io(t *testing.T) {
	var tests = [...]struct {
		name  string
		code  C
		input C
		out   C
	}{
		{"echo", C{3, 0, 4, 0, 99}, C{42}, C{42}},
		{"eq8-position/8", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, C{8}, C{1}},
		{"eq8-position/7", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, C{7}, C{0}},
		{"lt8-position/7", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{7}, C{1}},
		{"lt8-position/8", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{8}, C{0}},
		{"eq8-immediate/8", C{3, 3, 1108, -1, 8, 3, 4, 3, 99}, C{8}, C{1}},
		{"eq8-immediate/9", C{3, 3, 1108, -1, 8, 3, 4, 3, 99}, C{9}, C{0}},
		{"lt8-immediate/-3", C{3, 3, 1107, -1, 8, 3, 4, 3, 99}, C{-3}, C{1}},
		{"lt8-immediate/8", C{3, 3, 1107, -1, 8, 3, 4, 3, 99}, C{8}, C{0}},
		{"jump-position/0", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{0}, C{0}},
		{"jump-position/5", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{5}, C{1}},
		{"jump-immediate/0", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{0}, C{0}},
		{"jump-immediate/5", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{5}, C{1}},
		{"cmp8/7", cmp8, C{7}, C{999}},
		{"cmp8/8", cmp8, C{8}, C{1000}},
		{"cmp8/9", cmp8, C{9}, C{1001}},
		{"large-immediate", C{104, 1125899906842624, 99}, nil, C{1125899906842624}},
		{"large-mul", C{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, nil, C{1219070632396864}},
		{"quine", quine, nil, quine},
		{"relative-write", C{109, 10, 203, 0, 204, 0, 99}, C{-7}, C{-7}},
		{"relative-arb-negative", C{109, 20, 109, -15, 204, -5, 99}, nil, C{109}},
		{"read-far", C{4, 1 << 60, 99}, nil, C{0}},
		{"read-far-relative", C{109, 1 << 60, 204, 1 << 60, 99}, nil, C{0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := run(t, test.code, test.input...)
			assert.Equal(t, []vm.Cell(test.out), i.DrainOutput())
			assert.Empty(t, i.Output())
			assert.Zero(t, i.Pending())
		})
	}
}

func TestRun_echo(t *testing.T) {
	i := run(t, C{3, 0, 4, 0, 99}, 42)
	assert.Equal(t, vm.Cell(42), peek(t, i, 0))
	assert.Equal(t, vm.Halted, i.Status())
	assert.Equal(t, int64(3), i.InstructionCount())
}

func TestRun_largeOutputDigits(t *testing.T) {
	i := run(t, C{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	out := i.DrainOutput()
	require.Len(t, out, 1)
	assert.Len(t, vm.Image(out).String(), 16)
}

func TestRun_relativeBase(t *testing.T) {
	i := setup(t, C{109, 19, 204, -34, 99})
	i.RB = 2000
	require.NoError(t, i.Poke(1985, 42))
	st, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, st)
	assert.Equal(t, vm.Cell(2019), i.RB)
	assert.Equal(t, C{42}, C(i.DrainOutput()))
}

func TestStatus_transitions(t *testing.T) {
	i := setup(t, C{1101, 1, 1, 9, 3, 10, 4, 10, 99})
	assert.Equal(t, vm.Ready, i.Status())

	st, err := i.Step()
	require.NoError(t, err)
	assert.Equal(t, vm.Running, st)

	st, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.AwaitingInput, st)
	assert.Equal(t, 4, i.PC, "pc must point at the waiting IN")

	// resuming without input leaves it paused
	st, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.AwaitingInput, st)
	assert.Equal(t, 4, i.PC)

	i.ProvideInput(17)
	st, err = i.Step()
	require.NoError(t, err)
	assert.Equal(t, vm.Running, st)
	assert.Equal(t, 6, i.PC)

	st, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, st)
	assert.Equal(t, C{17}, C(i.DrainOutput()))
	assert.Equal(t, vm.Cell(2), peek(t, i, 9))
}

func TestStep_haltIsIdempotent(t *testing.T) {
	i := run(t, C{1101, 2, 3, 5, 99, 0})
	before := i.State()
	count := i.InstructionCount()
	for n := 0; n < 3; n++ {
		st, err := i.Step()
		require.NoError(t, err)
		assert.Equal(t, vm.Halted, st)
	}
	st, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, st)
	assert.Equal(t, before, i.State())
	assert.Equal(t, count, i.InstructionCount())
}

func TestRun_deterministic(t *testing.T) {
	for _, code := range []C{
		{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
		quine,
		{1102, 34915192, 34915192, 7, 4, 7, 99, 0},
	} {
		a, b := run(t, code), run(t, code)
		assert.Equal(t, a.State(), b.State())
	}
	for _, in := range []vm.Cell{-1, 7, 8, 1 << 40} {
		a, b := run(t, cmp8, in), run(t, cmp8, in)
		assert.Equal(t, a.DrainOutput(), b.DrainOutput())
	}
}

// A VM paused on input then resumed must end up in the same state as a VM
// that had the input from the start.
func TestRun_suspension(t *testing.T) {
	for _, in := range []vm.Cell{5, 8, 11} {
		ref := run(t, cmp8, in)

		i := setup(t, cmp8)
		st, err := i.Run()
		require.NoError(t, err)
		require.Equal(t, vm.AwaitingInput, st)
		assert.Equal(t, 0, i.PC)

		i.ProvideInput(in)
		st, err = i.Run()
		require.NoError(t, err)
		require.Equal(t, vm.Halted, st)

		assert.Equal(t, ref.State(), i.State())
		assert.Equal(t, ref.InstructionCount(), i.InstructionCount())
	}
}

func TestRunSteps(t *testing.T) {
	// infinite loop: jt 1, 0
	i := setup(t, C{1105, 1, 0})
	n, st, err := i.RunSteps(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
	assert.Equal(t, vm.Running, st)
	assert.Equal(t, int64(1000), i.InstructionCount())

	i = setup(t, C{1101, 1, 1, 0, 3, 0, 99})
	n, st, err = i.RunSteps(10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, vm.AwaitingInput, st)

	i.ProvideInput(1)
	n, st, err = i.RunSteps(10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, vm.Halted, st)

	n, st, err = i.RunSteps(10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, vm.Halted, st)
}

func TestNew_clonesProgram(t *testing.T) {
	prog := vm.Image{1101, 1, 1, 0, 99}
	a, err := vm.New(prog)
	require.NoError(t, err)
	_, err = a.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(1101), prog[0])
	assert.Equal(t, vm.Cell(2), peek(t, a, 0))
}

func TestNew_options(t *testing.T) {
	i, err := vm.New(vm.Image{99}, vm.MemSize(4096), vm.Input(1, 2), vm.Input(3))
	require.NoError(t, err)
	assert.Equal(t, 1, i.Len())
	assert.GreaterOrEqual(t, cap(i.Memory()), 4096)
	assert.Equal(t, 3, i.Pending())
	assert.Equal(t, C{1, 2, 3}, C(i.State().Input))

	boom := errors.New("boom")
	_, err = vm.New(vm.Image{99}, func(*vm.Instance) error { return boom })
	assert.Equal(t, boom, err)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ready", vm.Ready.String())
	assert.Equal(t, "awaiting input", vm.AwaitingInput.String())
	assert.Equal(t, "halted", vm.Halted.String())
	assert.Equal(t, "status(42)", vm.Status(42).String())
}

func BenchmarkRun_quine(b *testing.B) {
	img := vm.Image(quine)
	for n := 0; n < b.N; n++ {
		i, _ := vm.New(img)
		i.Run()
	}
}

func BenchmarkRun_cmp8(b *testing.B) {
	img := vm.Image(cmp8)
	for n := 0; n < b.N; n++ {
		i, _ := vm.New(img, vm.Input(9))
		i.Run()
	}
}
