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

// fetch decodes the instruction at pc and loads its parameter cells. Memory
// is read again on every fetch since programs may modify their own code.
func (i *Instance) fetch() (in Instruction, err error) {
	c, err := i.mem.Read(Cell(i.PC))
	if err != nil {
		return in, err
	}
	if in, err = Decode(c); err != nil {
		return in, err
	}
	for k := 0; k < in.Op.Params(); k++ {
		if in.Args[k], err = i.mem.Read(Cell(i.PC + 1 + k)); err != nil {
			return in, err
		}
	}
	return in, nil
}

// read returns the value of the k-th parameter (1 based).
func (i *Instance) read(in *Instruction, k int) (Cell, error) {
	m, err := in.Mode(k)
	if err != nil {
		return 0, err
	}
	p := in.Args[k-1]
	switch m {
	case Immediate:
		return p, nil
	case Relative:
		p += i.RB
	}
	v, err := i.mem.Read(p)
	return v, errors.Wrapf(err, "parameter %d", k)
}

// addr returns the write address designated by the k-th parameter.
func (i *Instance) addr(in *Instruction, k int) (Cell, error) {
	m, err := in.Mode(k)
	if err != nil {
		return 0, err
	}
	p := in.Args[k-1]
	switch m {
	case Immediate:
		return 0, errors.Wrapf(ErrInvalidMode, "parameter %d: immediate destination", k)
	case Relative:
		p += i.RB
	}
	if p < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "parameter %d: address %d", k, p)
	}
	return p, nil
}

// operands reads the first two parameters.
func (i *Instance) operands(in *Instruction) (a, b Cell, err error) {
	if a, err = i.read(in, 1); err != nil {
		return
	}
	b, err = i.read(in, 2)
	return
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// exec executes in. It returns with i.PC pointing to the next instruction.
func (i *Instance) exec(in *Instruction) error {
	switch in.Op {
	case OpAdd, OpMul, OpLt, OpEq:
		a, b, err := i.operands(in)
		if err != nil {
			return err
		}
		dst, err := i.addr(in, 3)
		if err != nil {
			return err
		}
		var v Cell
		switch in.Op {
		case OpAdd:
			v = a + b
		case OpMul:
			v = a * b
		case OpLt:
			v = b2c(a < b)
		case OpEq:
			v = b2c(a == b)
		}
		if err = i.mem.Write(dst, v); err != nil {
			return err
		}
		i.PC += 4
	case OpIn:
		dst, err := i.addr(in, 1)
		if err != nil {
			return err
		}
		v, ok, err := i.in()
		if err != nil {
			return err
		}
		if !ok {
			i.status = AwaitingInput
			return nil
		}
		if err = i.mem.Write(dst, v); err != nil {
			return err
		}
		i.PC += 2
	case OpOut:
		v, err := i.read(in, 1)
		if err != nil {
			return err
		}
		if err = i.out(v); err != nil {
			return err
		}
		i.PC += 2
	case OpJt, OpJf:
		cond, tgt, err := i.operands(in)
		if err != nil {
			return err
		}
		if (cond != 0) == (in.Op == OpJt) {
			i.PC = int(tgt)
		} else {
			i.PC += 3
		}
	case OpArb:
		v, err := i.read(in, 1)
		if err != nil {
			return err
		}
		i.RB += v
		i.PC += 2
	case OpHalt:
		i.status = Halted
	default:
		// Decode only returns valid opcodes
		panic("unhandled opcode " + in.Op.String())
	}
	return nil
}

// Step executes exactly one instruction and returns the new VM status.
//
// Stepping a halted VM is a no-op. If the instruction cannot be decoded or one
// of its parameters cannot be resolved, the VM is left with status Running, PC
// pointing at the faulty instruction, and the error is returned. The error is
// sticky: any subsequent call to Step or Run will return it again.
func (i *Instance) Step() (Status, error) {
	if i.err != nil {
		return i.status, i.err
	}
	if i.status == Halted {
		return Halted, nil
	}
	i.status = Running
	in, err := i.fetch()
	if err == nil {
		err = i.exec(&in)
	}
	if err != nil {
		i.err = errors.Wrapf(err, "pc=%d", i.PC)
		i.status = Running
		return i.status, i.err
	}
	if i.status != AwaitingInput {
		i.insCount++
	}
	return i.status, nil
}
