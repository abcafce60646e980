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

// MaxMemory is the largest memory size, in cells, that a write can grow
// memory to.
const MaxMemory = 1 << 27

// Memory is the VM's random access memory. Reads beyond the current length
// return 0, writes extend it with zero cells as needed. It never shrinks.
type Memory []Cell

func (m *Memory) grow(addr int) {
	if addr < len(*m) {
		return
	}
	if addr < cap(*m) {
		*m = (*m)[:addr+1]
		return
	}
	*m = append(*m, make([]Cell, addr+1-len(*m))...)
}

// Read returns the value stored at address addr.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "address %d", addr)
	}
	if addr >= Cell(len(*m)) {
		return 0, nil
	}
	return (*m)[addr], nil
}

// Write stores v at address addr.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrNegativeAddress, "address %d", addr)
	}
	if addr >= MaxMemory {
		return errors.Wrapf(ErrMemoryLimit, "address %d", addr)
	}
	m.grow(int(addr))
	(*m)[addr] = v
	return nil
}
