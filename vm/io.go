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

// InHandler is the function prototype for custom IN handlers. It is called
// when an IN instruction finds the input queue empty. The handler may call
// ProvideInput to supply values synchronously. If the queue is still empty
// when it returns, the VM pauses with status AwaitingInput.
type InHandler func(i *Instance) error

// OutHandler is the function prototype for custom OUT handlers. When bound,
// it receives every output value instead of the output log.
type OutHandler func(i *Instance, v Cell) error

// queue is a FIFO of cells. Popped cells are released lazily so that
// ProvideInput/pop cycles do not reallocate.
type queue struct {
	cells []Cell
	head  int
}

func (q *queue) push(v ...Cell) {
	if q.head > 0 && q.head == len(q.cells) {
		q.cells = q.cells[:0]
		q.head = 0
	}
	q.cells = append(q.cells, v...)
}

func (q *queue) pop() (Cell, bool) {
	if q.head >= len(q.cells) {
		return 0, false
	}
	v := q.cells[q.head]
	q.head++
	return v, true
}

func (q *queue) len() int {
	return len(q.cells) - q.head
}

func (q *queue) peek() []Cell {
	return q.cells[q.head:]
}

// ProvideInput appends the given values to the input queue. It can be called
// at any time, whatever the VM status.
func (i *Instance) ProvideInput(v ...Cell) {
	i.input.push(v...)
}

// Pending returns the number of values in the input queue.
func (i *Instance) Pending() int {
	return i.input.len()
}

// Output returns the pending values of the output log without removing them.
// The returned slice is the log itself, not a copy: it must not be modified
// and is only valid until the VM runs again or DrainOutput is called. Use
// DrainOutput or State to get values the VM will not touch.
func (i *Instance) Output() []Cell {
	return i.output
}

// DrainOutput removes and returns all pending values from the output log.
func (i *Instance) DrainOutput() []Cell {
	out := i.output
	i.output = nil
	return out
}

// in pops the next input value. ok is false if no input is available, even
// after calling the IN handler.
func (i *Instance) in() (v Cell, ok bool, err error) {
	if i.input.len() == 0 && i.inH != nil {
		if err = i.inH(i); err != nil {
			return 0, false, errors.Wrap(err, "IN handler")
		}
	}
	v, ok = i.input.pop()
	return v, ok, nil
}

func (i *Instance) out(v Cell) error {
	if i.outH != nil {
		return errors.Wrap(i.outH(i, v), "OUT handler")
	}
	i.output = append(i.output, v)
	return nil
}
