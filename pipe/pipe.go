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

// Package pipe drives several Intcode VMs connected output to input, either as
// a linear chain or as a feedback ring where the output of the last stage is
// fed back into the first one.
//
// Stages are run in turns on the calling goroutine: each stage runs until it
// halts or waits for input, then its output is moved to the input queue of the
// next stage.
package pipe

import (
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
)

var (
	// ErrDeadlock is returned by Run when a full round over all stages did
	// not execute any instruction while the pipeline is not done.
	ErrDeadlock = errors.New("pipeline deadlock")
	// ErrStepLimit is returned by Run when the step budget set with
	// MaxSteps is exhausted.
	ErrStepLimit = errors.New("step limit reached")
)

// Pipeline connects a sequence of VMs.
type Pipeline struct {
	stages   []*vm.Instance
	feedback bool
	maxSteps int
	steps    int
}

// Option interface
type Option func(*Pipeline)

// Feedback sets whether the output of the last stage is fed back to the first.
func Feedback(on bool) Option {
	return func(p *Pipeline) { p.feedback = on }
}

// MaxSteps limits the total number of instructions executed by all stages
// during a single call to Run. Zero means no limit.
func MaxSteps(n int) Option {
	return func(p *Pipeline) { p.maxSteps = n }
}

// New returns a new Pipeline over the given stages.
func New(stages []*vm.Instance, opts ...Option) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("no stages")
	}
	for n, s := range stages {
		if s == nil {
			return nil, errors.Errorf("stage %d: nil VM", n)
		}
	}
	p := &Pipeline{stages: stages}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Replicate loads program in len(inputs) new VMs. Each VM gets the
// corresponding values from inputs in its input queue, like amplifier phase
// settings.
func Replicate(program vm.Image, inputs [][]vm.Cell, opts ...vm.Option) ([]*vm.Instance, error) {
	stages := make([]*vm.Instance, len(inputs))
	for n, in := range inputs {
		i, err := vm.New(program, append([]vm.Option{vm.Input(in...)}, opts...)...)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", n)
		}
		stages[n] = i
	}
	return stages, nil
}

// Stages returns the pipeline stages.
func (p *Pipeline) Stages() []*vm.Instance {
	return p.stages
}

// done reports whether the pipeline has nothing left to do: the last stage
// halted, and for feedback loops, all other stages too.
func (p *Pipeline) done() bool {
	last := p.stages[len(p.stages)-1]
	if last.Status() != vm.Halted {
		return false
	}
	if !p.feedback {
		return true
	}
	for _, s := range p.stages {
		if s.Status() != vm.Halted {
			return false
		}
	}
	return true
}

// runStage resumes stage k and reports whether it executed any instruction.
func (p *Pipeline) runStage(k int) (bool, error) {
	s := p.stages[k]
	if p.maxSteps <= 0 {
		before := s.InstructionCount()
		_, err := s.Run()
		return s.InstructionCount() != before, err
	}
	if p.steps >= p.maxSteps {
		if s.Status() == vm.Halted {
			return false, nil
		}
		return false, ErrStepLimit
	}
	n, st, err := s.RunSteps(p.maxSteps - p.steps)
	p.steps += n
	if err == nil && st == vm.Running {
		err = ErrStepLimit
	}
	return n > 0, err
}

// Run appends input to the input queue of the first stage then runs all
// stages in turns until done. It returns all values output by the last stage,
// in order.
//
// A linear pipeline is done when its last stage halts. A feedback loop is done
// when all its stages have halted. Errors from a stage are wrapped with the
// stage index; use errors.Cause to get the VM error.
func (p *Pipeline) Run(input ...vm.Cell) ([]vm.Cell, error) {
	var result []vm.Cell
	last := len(p.stages) - 1
	p.steps = 0
	p.stages[0].ProvideInput(input...)
	for !p.done() {
		progress := false
		for k := range p.stages {
			ran, err := p.runStage(k)
			progress = progress || ran
			out := p.stages[k].DrainOutput()
			switch {
			case k < last:
				p.stages[k+1].ProvideInput(out...)
			case p.feedback:
				p.stages[0].ProvideInput(out...)
				fallthrough
			default:
				result = append(result, out...)
			}
			if err != nil {
				if errors.Cause(err) == ErrStepLimit {
					return result, err
				}
				return result, errors.Wrapf(err, "stage %d", k)
			}
		}
		if !progress && !p.done() {
			return result, errors.Wrapf(ErrDeadlock, "stage status %v", p.status())
		}
	}
	return result, nil
}

func (p *Pipeline) status() []vm.Status {
	st := make([]vm.Status, len(p.stages))
	for n, s := range p.stages {
		st[n] = s.Status()
	}
	return st
}
