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

// Run executes instructions until the VM halts or needs input that is not
// available yet, and returns the final status.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error. See Step.
//
// A VM paused with AwaitingInput can be resumed by calling ProvideInput then
// Run again.
func (i *Instance) Run() (Status, error) {
	for {
		st, err := i.Step()
		if err != nil || st == Halted || st == AwaitingInput {
			return st, err
		}
	}
}

// RunSteps executes at most n instructions. It returns the number of
// instructions actually executed along with the VM status. Execution stops
// early if the VM halts, awaits input or fails.
//
// This is mostly meant for callers that need to put a bound on execution
// time: the VM itself has no notion of timeout.
func (i *Instance) RunSteps(n int) (int, Status, error) {
	if i.err != nil || i.status == Halted {
		return 0, i.status, i.err
	}
	var c int
	for c < n {
		st, err := i.Step()
		if err != nil || st == AwaitingInput {
			return c, st, err
		}
		c++
		if st == Halted {
			return c, st, nil
		}
	}
	return c, i.status, nil
}
