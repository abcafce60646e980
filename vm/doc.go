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

// Package vm implements the Intcode virtual machine.
//
// Intcode programs are sequences of signed integers loaded into a memory that
// grows on demand. Instructions are variable length: an opcode cell holds the
// instruction number in its two low decimal digits and the addressing mode of
// each parameter in the following digits (0: position, 1: immediate, 2:
// relative to the relative base register).
//
// The VM is single threaded and cooperative. An IN instruction that finds the
// input queue empty pauses the VM with status AwaitingInput and returns
// control to the caller, which can then provide more input and resume it
// with Run. This is how machines are connected together: drain the outputs of
// one VM, feed them to the next one, resume it. See package pipe for a ready
// made driver.
//
// Errors (invalid opcode, invalid mode, negative address, memory limit) are
// fatal for the faulty instance: its PC is left pointing at the offending
// instruction and it should be discarded.
//
// For performance reasons, the PC is not incremented in a single place,
// rather each opcode deals with the PC as needed.
package vm
