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

// Errors returned by Step and Run. They are always wrapped with some context
// (pc, parameter number...); use errors.Cause to get at the sentinel value.
var (
	// ErrInvalidOpcode is returned when the two low digits of the cell at pc
	// do not map to any instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidMode is returned for an undefined parameter mode digit and
	// for immediate mode on a destination parameter.
	ErrInvalidMode = errors.New("invalid parameter mode")
	// ErrNegativeAddress is returned on reads or writes at a negative memory
	// address.
	ErrNegativeAddress = errors.New("negative address")
	// ErrMemoryLimit is returned on writes at or above MaxMemory.
	ErrMemoryLimit = errors.New("address beyond memory limit")
)
