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

// Package asm provides utility functions to read and write Intcode programs,
// and to assemble and disassemble Intcode VM code.
//
// Program format:
//
// Intcode programs are stored as comma separated decimal integers, usually
// on a single line. See ReadImage and WriteImage.
//
// Supported assembler mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	-----------------------------------------------------
//	1	add	a b dst	dst = a + b
//	2	mul	a b dst	dst = a * b
//	3	in	dst	read next input value into dst
//	4	out	a	output a
//	5	jt	c tgt	jump to tgt if c != 0 (alias: jnz)
//	6	jf	c tgt	jump to tgt if c == 0 (alias: jz)
//	7	lt	a b dst	dst = 1 if a < b, 0 otherwise
//	8	eq	a b dst	dst = 1 if a == b, 0 otherwise
//	9	arb	a	add a to the relative base (alias: rb)
//	99	hlt		halt (alias: halt)
//
// Operands:
//
// The addressing mode of an operand is given by its prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@42	relative mode: the value at address rb+42
//
// Destination operands cannot use immediate mode.
//
// Operands and .dat values can be integer literals (see strconv.ParseInt,
// base 0), Go character literals between single quotes, constants defined
// with .equ, or labels, in which case the label address is used.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:). Forward references
// are ok:
//
//	:loop	in 100
//		out 100
//		jt #1 #loop
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// Will compile the specified value as-is. Integer literals, character literals
// and constants found where an instruction is expected are compiled the same
// way, so .dat is only required for labels.
//
// Disassembly uses the same syntax, so disassembled code can be assembled
// back. Cells that do not decode as a valid instruction are disassembled as
// .dat directives.
package asm
