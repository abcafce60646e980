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

// The intcode command line tool runs, chains, assembles and disassembles
// Intcode programs.
//
// Usage:
//
//	intcode run [flags] program
//	intcode chain [flags] program
//	intcode asm [-o file] source
//	intcode disasm [--listing] program
//
// Programs are text files of comma separated integers. With --asm, run and
// chain accept an assembly source file instead.
//
// run flags:
//
//	-i, --input values
//		  initial input values, comma separated
//	--ascii
//		  ASCII mode: text input and output
//	--noraw
//		  disable raw terminal IO in ASCII mode
//	--max-steps int
//		  stop after that many instructions (0 for no limit)
//	--mem int
//		  initial memory size in cells
//	--dump
//		  dump the VM state upon exit
//
// In the default mode, run reads integers from stdin whenever the program
// needs input and prints output values one per line. In ASCII mode, input is
// read one line at a time and output values are printed as text. Output values
// outside of the ASCII range are printed in decimal on their own line.
//
// When stdin is a terminal and ASCII mode is enabled, the terminal is switched
// to raw mode and intcode provides basic line editing: backspace, ^U to clear
// the line, ^D to end input and ^C to interrupt. Use --noraw to disable this.
//
// chain flags:
//
//	--stages values
//		  initial input value of each stage
//	-i, --input values
//		  input values for the first stage
//	--feedback
//		  feed the output of the last stage back to the first
//	--max-steps int
//		  stop after that many instructions in total (0 for no limit)
//
// For example, to run five amplifiers in a feedback loop:
//
//	intcode chain --feedback --stages 9,8,7,6,5 -i 0 amp.ic
//
// --verbose (-v) enables debug logging, full error traces, and in conjunction
// with --dump, pretty prints the VM state to stderr.
//
// Exit status is 0 on success, 1 on command line, IO or assembly errors, 2 if
// the program failed or hit the step limit, 3 if it was left waiting for input
// and 130 if interrupted with ^C.
package main
