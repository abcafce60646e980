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

package main

import (
	"bufio"
	"io"
	"os"

	"github.com/intcode-vm/intcode/lang/ascii"
	"github.com/intcode-vm/intcode/vm"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program",
	Short: "Run an Intcode program.",
	Long: `Run an Intcode program.

Values given with --input are queued before the program starts. Further input
is read from stdin when the program needs it: integers separated by commas or
white space, or lines of text in --ascii mode. Output values are printed one
per line, or as text in --ascii mode.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runProgram(cmd, args[0]))
	},
}

// runProgram runs the program in fileName and returns the process exit code.
func runProgram(cmd *cobra.Command, fileName string) int {
	var (
		input     = getCells(cmd, "input")
		asciiMode = getFlag(cmd, "ascii")
		noRaw     = getFlag(cmd, "noraw")
		maxSteps  = getInt(cmd, "max-steps")
		memSize   = getInt(cmd, "mem")
		dump      = getFlag(cmd, "dump")
		source    = getFlag(cmd, "asm")
	)
	img, err := loadProgram(fileName, source)
	if err != nil {
		fail(exitUsage, err)
	}
	log.Debugf("%s: loaded %d cells", fileName, len(img))

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	var stdin io.Reader = os.Stdin
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if asciiMode && interactive && !noRaw {
		restore, err := setRawIO(os.Stdin.Fd())
		if err != nil {
			log.Debugf("raw terminal IO disabled: %v", err)
		} else {
			defer restore()
			stdin = newLineEditor(os.Stdin, os.Stdout)
		}
	}

	opts := []vm.Option{vm.Input(input...)}
	if memSize > 0 {
		opts = append(opts, vm.MemSize(memSize))
	}
	if asciiMode {
		in := ascii.LineInput(stdin)
		opts = append(opts,
			vm.BindInHandler(func(i *vm.Instance) error {
				stdout.Flush()
				return in(i)
			}),
			vm.BindOutHandler(ascii.NewWriter(stdout)))
	} else {
		opts = append(opts,
			vm.BindInHandler(intInput(stdin, func() {
				stdout.Flush()
				if interactive {
					os.Stderr.WriteString("? ")
				}
			})),
			vm.BindOutHandler(intOutput(stdout)))
	}
	i, err := vm.New(img, opts...)
	if err != nil {
		fail(exitUsage, err)
	}

	var st vm.Status
	if maxSteps > 0 {
		var n int
		n, st, err = i.RunSteps(maxSteps)
		if err == nil && st == vm.Running {
			err = errors.Errorf("step limit reached after %d instructions", n)
		}
	} else {
		st, err = i.Run()
	}
	stdout.Flush()
	log.WithFields(log.Fields{
		"status":       st,
		"instructions": i.InstructionCount(),
		"pc":           i.PC,
	}).Debug("stopped")

	if dump {
		dumpState(i, stdout)
	}
	if errors.Cause(err) == errInterrupted {
		log.Error(err)
		return exitInterrupted
	}
	code := exitCode(st, err)
	switch {
	case err != nil:
		report(err)
	case code == exitAwaiting:
		log.Warn("program waiting for input")
	}
	return code
}

// dumpState dumps the VM state to w, or pretty prints it to stderr in verbose
// mode.
func dumpState(i *vm.Instance, w *bufio.Writer) {
	defer w.Flush()
	if !log.IsLevelEnabled(log.DebugLevel) {
		if err := i.Dump(w); err != nil {
			log.Error(err)
		}
		return
	}
	p := pp.New()
	p.SetColoringEnabled(term.IsTerminal(int(os.Stderr.Fd())))
	p.Fprintln(os.Stderr, i.State())
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int64SliceP("input", "i", nil, "initial input values")
	runCmd.Flags().Bool("ascii", false, "ASCII mode: text input and output")
	runCmd.Flags().Bool("noraw", false, "disable raw terminal IO in ASCII mode")
	runCmd.Flags().Int("max-steps", 0, "stop after that many instructions (0 for no limit)")
	runCmd.Flags().Int("mem", 0, "initial memory size in cells")
	runCmd.Flags().Bool("dump", false, "dump the VM state upon exit")
	runCmd.Flags().Bool("asm", false, "the program is an assembly source file")
}
