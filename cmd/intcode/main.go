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
	"fmt"
	"os"

	"github.com/intcode-vm/intcode/asm"
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1 // bad command line, IO error, assembly error
	exitFault    = 2 // the VM failed or hit the step limit
	exitAwaiting = 3 // the VM was left waiting for input

	exitInterrupted = 130 // ^C in raw terminal mode
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "Intcode virtual machine and tools.",
	Long: `Run, chain, assemble and disassemble Intcode programs.

Programs are text files of comma separated integers. Assembly sources are
described in the documentation of package github.com/intcode-vm/intcode/asm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(exitUsage)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsage)
	}
	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsage)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsage)
	}
	return r
}

func getCells(cmd *cobra.Command, flag string) []vm.Cell {
	r, err := cmd.Flags().GetInt64Slice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsage)
	}
	cells := make([]vm.Cell, len(r))
	for n, v := range r {
		cells[n] = vm.Cell(v)
	}
	return cells
}

// loadProgram loads a program image, or assembles it if fromSource is set.
func loadProgram(fileName string, fromSource bool) (vm.Image, error) {
	if !fromSource {
		return asm.Load(fileName)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(fileName, f)
}

// fail reports err and exits with the given code.
func fail(code int, err error) {
	report(err)
	os.Exit(code)
}

// report logs err. With --verbose, errors are logged with their stack trace.
func report(err error) {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Errorf("%+v", err)
		return
	}
	if errs, ok := err.(asm.ErrAsm); ok {
		for _, e := range errs {
			log.Error(e.Pos.String() + ": " + e.Msg)
		}
		return
	}
	log.Error(err)
}

// exitCode returns the process exit code for a VM that stopped with the given
// status and error.
func exitCode(st vm.Status, err error) int {
	switch {
	case err != nil:
		return exitFault
	case st == vm.AwaitingInput:
		return exitAwaiting
	default:
		return exitOK
	}
}
