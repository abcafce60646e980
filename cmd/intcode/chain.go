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
	"os"

	"github.com/intcode-vm/intcode/pipe"
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain [flags] program",
	Short: "Run copies of a program connected output to input.",
	Long: `Run one copy of the program per value given with --stages. Each copy gets
its stage value as first input, like amplifier phase settings. The output of
each stage is fed to the next one, and with --feedback, the output of the last
stage goes back to the first.

Values given with --input are fed to the first stage. All values output by the
last stage are printed, one per line.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runChain(cmd, args[0]))
	},
}

func runChain(cmd *cobra.Command, fileName string) int {
	var (
		phases   = getCells(cmd, "stages")
		input    = getCells(cmd, "input")
		feedback = getFlag(cmd, "feedback")
		maxSteps = getInt(cmd, "max-steps")
		source   = getFlag(cmd, "asm")
	)
	if len(phases) == 0 {
		fail(exitUsage, errors.New("no stages"))
	}
	img, err := loadProgram(fileName, source)
	if err != nil {
		fail(exitUsage, err)
	}
	inputs := make([][]vm.Cell, len(phases))
	for n, p := range phases {
		inputs[n] = []vm.Cell{p}
	}
	stages, err := pipe.Replicate(img, inputs)
	if err != nil {
		fail(exitUsage, err)
	}
	p, err := pipe.New(stages, pipe.Feedback(feedback), pipe.MaxSteps(maxSteps))
	if err != nil {
		fail(exitUsage, err)
	}

	out, err := p.Run(input...)
	stdout := bufio.NewWriter(os.Stdout)
	write := intOutput(stdout)
	for _, v := range out {
		if err := write(nil, v); err != nil {
			fail(exitUsage, err)
		}
	}
	if err := stdout.Flush(); err != nil {
		fail(exitUsage, err)
	}
	for n, s := range p.Stages() {
		log.WithFields(log.Fields{
			"status":       s.Status(),
			"instructions": s.InstructionCount(),
		}).Debugf("stage %d", n)
	}

	code := chainExitCode(err)
	if err != nil {
		report(err)
	}
	return code
}

// chainExitCode returns the process exit code for a pipeline that stopped with
// err. A deadlocked pipeline is waiting for input.
func chainExitCode(err error) int {
	switch errors.Cause(err) {
	case nil:
		return exitOK
	case pipe.ErrDeadlock:
		return exitAwaiting
	default:
		return exitFault
	}
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().Int64Slice("stages", nil, "initial input value of each stage")
	chainCmd.Flags().Int64SliceP("input", "i", nil, "input values for the first stage")
	chainCmd.Flags().Bool("feedback", false, "feed the output of the last stage back to the first")
	chainCmd.Flags().Int("max-steps", 0, "stop after that many instructions in total (0 for no limit)")
	chainCmd.Flags().Bool("asm", false, "the program is an assembly source file")
}
