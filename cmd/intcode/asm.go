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

	"github.com/intcode-vm/intcode/asm"
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source",
	Short: "Assemble an Intcode assembly source file.",
	Long: `Assemble an Intcode assembly source file and write the resulting program
as comma separated integers to stdout or to the file given with -o.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		assembleFile(args[0], getString(cmd, "output"))
	},
}

func assembleFile(src, dst string) {
	img, err := loadProgram(src, true)
	if err != nil {
		fail(exitUsage, err)
	}
	log.Debugf("%s: %d cells", src, len(img))
	if dst == "" || dst == "-" {
		if err = asm.WriteImage(os.Stdout, img); err != nil {
			fail(exitUsage, err)
		}
		return
	}
	f, err := os.Create(dst)
	if err != nil {
		fail(exitUsage, errors.Wrap(err, "create failed"))
	}
	err = asm.WriteImage(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fail(exitUsage, err)
	}
}

var disasmCmd = &cobra.Command{
	Use:   "disasm program",
	Short: "Disassemble an Intcode program.",
	Long: `Disassemble an Intcode program. Unless --listing is set, the output can be
fed back to the asm command to rebuild the same program.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		disassembleFile(args[0], getFlag(cmd, "listing"))
	},
}

func disassembleFile(fileName string, listing bool) {
	img, err := asm.Load(fileName)
	if err != nil {
		fail(exitUsage, err)
	}
	w := bufio.NewWriter(os.Stdout)
	if listing {
		err = asm.DisassembleAll(img, 0, w)
	} else {
		err = disassemble(img, w)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fail(exitUsage, err)
	}
}

// disassemble writes one instruction per line, without addresses.
func disassemble(img vm.Image, w *bufio.Writer) error {
	var err error
	for pc := 0; pc < len(img) && err == nil; {
		pc, err = asm.Disassemble(img, pc, w)
		w.WriteByte('\n')
	}
	return err
}

func init() {
	rootCmd.AddCommand(asmCmd, disasmCmd)
	asmCmd.Flags().StringP("output", "o", "", "write the program to `file`")
	disasmCmd.Flags().Bool("listing", false, "print addresses")
}
