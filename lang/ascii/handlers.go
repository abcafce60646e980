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

package ascii

import (
	"bufio"
	"io"
	"strconv"

	"github.com/intcode-vm/intcode/internal/errw"
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
)

// LineInput returns an IN handler that reads input from r one line at a time.
// Each call provides a full line, including the trailing '\n' (added if the
// last line of r lacks one). Once r is exhausted the handler provides nothing
// and the VM pauses with status AwaitingInput.
func LineInput(r io.Reader) vm.InHandler {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return func(i *vm.Instance) error {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "read failed")
		}
		if line == "" {
			return nil
		}
		if line[len(line)-1] != '\n' {
			line += "\n"
		}
		i.ProvideInput(Encode(line)...)
		return nil
	}
}

// NewWriter returns an OUT handler that writes ASCII output values to w as
// bytes. Other values are written in decimal on a line of their own.
func NewWriter(w io.Writer) vm.OutHandler {
	ew := errw.New(w)
	bol := true
	return func(_ *vm.Instance, v vm.Cell) error {
		if IsASCII(v) {
			ew.Write([]byte{byte(v)})
			bol = v == '\n'
			return ew.Err
		}
		if !bol {
			ew.Write([]byte{'\n'})
		}
		io.WriteString(ew, strconv.FormatInt(int64(v), 10))
		ew.Write([]byte{'\n'})
		bol = true
		return ew.Err
	}
}
