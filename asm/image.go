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

package asm

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/intcode-vm/intcode/internal/errw"
	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
)

// ReadImage reads a program in Intcode format: comma separated decimal
// integers. White space around values is ignored.
func ReadImage(r io.Reader) (vm.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil, errors.New("empty image")
	}
	fields := strings.Split(s, ",")
	img := make(vm.Image, len(fields))
	for n, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", n)
		}
		img[n] = vm.Cell(v)
	}
	return img, nil
}

// Load loads an image from file fileName.
func Load(fileName string) (vm.Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := ReadImage(f)
	return img, errors.Wrapf(err, "Load %s", fileName)
}

// WriteImage writes img in Intcode format, followed by a new line.
func WriteImage(w io.Writer, img vm.Image) error {
	ew := errw.New(w)
	for n, v := range img {
		if n > 0 {
			ew.Write([]byte{','})
		}
		io.WriteString(ew, strconv.FormatInt(int64(v), 10))
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}
