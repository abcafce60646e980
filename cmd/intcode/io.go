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
	"bytes"
	"io"
	"strconv"

	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
)

func isIntSep(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// scanInts is a bufio.SplitFunc for integers separated by commas or white
// space.
func scanInts(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isIntSep(data[start]) {
		start++
	}
	for n := start; n < len(data); n++ {
		if isIntSep(data[n]) {
			return n + 1, data[start:n], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// intInput returns an IN handler that reads one integer from r per call. If
// not nil, prompt is called before reading. Once r is exhausted, the handler
// provides nothing.
func intInput(r io.Reader, prompt func()) vm.InHandler {
	s := bufio.NewScanner(r)
	s.Split(scanInts)
	return func(i *vm.Instance) error {
		if prompt != nil {
			prompt()
		}
		if !s.Scan() {
			return errors.Wrap(s.Err(), "read failed")
		}
		v, err := strconv.ParseInt(s.Text(), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid input %q", s.Text())
		}
		i.ProvideInput(vm.Cell(v))
		return nil
	}
}

// intOutput returns an OUT handler that writes values to w in decimal, one per
// line.
func intOutput(w io.Writer) vm.OutHandler {
	b := make([]byte, 0, 24)
	return func(_ *vm.Instance, v vm.Cell) error {
		b = strconv.AppendInt(b[:0], int64(v), 10)
		b = append(b, '\n')
		_, err := w.Write(b)
		return errors.Wrap(err, "write failed")
	}
}

var errInterrupted = errors.New("interrupted")

// Control keys handled by lineEditor.
const (
	keyInterrupt = 0x03 // ^C
	keyEOF       = 0x04 // ^D
	keyKill      = 0x15 // ^U
	keyBackspace = 0x08 // ^H
	keyDelete    = 0x7f
)

// lineEditor provides minimal line editing for a terminal in raw mode: echo,
// backspace, kill line, ^D for end of input and ^C to interrupt. Read returns
// input one full line at a time.
type lineEditor struct {
	r    *bufio.Reader
	w    io.Writer
	line []byte
	buf  []byte
}

func newLineEditor(r io.Reader, w io.Writer) *lineEditor {
	return &lineEditor{r: bufio.NewReader(r), w: w}
}

func (e *lineEditor) Read(p []byte) (int, error) {
	if len(e.buf) == 0 {
		if err := e.edit(); err != nil {
			return 0, err
		}
	}
	n := copy(p, e.buf)
	e.buf = e.buf[n:]
	return n, nil
}

func (e *lineEditor) echo(b ...byte) {
	e.w.Write(b)
}

func (e *lineEditor) erase(n int) {
	e.echo(bytes.Repeat([]byte{'\b', ' ', '\b'}, n)...)
	e.line = e.line[:len(e.line)-n]
}

// commit moves the current line to the read buffer.
func (e *lineEditor) commit() {
	e.buf = append(e.buf[:0], e.line...)
	e.line = e.line[:0]
}

// edit reads keys until a line is complete.
func (e *lineEditor) edit() error {
	for {
		c, err := e.r.ReadByte()
		if err == io.EOF && len(e.line) > 0 {
			e.commit()
			return nil
		}
		if err != nil {
			return err
		}
		switch c {
		case '\r', '\n':
			e.echo('\r', '\n')
			e.line = append(e.line, '\n')
			e.commit()
			return nil
		case keyBackspace, keyDelete:
			if len(e.line) > 0 {
				e.erase(1)
			}
		case keyKill:
			e.erase(len(e.line))
		case keyEOF:
			if len(e.line) == 0 {
				return io.EOF
			}
		case keyInterrupt:
			e.echo('^', 'C', '\r', '\n')
			e.line = e.line[:0]
			return errInterrupted
		default:
			if c >= ' ' || c == '\t' {
				e.line = append(e.line, c)
				e.echo(c)
			}
		}
	}
}
