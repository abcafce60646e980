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
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/intcode-vm/intcode/vm"
	"github.com/pkg/errors"
)

const maxErrors = 10

// ErrMsg is a single assembler error.
type ErrMsg struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble. It lists all errors found in
// the source, up to 10.
type ErrAsm []ErrMsg

func (e ErrAsm) Error() string {
	var b strings.Builder
	for n, m := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.Pos.String())
		b.WriteString(": ")
		b.WriteString(m.Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type constant struct {
	pos   scanner.Position
	value vm.Cell
}

type parser struct {
	i      []vm.Cell
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]constant
	errs   ErrAsm
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]constant)
	return p
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, p.pc-len(p.i)+1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrMsg{pos, msg})
	}
}

func (p *parser) useLabel(pos scanner.Position, name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(pos scanner.Position, name string) {
	if name == "" {
		p.error(pos, "empty label name")
		return
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant here: "+c.pos.String())
		return
	}
	l, ok := p.labels[name]
	if !ok {
		p.labels[name] = &label{labelSite{pos, p.pc}, nil}
		return
	}
	if l.address != -1 {
		p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
		return
	}
	l.address = p.pc
	l.pos = pos
}

// next returns the next token, skipping comments.
func (p *parser) next() (tok rune, s string, pos scanner.Position) {
	for {
		tok = p.s.Scan()
		pos = p.s.Position
		if tok == scanner.EOF {
			return tok, "", p.s.Pos()
		}
		s = p.s.TokenText()
		if tok != scanner.Ident || s != "(" {
			return tok, s, pos
		}
		p.skipComment(pos)
	}
}

func (p *parser) skipComment(start scanner.Position) {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return
		}
	}
	p.error(start, "unterminated comment")
}

// value converts s to an integer. s can be an integer literal, a character
// literal or a constant name. ok is false if s is neither of these.
func (p *parser) value(s string) (v vm.Cell, ok bool, err error) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true, nil
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			return 0, false, errors.Errorf("invalid character literal %s", s)
		}
		return vm.Cell(r), true, nil
	}
	if c, ok := p.consts[s]; ok {
		return c.value, true, nil
	}
	return 0, false, nil
}

// operand writes a value or a label reference.
func (p *parser) operand(pos scanner.Position, s string) {
	v, ok, err := p.value(s)
	switch {
	case err != nil:
		p.error(pos, err.Error())
	case ok:
	case s == "" || strings.ContainsAny(s[:1], ":.#@"):
		p.error(pos, "invalid operand: "+s)
	default:
		p.useLabel(pos, s)
	}
	p.write(v)
}

func pow10(n int) vm.Cell {
	v := vm.Cell(1)
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}

func (p *parser) instruction(pos scanner.Position, op vm.Opcode) {
	at := p.pc
	cell := vm.Cell(op)
	p.write(cell)
	for k := 1; k <= op.Params(); k++ {
		tok, s, apos := p.next()
		if tok == scanner.EOF {
			p.error(pos, "missing operand for "+op.String())
			break
		}
		if tok != scanner.Ident {
			p.error(apos, "unexpected character "+strconv.QuoteRune(tok))
			p.write(0)
			continue
		}
		m := vm.Position
		switch s[0] {
		case '#':
			m = vm.Immediate
			s = s[1:]
		case '@':
			m = vm.Relative
			s = s[1:]
		}
		if m == vm.Immediate && k == op.Dst() {
			p.error(apos, "immediate destination operand for "+op.String()+": #"+s)
		}
		cell += vm.Cell(m) * pow10(k+1)
		p.operand(apos, s)
	}
	p.i[at] = cell
}

func (p *parser) directive(pos scanner.Position, d string) {
	switch d {
	case ".org":
		tok, s, apos := p.next()
		if tok != scanner.Ident {
			p.error(pos, ".org: missing address")
			return
		}
		v, ok, err := p.value(s)
		if err != nil || !ok || v < 0 {
			p.error(apos, ".org: invalid address "+s)
			return
		}
		if v >= vm.MaxMemory {
			p.error(apos, ".org: address out of range "+s)
			return
		}
		p.pc = int(v)
	case ".dat":
		tok, s, apos := p.next()
		if tok != scanner.Ident {
			p.error(pos, ".dat: missing value")
			return
		}
		p.operand(apos, s)
	case ".equ":
		tok, name, npos := p.next()
		if tok != scanner.Ident {
			p.error(pos, ".equ: expected identifier")
			return
		}
		if l, ok := p.labels[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previously defined/used as a label here: "+l.pos.String())
			return
		}
		tok, s, vpos := p.next()
		if tok != scanner.Ident {
			p.error(npos, ".equ: missing value for "+name)
			return
		}
		v, ok, err := p.value(s)
		if err != nil || !ok {
			p.error(vpos, ".equ: invalid value "+s)
			return
		}
		p.consts[name] = constant{npos, v}
	default:
		p.error(pos, "unknown directive: "+d)
	}
}

// resolve patches label uses with the label addresses.
func (p *parser) resolve() {
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok, s, pos := p.next(); tok != scanner.EOF && len(p.errs) < maxErrors; tok, s, pos = p.next() {
		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		switch s[0] {
		case ':':
			p.defineLabel(pos, s[1:])
		case '.':
			p.directive(pos, s)
		default:
			if op, ok := opcodeIndex[strings.ToLower(s)]; ok {
				p.instruction(pos, op)
				break
			}
			// raw data
			v, ok, err := p.value(s)
			switch {
			case err != nil:
				p.error(pos, err.Error())
			case !ok:
				p.error(pos, "unknown instruction "+s)
			default:
				p.write(v)
			}
		}
	}

	p.resolve()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return vm.Image(p.i[:p.end]), nil
}
