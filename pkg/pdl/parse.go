// Copyright 2015 Google Inc.
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

package pdl

// This file implements Parse, which parses protocol definition
// language source into a File of Statements.  The grammar:
//
//	file      := statement*
//	statement := value ( "=>" value )* ";"
//	value     := item | STRING | NUMBER
//	item      := IDENT [ "(" arguments ")" | "[" arguments "]" ]
//	             [ "{" statement* "}" ]
//	arguments := [ argument ( "," argument )* ]
//	argument  := [ IDENT ":" ] value
//
// Errors are accumulated; parsing continues at the next semicolon so
// several errors can be reported from a single call.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// a parser is used to parse the contents of a single definition source.
type parser struct {
	lex    *lexer
	errout *bytes.Buffer
	tokens []*token // stack of pushed tokens (for backing up)
}

// Parse parses input as protocol definition language and returns the
// parsed file.  The path parameter should be the source name where
// input was read from (e.g., the file name the input was read from).
// If one or more errors are encountered, nil and an error describing
// all of them are returned.
func Parse(input, path string) (*File, error) {
	p := &parser{
		lex:    newLexer(input, path),
		errout: &bytes.Buffer{},
	}
	p.lex.errout = p.errout

	f := &File{}
	for {
		t := p.next()
		if t.Code() == tEOF {
			break
		}
		p.push(t)
		if s := p.statement(); s != nil {
			f.Statements = append(f.Statements, s)
		} else {
			p.resync()
		}
	}

	if p.errout.Len() == 0 {
		return f, nil
	}
	return nil, errors.New(strings.TrimSpace(p.errout.String()))
}

// push pushes tokens t back on the input stream so they will be the
// next tokens returned by next.  The tokens list is a LIFO so the
// final token listed to push will be the next token returned.
func (p *parser) push(t ...*token) {
	p.tokens = append(p.tokens, t...)
}

// pop returns the last token pushed, or nil if the token stack is
// empty.
func (p *parser) pop() *token {
	if n := len(p.tokens); n > 0 {
		n--
		defer func() { p.tokens = p.tokens[:n] }()
		return p.tokens[n]
	}
	return nil
}

// next returns the next token from the lexer, skipping error tokens
// (the lexer has already reported them on errout).
func (p *parser) next() *token {
	if t := p.pop(); t != nil {
		return t
	}
	for {
		t := p.lex.NextToken()
		if t.Code() != tError {
			return t
		}
	}
}

// errorf reports a parse error on errout.
func (p *parser) errorf(f string, v ...interface{}) {
	if !strings.HasSuffix(f, "\n") {
		f += "\n"
	}
	fmt.Fprintf(p.errout, f, v...)
}

// resync consumes input through the next semicolon so parsing can
// continue after an error.
func (p *parser) resync() {
	for {
		switch p.next().Code() {
		case ';', tEOF:
			return
		}
	}
}

// statement parses one statement: a chain of values joined by "=>" and
// terminated by a semicolon.  It returns nil after reporting an error.
func (p *parser) statement() *Statement {
	s := &Statement{}
	for {
		v := p.value()
		if v == nil {
			return nil
		}
		s.Items = append(s.Items, v)
		t := p.next()
		switch t.Code() {
		case tArrow:
		case ';':
			return s
		default:
			p.errorf("%v: expected '=>' or ';'", t)
			return nil
		}
	}
}

// value parses one value: an item, a quoted string, or a number.
func (p *parser) value() *Value {
	t := p.next()
	switch t.Code() {
	case tString:
		return &Value{text: t.Text}
	case tNumber:
		return &Value{text: t.Text, number: true}
	case tIdentifier:
		return p.item(t)
	default:
		p.errorf("%v: expected a value", t)
		return nil
	}
}

// item parses the remainder of an item whose name token has already
// been read: an optional parenthesized argument list and an optional
// block.
func (p *parser) item(name *token) *Value {
	it := &Item{
		Name: SimpleIdent(name.Text),
		file: name.File,
		line: name.Line,
		col:  name.Col,
	}

	t := p.next()
	switch t.Code() {
	case openParen:
		if !p.arguments(it, closeParen) {
			return nil
		}
		t = p.next()
	case openBracket:
		if !p.arguments(it, closeBracket) {
			return nil
		}
		t = p.next()
	}
	if t.Code() != openBrace {
		p.push(t)
		return &Value{item: it}
	}

	it.Block = []*Statement{}
	for {
		bt := p.next()
		switch bt.Code() {
		case closeBrace:
			return &Value{item: it}
		case tEOF:
			p.errorf("%s: missing '}'", it.Location())
			return nil
		}
		p.push(bt)
		s := p.statement()
		if s == nil {
			return nil
		}
		it.Block = append(it.Block, s)
	}
}

// arguments parses an argument list up to the closing delimiter.  The
// opening delimiter has already been read.
func (p *parser) arguments(it *Item, until code) bool {
	t := p.next()
	if t.Code() == until {
		return true
	}
	p.push(t)
	for {
		if !p.argument(it) {
			return false
		}
		t := p.next()
		switch t.Code() {
		case ',':
		case until:
			return true
		default:
			p.errorf("%v: expected ',' or %v", t, until)
			return false
		}
	}
}

// argument parses one positional or "tag: value" tagged argument.
func (p *parser) argument(it *Item) bool {
	t := p.next()
	if t.Code() == tIdentifier {
		nt := p.next()
		if nt.Code() == ':' {
			v := p.value()
			if v == nil {
				return false
			}
			if it.TaggedArgs == nil {
				it.TaggedArgs = map[string]*Value{}
			}
			if it.TaggedArgs[t.Text] != nil {
				p.errorf("%v: duplicate tag %q", t, t.Text)
				return false
			}
			it.TaggedArgs[t.Text] = v
			return true
		}
		p.push(nt)
	}
	p.push(t)
	v := p.value()
	if v == nil {
		return false
	}
	it.Args = append(it.Args, v)
	return true
}
