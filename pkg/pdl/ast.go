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

// The abstract syntax tree produced by Parse.  A source file is a list
// of statements; a statement is a chain of values joined by "=>"; a
// value is an item, a quoted string, or a number; an item is a named
// construct with positional arguments, tagged arguments, and an
// optional block of nested statements.

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A File is a parsed definition source: its top level statements in
// order.
type File struct {
	Statements []*Statement
}

// A Statement is a chain of values I0 => I1 => ... => In terminated by
// a semicolon.
type Statement struct {
	Items []*Value
}

// An Ident is the name of an item.  A name qualified with "::" is not
// simple, and the lowering only acts on simple names.  The lexer ends
// an identifier at ':', so the names Parse produces are always simple.
type Ident struct {
	name string
}

// SimpleIdent returns the unqualified identifier name.
func SimpleIdent(name string) Ident { return Ident{name: name} }

// Simple returns the identifier's name when it is a plain unqualified
// name, and false otherwise.
func (id Ident) Simple() (string, bool) {
	if id.name == "" || strings.Contains(id.name, "::") {
		return "", false
	}
	return id.name, true
}

// String returns the identifier as written in source.
func (id Ident) String() string { return id.name }

// A Value is one element of a statement chain or one argument of an
// item.  Exactly one of the interpretations applies; the accessors are
// nil-safe so lookups that came back empty can be chained.
type Value struct {
	item   *Item
	text   string
	number bool
}

// AsItem returns the value's item, or nil if the value is not an item.
func (v *Value) AsItem() *Item {
	if v == nil {
		return nil
	}
	return v.item
}

// StringValue returns the value's text if the value is a quoted
// string.
func (v *Value) StringValue() (string, bool) {
	if v == nil || v.item != nil || v.number {
		return "", false
	}
	return v.text, true
}

// NumberValue returns the value's literal text if the value is a
// number.
func (v *Value) NumberValue() (string, bool) {
	if v == nil || !v.number {
		return "", false
	}
	return v.text, true
}

// AsFieldReference parses the value as a field reference.  References
// are written as quoted strings in source.
func (v *Value) AsFieldReference() (FieldReference, bool) {
	s, ok := v.StringValue()
	if !ok {
		return FieldReference{}, false
	}
	return ParseFieldReference(s)
}

// String returns the value roughly as written in source.
func (v *Value) String() string {
	switch {
	case v == nil:
		return "<nil>"
	case v.item != nil:
		return v.item.String()
	case v.number:
		return v.text
	default:
		return fmt.Sprintf("%q", v.text)
	}
}

// An Item is a named construct in a statement:
//
//	name(arg0, arg1, tag: value) { statements }
//
// The parenthesized list and the block are both optional.
type Item struct {
	Name       Ident
	Args       []*Value          // positional arguments, in order
	TaggedArgs map[string]*Value // tagged arguments by tag name
	Block      []*Statement      // nil when the item has no block

	file string
	line int // 1's based line number
	col  int // 1's based column number
}

// Arg returns the nth positional argument, or nil if there are not
// that many.
func (i *Item) Arg(n int) *Value {
	if n < 0 || n >= len(i.Args) {
		return nil
	}
	return i.Args[n]
}

// Tagged returns the value of the tagged argument name, or nil if the
// tag is absent.
func (i *Item) Tagged(name string) *Value {
	return i.TaggedArgs[name]
}

// IsNameOnly reports whether the item consists of nothing but its
// name: no arguments, no tags, no block.
func (i *Item) IsNameOnly() bool {
	return len(i.Args) == 0 && len(i.TaggedArgs) == 0 && i.Block == nil
}

// Validate checks the item's argument shape: it must carry exactly
// numArgs positional arguments, every tag present must be listed in
// allowed, and every tag in required must be present.
func (i *Item) Validate(numArgs int, allowed, required []string) error {
	if len(i.Args) != numArgs {
		return errors.Errorf("'%s' takes %d positional argument(s), got %d",
			i.Name, numArgs, len(i.Args))
	}
	for tag := range i.TaggedArgs {
		known := false
		for _, a := range allowed {
			if a == tag {
				known = true
				break
			}
		}
		if !known {
			return errors.Errorf("unknown tag %q in '%s'", tag, i.Name)
		}
	}
	for _, tag := range required {
		if i.TaggedArgs[tag] == nil {
			return errors.Errorf("'%s' requires tag %q", i.Name, tag)
		}
	}
	return nil
}

// Location returns the location in the source where i was written.
func (i *Item) Location() string {
	switch {
	case i.file == "" && i.line == 0:
		return "unknown"
	case i.file == "":
		return fmt.Sprintf("line %d:%d", i.line, i.col)
	default:
		return fmt.Sprintf("%s:%d:%d", i.file, i.line, i.col)
	}
}

// String returns the item's name with markers for its argument list
// and block, for use in messages.
func (i *Item) String() string {
	s := i.Name.String()
	if len(i.Args) > 0 || len(i.TaggedArgs) > 0 {
		s += "(...)"
	}
	if i.Block != nil {
		s += " {...}"
	}
	return s
}
