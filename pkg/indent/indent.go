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

// Package indent indents lines of text with a prefix.
package indent

import (
	"bytes"
	"io"
)

// String returns s with each line prefixed by prefix.  The text
// following a trailing newline is not considered a line.
func String(prefix, s string) string {
	if prefix == "" || s == "" {
		return s
	}
	return string(Bytes([]byte(prefix), []byte(s)))
}

// Bytes returns b with each line prefixed by prefix.  The bytes
// following a trailing newline are not considered a line.
func Bytes(prefix, b []byte) []byte {
	if len(prefix) == 0 || len(b) == 0 {
		return b
	}
	buf := &bytes.Buffer{}
	bol := true
	for _, c := range b {
		if bol {
			buf.Write(prefix)
		}
		buf.WriteByte(c)
		bol = c == '\n'
	}
	return buf.Bytes()
}

// NewWriter returns an io.Writer that prefixes each line written to it
// with prefix and then writes it to w.  The returned count is the
// number of bytes from the caller's buffer that made it out, not
// counting the inserted prefixes.
func NewWriter(w io.Writer, prefix string) io.Writer {
	if prefix == "" {
		return w
	}
	return &indenter{
		w:      w,
		prefix: []byte(prefix),
		bol:    true,
	}
}

type indenter struct {
	w      io.Writer
	prefix []byte
	bol    bool // at the beginning of a line
}

func (in *indenter) Write(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	// Expand into a single buffer and issue a single Write to the
	// underlying writer, then map the number of expanded bytes written
	// back onto the caller's buffer.
	out := &bytes.Buffer{}
	bol := in.bol
	for _, c := range buf {
		if bol {
			out.Write(in.prefix)
		}
		out.WriteByte(c)
		bol = c == '\n'
	}

	wrote, err := in.w.Write(out.Bytes())

	var n int
	for _, c := range buf {
		need := 1
		if in.bol {
			need += len(in.prefix)
		}
		if wrote < need {
			break
		}
		wrote -= need
		n++
		in.bol = c == '\n'
	}
	return n, err
}
