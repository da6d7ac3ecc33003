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

import "strings"

// A FieldReference is a symbolic reference to a named field of an
// enclosing frame.  Up is the number of container, union, or switch
// frames to ascend before looking up Name; Up == 0 looks up Name among
// the current frame's own named children.  The textual form is
// "(../)*NAME".
type FieldReference struct {
	Up   int
	Name string
}

// ParseFieldReference parses s as a field reference.  NAME may be any
// non-empty token that contains neither a slash nor whitespace.  It
// returns false if s is not a valid reference.
func ParseFieldReference(s string) (FieldReference, bool) {
	var r FieldReference
	for strings.HasPrefix(s, "../") {
		r.Up++
		s = s[len("../"):]
	}
	if s == "" || strings.ContainsAny(s, "/ \t\r\n") {
		return FieldReference{}, false
	}
	r.Name = s
	return r, true
}

// String returns the textual form of r.  Parsing the result yields a
// reference equal to r.
func (r FieldReference) String() string {
	return strings.Repeat("../", r.Up) + r.Name
}
