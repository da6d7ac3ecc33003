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

import (
	"strings"
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func TestParse(t *testing.T) {
	tests := []struct {
		desc          string
		in            string
		check         func(t *testing.T, f *File)
		wantErrSubstr string
	}{{
		desc: "empty source",
		in:   "",
		check: func(t *testing.T, f *File) {
			if len(f.Statements) != 0 {
				t.Fatalf("got %d statements, want 0", len(f.Statements))
			}
		},
	}, {
		desc: "single chain",
		in:   `def_type("test") => u8;`,
		check: func(t *testing.T, f *File) {
			if len(f.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(f.Statements))
			}
			items := f.Statements[0].Items
			if len(items) != 2 {
				t.Fatalf("got %d chain items, want 2", len(items))
			}
			it := items[0].AsItem()
			if it == nil {
				t.Fatalf("chain head is not an item")
			}
			if name, _ := it.Name.Simple(); name != "def_type" {
				t.Errorf("chain head is %q, want def_type", name)
			}
			if s, ok := it.Arg(0).StringValue(); !ok || s != "test" {
				t.Errorf("def_type argument got %q, ok=%v", s, ok)
			}
			tail := items[1].AsItem()
			if tail == nil || !tail.IsNameOnly() {
				t.Errorf("chain tail is not a name-only item: %v", items[1])
			}
		},
	}, {
		desc: "bracketed tag list",
		in:   `container[virtual: "true"] { };`,
		check: func(t *testing.T, f *File) {
			c := f.Statements[0].Items[0].AsItem()
			if c == nil {
				t.Fatalf("statement head is not an item")
			}
			if s, ok := c.Tagged("virtual").StringValue(); !ok || s != "true" {
				t.Errorf("virtual tag got %q, ok=%v", s, ok)
			}
			if c.Block == nil {
				t.Errorf("container has no block")
			}
		},
	}, {
		desc:          "stray close paren",
		in:            `container) => u8;`,
		wantErrSubstr: "expected '=>' or ';'",
	}, {
		desc: "item with tags and block",
		in: `
def_type("test") => container {
    virtual_field("len", ref: "../body", prop: "length") => u16;
    field("body") => array(ref: "../len") => u8;
};`,
		check: func(t *testing.T, f *File) {
			if len(f.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(f.Statements))
			}
			container := f.Statements[0].Items[1].AsItem()
			if container == nil {
				t.Fatalf("second chain item is not an item")
			}
			if len(container.Block) != 2 {
				t.Fatalf("container block has %d statements, want 2", len(container.Block))
			}

			vf := container.Block[0].Items[0].AsItem()
			if name, _ := vf.Name.Simple(); name != "virtual_field" {
				t.Fatalf("first block item is %q, want virtual_field", name)
			}
			ref, ok := vf.Tagged("ref").AsFieldReference()
			if !ok {
				t.Fatalf("ref tag is not a field reference")
			}
			if want := (FieldReference{Up: 1, Name: "body"}); ref != want {
				t.Errorf("ref tag got %v, want %v", ref, want)
			}
			if prop, ok := vf.Tagged("prop").StringValue(); !ok || prop != "length" {
				t.Errorf("prop tag got %q, ok=%v", prop, ok)
			}

			field := container.Block[1].Items[0].AsItem()
			if err := field.Validate(1, nil, nil); err != nil {
				t.Errorf("field did not validate: %v", err)
			}
			if len(container.Block[1].Items) != 3 {
				t.Errorf("field chain has %d items, want 3", len(container.Block[1].Items))
			}
		},
	}, {
		desc: "empty block",
		in:   `def_type("test") => container { };`,
		check: func(t *testing.T, f *File) {
			container := f.Statements[0].Items[1].AsItem()
			if container.Block == nil {
				t.Fatalf("container has no block")
			}
			if container.IsNameOnly() {
				t.Errorf("an item with a block is not name-only")
			}
			if len(container.Block) != 0 {
				t.Errorf("block has %d statements, want 0", len(container.Block))
			}
		},
	}, {
		desc: "number value",
		in:   `const_field("x", value: 42) => u8;`,
		check: func(t *testing.T, f *File) {
			cf := f.Statements[0].Items[0].AsItem()
			if n, ok := cf.Tagged("value").NumberValue(); !ok || n != "42" {
				t.Errorf("value tag got %q, ok=%v", n, ok)
			}
		},
	}, {
		desc:          "garbage chain",
		in:            " ofajsdfj => ;",
		wantErrSubstr: "expected a value",
	}, {
		desc:          "missing semicolon",
		in:            "u8",
		wantErrSubstr: "expected '=>' or ';'",
	}, {
		desc:          "unclosed block",
		in:            `def_type("t") => container { field("a") => u8;`,
		wantErrSubstr: "missing '}'",
	}, {
		desc:          "duplicate tag",
		in:            `array(ref: "a", ref: "b") => u8;`,
		wantErrSubstr: "duplicate tag",
	}, {
		desc:          "unclosed arguments",
		in:            `array(ref: "a" => u8;`,
		wantErrSubstr: "expected ',' or ')'",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f, err := Parse(tt.in, "test.pdl")
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Fatalf("%s", diff)
			}
			if err != nil {
				return
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestParseMultipleStatements(t *testing.T) {
	f, err := Parse(`
def_type("a") => u8;
def_type("b") => u16;
`, "test.pdl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(f.Statements))
	}
}

func TestParseReportsAllErrors(t *testing.T) {
	// One bad statement does not hide a later one.
	_, err := Parse(`
=> u8;
=> u16;
`, "test.pdl")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got := strings.Count(err.Error(), "expected a value"); got != 2 {
		t.Errorf("error reports %d bad statements, want 2:\n%v", got, err)
	}
}
