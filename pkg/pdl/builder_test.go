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
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func TestContainerVariantBuilder(t *testing.T) {
	tests := []struct {
		desc          string
		build         func() (*Type, error)
		wantFields    int
		wantErrSubstr string
	}{{
		desc: "empty container",
		build: func() (*Type, error) {
			return NewContainerVariantBuilder(false).Build()
		},
	}, {
		desc: "two fields",
		build: func() (*Type, error) {
			b := NewContainerVariantBuilder(false)
			b.NormalField("a", NewSimpleScalar("u8"))
			b.NormalField("b", NewSimpleScalar("u16"))
			return b.Build()
		},
		wantFields: 2,
	}, {
		desc: "duplicate field name",
		build: func() (*Type, error) {
			b := NewContainerVariantBuilder(false)
			b.NormalField("a", NewSimpleScalar("u8"))
			b.NormalField("a", NewSimpleScalar("u16"))
			return b.Build()
		},
		wantErrSubstr: `duplicate field name "a"`,
	}, {
		desc: "virtual container with normal field",
		build: func() (*Type, error) {
			b := NewContainerVariantBuilder(true)
			b.NormalField("a", NewSimpleScalar("u8"))
			return b.Build()
		},
		wantErrSubstr: "virtual container cannot contain normal field",
	}, {
		desc: "virtual container with virtual field",
		build: func() (*Type, error) {
			b := NewContainerVariantBuilder(true)
			b.Field("a", NewSimpleScalar("u8"), VirtualField, &FieldPropertyReference{
				Reference: FieldReference{Up: 1, Name: "data"},
				Property:  "length",
			})
			return b.Build()
		},
		wantFields: 1,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			typ, err := tt.build()
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Fatalf("%s", diff)
			}
			if err != nil {
				return
			}
			v := typ.Variant.(*ContainerVariant)
			if got := len(v.Fields); got != tt.wantFields {
				t.Fatalf("got %d fields, want %d", got, tt.wantFields)
			}
			if got, want := len(typ.Data.Children), len(v.Fields); got != want {
				t.Fatalf("got %d children, want %d", got, want)
			}
			for i, f := range v.Fields {
				if f.ChildIndex != i {
					t.Errorf("field %q has child index %d, want %d", f.Name, f.ChildIndex, i)
				}
				if f.Child != typ.Data.Children[i] {
					t.Errorf("field %q child does not alias children[%d]", f.Name, i)
				}
			}
		})
	}
}

func TestUnionVariantBuilder(t *testing.T) {
	tests := []struct {
		desc          string
		build         func() (*Type, error)
		wantCases     int
		wantErrSubstr string
	}{{
		desc: "two cases",
		build: func() (*Type, error) {
			b := NewUnionVariantBuilder("frame", FieldReference{Up: 1, Name: "tag"})
			b.Case("0x00", "ping", NewSimpleScalar("u8"))
			b.Case("0x01", "pong", NewSimpleScalar("u8"))
			return b.Build()
		},
		wantCases: 2,
	}, {
		desc: "duplicate match value",
		build: func() (*Type, error) {
			b := NewUnionVariantBuilder("frame", FieldReference{Up: 1, Name: "tag"})
			b.Case("0x00", "ping", NewSimpleScalar("u8"))
			b.Case("0x00", "pong", NewSimpleScalar("u8"))
			return b.Build()
		},
		wantErrSubstr: `duplicate match value "0x00"`,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			typ, err := tt.build()
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Fatalf("%s", diff)
			}
			if err != nil {
				return
			}
			v := typ.Variant.(*UnionVariant)
			if got := len(v.Cases); got != tt.wantCases {
				t.Fatalf("got %d cases, want %d", got, tt.wantCases)
			}
			for i, c := range v.Cases {
				if c.ChildIndex != i {
					t.Errorf("case %q has child index %d, want %d", c.VariantName, c.ChildIndex, i)
				}
				if c.Child != typ.Data.Children[i] {
					t.Errorf("case %q child does not alias children[%d]", c.VariantName, i)
				}
			}
		})
	}
}

func TestSwitchVariantBuilder(t *testing.T) {
	b := NewSwitchVariantBuilder(FieldReference{Up: 1, Name: "kind"})
	b.Case("1", NewSimpleScalar("u8"))
	b.Case("2", NewSimpleScalar("u16"))
	b.Default(NewSimpleScalar("varint"))

	typ, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v := typ.Variant.(*SwitchVariant)
	if got, want := len(typ.Data.Children), 3; got != want {
		t.Fatalf("got %d children, want %d", got, want)
	}
	if v.DefaultIndex != 2 {
		t.Errorf("got default index %d, want 2", v.DefaultIndex)
	}
	if v.Default != typ.Data.Children[2] {
		t.Errorf("default does not alias children[2]")
	}

	child, err := v.ResolveChildName(&typ.Data, "2")
	if err != nil {
		t.Fatalf("ResolveChildName: %v", err)
	}
	if child != typ.Data.Children[1] {
		t.Errorf("case lookup returned wrong child")
	}

	b = NewSwitchVariantBuilder(FieldReference{Up: 1, Name: "kind"})
	b.Case("1", NewSimpleScalar("u8"))
	b.Case("1", NewSimpleScalar("u16"))
	if _, err := b.Build(); err == nil {
		t.Errorf("duplicate switch match did not fail")
	}

	b = NewSwitchVariantBuilder(FieldReference{Up: 1, Name: "kind"})
	typ, err = b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if typ.Variant.(*SwitchVariant).DefaultIndex != -1 {
		t.Errorf("switch without default should have index -1")
	}
}

func TestSimpleConstructors(t *testing.T) {
	s := NewSimpleScalarWithTarget("u8", IntegerTarget)
	if s.Data.Name != "u8" || s.Variant.(*SimpleScalarVariant).TargetType != IntegerTarget {
		t.Errorf("NewSimpleScalarWithTarget built %v %v", s.Data.Name, s.Variant)
	}

	elem := NewSimpleScalar("u8")
	a := NewArray(FieldReference{Up: 1, Name: "len"}, elem)
	av := a.Variant.(*ArrayVariant)
	if len(a.Data.Children) != 1 || av.Element != a.Data.Children[0] {
		t.Errorf("NewArray element does not alias the only child")
	}
	if av.CountNode != nil {
		t.Errorf("NewArray starts with a resolved count link")
	}

	prefix := NewSimpleScalar("u16")
	p := NewPrefixedString(prefix)
	pv := p.Variant.(*PrefixedStringVariant)
	if pv.LengthIndex != 0 || pv.Length != p.Data.Children[0] {
		t.Errorf("NewPrefixedString length does not alias children[0]")
	}
}
