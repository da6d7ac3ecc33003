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

// This file defines the IR node, the variant capability set, and the
// kind enumeration.  The concrete variants live in variant.go and are
// constructed through the builders in builder.go.

import (
	"fmt"
	"io"

	"github.com/protodef/gopdl/pkg/indent"
)

// TypeData is the variant independent part of an IR node: its name and
// the children it owns, in wire order.  Variants refer to children both
// by index and by pointer; for every node the two must agree.
type TypeData struct {
	Name     string
	Children []*Type
}

// A Type is a single node in the IR tree.  The tree of Children edges
// is the owning structure; all other node pointers held by variants
// (field back-pointers, resolved reference links) are non-owning
// pointers into the same tree.
type Type struct {
	Data    TypeData
	Variant Variant
}

// A resolver resolves a field reference relative to the node currently
// being walked.  The resolve pass supplies one to each variant's
// resolveReferences.
type resolver func(v Variant, data *TypeData, ref FieldReference) (*Type, error)

// Variant is the capability set every node shape implements.
type Variant interface {
	// Kind returns the kind of this variant.
	Kind() VariantKind

	// ResolveChildName returns the child the variant knows under name.
	// Containers look through their fields, unions and switches
	// through their cases.  Variants without named children return an
	// error.
	ResolveChildName(data *TypeData, name string) (*Type, error)

	// resolveReferences asks the variant to resolve, through resolve,
	// every field reference it carries, storing the returned links.
	resolveReferences(data *TypeData, resolve resolver) error
}

// A VariantKind is the kind of shape an IR node has.
type VariantKind int

// Enumeration of the node shapes.
const (
	SimpleScalarKind = VariantKind(iota)
	ContainerKind
	ArrayKind
	UnionKind
	SwitchKind
	PrefixedStringKind
)

// VariantKindToName maps VariantKinds to their schema keywords.
var VariantKindToName = map[VariantKind]string{
	SimpleScalarKind:   "simple_scalar",
	ContainerKind:      "container",
	ArrayKind:          "array",
	UnionKind:          "union",
	SwitchKind:         "switch",
	PrefixedStringKind: "pstring",
}

func (k VariantKind) String() string {
	if s, ok := VariantKindToName[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown-variant-%d", k)
}

// A TargetType tells a backend which native representation a simple
// scalar lowers to.  Scalars the core does not recognize carry
// NoTargetType and are left for the backend to map.
type TargetType int

// The known target representations.
const (
	NoTargetType = TargetType(iota)
	IntegerTarget
)

func (t TargetType) String() string {
	switch t {
	case NoTargetType:
		return "none"
	case IntegerTarget:
		return "integer"
	}
	return fmt.Sprintf("unknown-target-%d", t)
}

// Print prints t and everything below it to w in human readable form.
func (t *Type) Print(w io.Writer) {
	switch v := t.Variant.(type) {
	case *SimpleScalarVariant:
		fmt.Fprintf(w, "%s\n", t.Data.Name)
	case *PrefixedStringVariant:
		fmt.Fprintln(w, "pstring {")
		v.Length.Print(indent.NewWriter(w, "  "))
		fmt.Fprintln(w, "}")
	case *ArrayVariant:
		fmt.Fprintf(w, "array ref=%s {\n", v.CountRef)
		v.Element.Print(indent.NewWriter(w, "  "))
		fmt.Fprintln(w, "}")
	case *ContainerVariant:
		if v.IsVirtual {
			fmt.Fprint(w, "virtual ")
		}
		fmt.Fprintln(w, "container {")
		iw := indent.NewWriter(w, "  ")
		for _, f := range v.Fields {
			switch f.FieldKind {
			case VirtualField, ConstField:
				fmt.Fprintf(iw, "%s %q ref=%s prop=%s {\n",
					f.FieldKind, f.Name, f.Property.Reference, f.Property.Property)
			default:
				fmt.Fprintf(iw, "%s %q {\n", f.FieldKind, f.Name)
			}
			f.Child.Print(indent.NewWriter(iw, "  "))
			fmt.Fprintln(iw, "}")
		}
		fmt.Fprintln(w, "}")
	case *UnionVariant:
		fmt.Fprintf(w, "union %q ref=%s {\n", v.Name, v.TagRef)
		iw := indent.NewWriter(w, "  ")
		for _, c := range v.Cases {
			fmt.Fprintf(iw, "variant %q match=%q {\n", c.VariantName, c.Match)
			c.Child.Print(indent.NewWriter(iw, "  "))
			fmt.Fprintln(iw, "}")
		}
		fmt.Fprintln(w, "}")
	case *SwitchVariant:
		fmt.Fprintf(w, "switch ref=%s {\n", v.CompareTo)
		iw := indent.NewWriter(w, "  ")
		for _, c := range v.Cases {
			fmt.Fprintf(iw, "case %q {\n", c.Match)
			c.Child.Print(indent.NewWriter(iw, "  "))
			fmt.Fprintln(iw, "}")
		}
		if v.Default != nil {
			fmt.Fprintln(iw, "default {")
			v.Default.Print(indent.NewWriter(iw, "  "))
			fmt.Fprintln(iw, "}")
		}
		fmt.Fprintln(w, "}")
	default:
		fmt.Fprintf(w, "%s %s\n", t.Variant.Kind(), t.Data.Name)
	}
}
