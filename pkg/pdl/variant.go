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

// The concrete node shapes.  Every pointer a variant holds aims at a
// node the owning tree keeps alive: either one of the node's own
// children or, for resolved references, a child of an ancestor frame.

import (
	"fmt"

	"github.com/pkg/errors"
)

// A SimpleScalarVariant is a leaf carrying a single wire value.  The
// scalar's type identifier is the node's data name.
type SimpleScalarVariant struct {
	TargetType TargetType
}

// Kind implements Variant.
func (*SimpleScalarVariant) Kind() VariantKind { return SimpleScalarKind }

// ResolveChildName implements Variant.  Scalars have no named
// children.
func (*SimpleScalarVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	return nil, errors.Errorf("scalar '%s' has no child named %q", data.Name, name)
}

func (*SimpleScalarVariant) resolveReferences(*TypeData, resolver) error { return nil }

// A ContainerFieldKind classifies how a container field obtains its
// value on the wire.
type ContainerFieldKind int

// The kinds of container fields.
const (
	// NormalField is read from and written to the wire directly.
	NormalField = ContainerFieldKind(iota)
	// VirtualField takes its value from a property of another field
	// and does not itself appear on the wire in decoded form.
	VirtualField
	// ConstField always carries the same value.  Reserved; the
	// front-ends reject it as unimplemented.
	ConstField
)

// ContainerFieldKindToName maps field kinds to their keywords in the
// definition language.
var ContainerFieldKindToName = map[ContainerFieldKind]string{
	NormalField:  "field",
	VirtualField: "virtual_field",
	ConstField:   "const_field",
}

func (k ContainerFieldKind) String() string {
	if s, ok := ContainerFieldKindToName[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown-field-kind-%d", k)
}

// A FieldPropertyReference names a property of another field, such as
// the length of a sibling array.  ReferenceNode is nil until the
// resolve pass links it to the node Reference names.
type FieldPropertyReference struct {
	Reference     FieldReference
	ReferenceNode *Type
	Property      string
}

// A ContainerField binds a name to one of a container's children.
// Child always aims at Data.Children[ChildIndex] of the owning node.
type ContainerField struct {
	Name       string
	FieldKind  ContainerFieldKind
	Property   *FieldPropertyReference // virtual and const fields only
	ChildIndex int
	Child      *Type
}

// A ContainerVariant is an ordered sequence of named fields.  A
// virtual container exists only to carry derived fields; it holds no
// normal fields.
type ContainerVariant struct {
	IsVirtual bool
	Fields    []ContainerField
}

// Kind implements Variant.
func (*ContainerVariant) Kind() VariantKind { return ContainerKind }

// ResolveChildName implements Variant, looking name up among the
// container's fields.
func (v *ContainerVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return v.Fields[i].Child, nil
		}
	}
	return nil, errors.Errorf("container has no field named %q", name)
}

func (v *ContainerVariant) resolveReferences(data *TypeData, resolve resolver) error {
	for i := range v.Fields {
		f := &v.Fields[i]
		if f.Property == nil {
			continue
		}
		node, err := resolve(v, data, f.Property.Reference)
		if err != nil {
			return errors.Wrapf(err, "inside '%s' %s", f.Name, f.FieldKind)
		}
		f.Property.ReferenceNode = node
	}
	return nil
}

// An ArrayVariant repeats its element type CountRef times.  Element
// aims at the node's only child; CountNode is nil until the resolve
// pass links CountRef.
type ArrayVariant struct {
	CountRef  FieldReference
	CountNode *Type
	Element   *Type
}

// Kind implements Variant.
func (*ArrayVariant) Kind() VariantKind { return ArrayKind }

// ResolveChildName implements Variant.  The element is not addressable
// by name.
func (*ArrayVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	return nil, errors.Errorf("array has no child named %q", name)
}

func (v *ArrayVariant) resolveReferences(data *TypeData, resolve resolver) error {
	node, err := resolve(v, data, v.CountRef)
	if err != nil {
		return err
	}
	v.CountNode = node
	return nil
}

// A UnionCase is one alternative of a union, selected when the tag
// field carries Match.
type UnionCase struct {
	Match       string
	VariantName string
	ChildIndex  int
	Child       *Type
}

// A UnionVariant selects one of its cases by the value of a tag field
// elsewhere in the tree.  TagNode is nil until the resolve pass links
// TagRef.
type UnionVariant struct {
	Name    string
	TagRef  FieldReference
	TagNode *Type
	Cases   []UnionCase
}

// Kind implements Variant.
func (*UnionVariant) Kind() VariantKind { return UnionKind }

// ResolveChildName implements Variant, looking name up among the case
// variant names.
func (v *UnionVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	for i := range v.Cases {
		if v.Cases[i].VariantName == name {
			return v.Cases[i].Child, nil
		}
	}
	return nil, errors.Errorf("union '%s' has no variant named %q", v.Name, name)
}

func (v *UnionVariant) resolveReferences(data *TypeData, resolve resolver) error {
	node, err := resolve(v, data, v.TagRef)
	if err != nil {
		return err
	}
	v.TagNode = node
	return nil
}

// A SwitchCase is one alternative of a switch, selected when the
// compared field renders as Match.
type SwitchCase struct {
	Match      string
	ChildIndex int
	Child      *Type
}

// A SwitchVariant selects one of its cases by comparing a field named
// by CompareTo against the case match strings, falling back to Default
// when no case matches.  CompareToNode is nil until the resolve pass
// links CompareTo.
type SwitchVariant struct {
	CompareTo     FieldReference
	CompareToNode *Type
	Cases         []SwitchCase
	Default       *Type
	DefaultIndex  int // index of Default among the children, -1 if none
}

// Kind implements Variant.
func (*SwitchVariant) Kind() VariantKind { return SwitchKind }

// ResolveChildName implements Variant, looking name up among the case
// match values.
func (v *SwitchVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	for i := range v.Cases {
		if v.Cases[i].Match == name {
			return v.Cases[i].Child, nil
		}
	}
	return nil, errors.Errorf("switch has no case matching %q", name)
}

func (v *SwitchVariant) resolveReferences(data *TypeData, resolve resolver) error {
	node, err := resolve(v, data, v.CompareTo)
	if err != nil {
		return err
	}
	v.CompareToNode = node
	return nil
}

// A PrefixedStringVariant is a string whose byte length is carried by
// a leading scalar.  Length aims at Data.Children[LengthIndex].
type PrefixedStringVariant struct {
	Length      *Type
	LengthIndex int
}

// Kind implements Variant.
func (*PrefixedStringVariant) Kind() VariantKind { return PrefixedStringKind }

// ResolveChildName implements Variant.  The length prefix is not
// addressable by name.
func (*PrefixedStringVariant) ResolveChildName(data *TypeData, name string) (*Type, error) {
	return nil, errors.Errorf("pstring has no child named %q", name)
}

func (*PrefixedStringVariant) resolveReferences(*TypeData, resolver) error { return nil }
