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

// Builders are the only way the front-ends assemble variant nodes.
// They keep the field/case lists and the children in lock step and
// check the node level invariants on Build: sibling names are unique,
// virtual containers carry no normal fields, union and switch match
// values are unique.

import "github.com/pkg/errors"

// A ContainerVariantBuilder assembles a container node field by field.
type ContainerVariantBuilder struct {
	isVirtual bool
	fields    []ContainerField
	children  []*Type
}

// NewContainerVariantBuilder returns a builder for a container node.
// A virtual container accepts only virtual and const fields.
func NewContainerVariantBuilder(isVirtual bool) *ContainerVariantBuilder {
	return &ContainerVariantBuilder{isVirtual: isVirtual}
}

// NormalField appends a normal field named name whose type is child.
func (b *ContainerVariantBuilder) NormalField(name string, child *Type) {
	b.Field(name, child, NormalField, nil)
}

// Field appends a field of the given kind.  Virtual and const fields
// carry the property reference their value derives from.
func (b *ContainerVariantBuilder) Field(name string, child *Type, kind ContainerFieldKind, property *FieldPropertyReference) {
	b.fields = append(b.fields, ContainerField{
		Name:       name,
		FieldKind:  kind,
		Property:   property,
		ChildIndex: len(b.children),
		Child:      child,
	})
	b.children = append(b.children, child)
}

// Build checks the container invariants and returns the finished node.
// A container with no fields is permitted.
func (b *ContainerVariantBuilder) Build() (*Type, error) {
	seen := make(map[string]bool, len(b.fields))
	for _, f := range b.fields {
		if seen[f.Name] {
			return nil, errors.Errorf("duplicate field name %q in container", f.Name)
		}
		seen[f.Name] = true
		if b.isVirtual && f.FieldKind == NormalField {
			return nil, errors.Errorf("virtual container cannot contain normal field %q", f.Name)
		}
	}
	return &Type{
		Data: TypeData{Name: "container", Children: b.children},
		Variant: &ContainerVariant{
			IsVirtual: b.isVirtual,
			Fields:    b.fields,
		},
	}, nil
}

// A UnionVariantBuilder assembles a union node case by case.
type UnionVariantBuilder struct {
	name     string
	tagRef   FieldReference
	cases    []UnionCase
	children []*Type
}

// NewUnionVariantBuilder returns a builder for the union named name
// whose discriminating tag is referenced by tagRef.
func NewUnionVariantBuilder(name string, tagRef FieldReference) *UnionVariantBuilder {
	return &UnionVariantBuilder{name: name, tagRef: tagRef}
}

// Case appends the case selected by match, named variantName, whose
// type is child.
func (b *UnionVariantBuilder) Case(match, variantName string, child *Type) {
	b.cases = append(b.cases, UnionCase{
		Match:       match,
		VariantName: variantName,
		ChildIndex:  len(b.children),
		Child:       child,
	})
	b.children = append(b.children, child)
}

// Build checks the union invariants and returns the finished node.
func (b *UnionVariantBuilder) Build() (*Type, error) {
	seen := make(map[string]bool, len(b.cases))
	for _, c := range b.cases {
		if seen[c.Match] {
			return nil, errors.Errorf("duplicate match value %q in union '%s'", c.Match, b.name)
		}
		seen[c.Match] = true
	}
	return &Type{
		Data: TypeData{Name: b.name, Children: b.children},
		Variant: &UnionVariant{
			Name:   b.name,
			TagRef: b.tagRef,
			Cases:  b.cases,
		},
	}, nil
}

// A SwitchVariantBuilder assembles a switch node case by case.
type SwitchVariantBuilder struct {
	compareTo  FieldReference
	cases      []SwitchCase
	children   []*Type
	def        *Type
	defaultSet bool
}

// NewSwitchVariantBuilder returns a builder for a switch node keyed by
// the field compareTo references.
func NewSwitchVariantBuilder(compareTo FieldReference) *SwitchVariantBuilder {
	return &SwitchVariantBuilder{compareTo: compareTo}
}

// Case appends the case selected by match whose type is child.
func (b *SwitchVariantBuilder) Case(match string, child *Type) {
	b.cases = append(b.cases, SwitchCase{
		Match:      match,
		ChildIndex: len(b.children),
		Child:      child,
	})
	b.children = append(b.children, child)
}

// Default sets the type selected when no case matches.
func (b *SwitchVariantBuilder) Default(child *Type) {
	b.def = child
	b.defaultSet = true
}

// Build checks the switch invariants and returns the finished node.
func (b *SwitchVariantBuilder) Build() (*Type, error) {
	seen := make(map[string]bool, len(b.cases))
	for _, c := range b.cases {
		if seen[c.Match] {
			return nil, errors.Errorf("duplicate match value %q in switch", c.Match)
		}
		seen[c.Match] = true
	}
	children := b.children
	defaultIndex := -1
	if b.defaultSet {
		defaultIndex = len(children)
		children = append(children, b.def)
	}
	return &Type{
		Data: TypeData{Name: "switch", Children: children},
		Variant: &SwitchVariant{
			CompareTo:    b.compareTo,
			Cases:        b.cases,
			Default:      b.def,
			DefaultIndex: defaultIndex,
		},
	}, nil
}

// NewSimpleScalar returns a scalar leaf node for the type identifier
// name, with no target representation assigned.
func NewSimpleScalar(name string) *Type {
	return NewSimpleScalarWithTarget(name, NoTargetType)
}

// NewSimpleScalarWithTarget returns a scalar leaf node for the type
// identifier name lowering to the given target representation.
func NewSimpleScalarWithTarget(name string, target TargetType) *Type {
	return &Type{
		Data:    TypeData{Name: name},
		Variant: &SimpleScalarVariant{TargetType: target},
	}
}

// NewArray returns an array node whose element count is carried by the
// field countRef references and whose element type is element.
func NewArray(countRef FieldReference, element *Type) *Type {
	return &Type{
		Data: TypeData{Name: "array", Children: []*Type{element}},
		Variant: &ArrayVariant{
			CountRef: countRef,
			Element:  element,
		},
	}
}

// NewPrefixedString returns a length-prefixed string node whose length
// is carried by the prefix scalar.
func NewPrefixedString(prefix *Type) *Type {
	return &Type{
		Data: TypeData{Name: "pstring", Children: []*Type{prefix}},
		Variant: &PrefixedStringVariant{
			Length:      prefix,
			LengthIndex: 0,
		},
	}
}
