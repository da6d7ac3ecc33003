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

// This file lowers the legacy JSON schema form to IR.  A type is
// either "NAME" or [NAME, ARGS].  The document is decoded with the
// YAML machinery: JSON is a YAML subset, and yaml.Node keeps mapping
// keys in document order, which switch case collection depends on.

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FromJSON lowers a legacy JSON schema document to an unresolved IR
// tree.
func FromJSON(input string) (*Type, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, errors.Wrap(err, "parsing schema document")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty schema document")
	}
	return typeFromJSON(doc.Content[0])
}

// typeFromJSON lowers one type spec: a bare name or a [name, args]
// pair.
func typeFromJSON(n *yaml.Node) (*Type, error) {
	if name, ok := jsonString(n); ok {
		return variantFromName(name, nil)
	}
	if n != nil && n.Kind == yaml.SequenceNode && len(n.Content) == 2 {
		if name, ok := jsonString(n.Content[0]); ok {
			return variantFromName(name, n.Content[1])
		}
	}
	return nil, errors.Errorf("expected protocol type, got %s", describeJSON(n))
}

// variantFromName dispatches a type spec on its name.
func variantFromName(name string, arg *yaml.Node) (*Type, error) {
	switch name {
	case "i8", "u8", "i16", "u16", "i32", "u32", "i64", "u64", "varint":
		return NewSimpleScalar(name), nil
	case "container":
		return containerFromJSON(arg)
	case "array":
		return arrayFromJSON(arg)
	case "switch":
		return switchFromJSON(arg)
	case "pstring":
		return pstringFromJSON(arg)
	}
	return nil, errors.Errorf("No variant matches name %q", name)
}

// containerFromJSON lowers ["container", [{"name": N, "type": T}, ...]].
func containerFromJSON(arg *yaml.Node) (*Type, error) {
	if arg == nil || arg.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("argument for 'container' must be array, got %s", describeJSON(arg))
	}

	b := NewContainerVariantBuilder(false)
	for i, member := range arg.Content {
		if member.Kind != yaml.MappingNode {
			return nil, errors.Errorf("'container' child must be object, got %s", describeJSON(member))
		}
		nameNode := mappingValue(member, "name")
		if nameNode == nil {
			return nil, errors.Errorf("'container' child #%d missing 'name' field", i)
		}
		typeNode := mappingValue(member, "type")
		if typeNode == nil {
			return nil, errors.Errorf("'container' child #%d missing 'type' field", i)
		}
		fieldName, ok := jsonString(nameNode)
		if !ok {
			return nil, errors.Errorf("'container' child #%d 'name' must be string", i)
		}
		child, err := typeFromJSON(typeNode)
		if err != nil {
			return nil, errors.Wrapf(err, "inside '%s' field", fieldName)
		}
		b.NormalField(fieldName, child)
	}
	return b.Build()
}

// arrayFromJSON lowers ["array", {"count": COUNT, "type": TYPE}].  A
// referenced count maps onto the array node directly.  A count prefix
// has no field to reference, so it lowers to a wrapper container with
// a virtual count field and the array counted by it, the same shape a
// hand-written definition uses.
func arrayFromJSON(arg *yaml.Node) (*Type, error) {
	if arg == nil || arg.Kind != yaml.MappingNode {
		return nil, errors.Errorf("argument for 'array' must be object, got %s", describeJSON(arg))
	}
	typeNode := mappingValue(arg, "type")
	if typeNode == nil {
		return nil, errors.New("argument for 'array' must have 'type' key")
	}
	element, err := typeFromJSON(typeNode)
	if err != nil {
		return nil, errors.Wrap(err, "inside array")
	}
	count, err := readCount(arg)
	if err != nil {
		return nil, errors.Wrap(err, "inside array")
	}

	switch count.Mode {
	case ReferencedCount:
		return NewArray(count.Reference, element), nil
	case PrefixedCount:
		b := NewContainerVariantBuilder(false)
		b.Field("count", count.Prefix, VirtualField, &FieldPropertyReference{
			Reference: FieldReference{Name: "data"},
			Property:  "length",
		})
		b.NormalField("data", NewArray(FieldReference{Up: 1, Name: "count"}, element))
		return b.Build()
	}
	return nil, errors.Wrap(ErrUnimplemented, "'array' count mode")
}

// switchFromJSON validates ["switch", {"compareTo": REF, "fields":
// {...}, "default": TYPE}] and collects its cases.  The lowering
// itself is not wired up yet; callers get ErrUnimplemented after the
// shape has been checked.
func switchFromJSON(arg *yaml.Node) (*Type, error) {
	if arg == nil || arg.Kind != yaml.MappingNode {
		return nil, errors.Errorf("argument for 'switch' must be object, got %s", describeJSON(arg))
	}
	compareToNode := mappingValue(arg, "compareTo")
	if compareToNode == nil {
		return nil, errors.New("argument for 'switch' must have 'compareTo' key")
	}
	fieldsNode := mappingValue(arg, "fields")
	if fieldsNode == nil {
		return nil, errors.New("argument for 'switch' must have 'fields' key")
	}
	if fieldsNode.Kind != yaml.MappingNode {
		return nil, errors.New("'fields' field in 'switch' must be object")
	}
	compareToStr, ok := jsonString(compareToNode)
	if !ok {
		return nil, errors.New("'compareTo' field in 'switch' must be string")
	}
	compareTo, ok := ParseFieldReference(compareToStr)
	if !ok {
		return nil, errors.New("'compareTo' field in 'switch' must contain a valid field reference")
	}

	b := NewSwitchVariantBuilder(compareTo)
	for i := 0; i+1 < len(fieldsNode.Content); i += 2 {
		match, ok := jsonString(fieldsNode.Content[i])
		if !ok {
			match = fieldsNode.Content[i].Value
		}
		child, err := typeFromJSON(fieldsNode.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "inside %q case", match)
		}
		b.Case(match, child)
	}
	if defaultNode := mappingValue(arg, "default"); defaultNode != nil {
		child, err := typeFromJSON(defaultNode)
		if err != nil {
			return nil, errors.Wrap(err, "inside default case")
		}
		b.Default(child)
	}

	return nil, errors.Wrap(ErrUnimplemented, "'switch' lowering")
}

// pstringFromJSON lowers ["pstring", {"count": COUNT}].
func pstringFromJSON(arg *yaml.Node) (*Type, error) {
	if arg == nil || arg.Kind != yaml.MappingNode {
		return nil, errors.Errorf("argument for 'pstring' must be object, got %s", describeJSON(arg))
	}
	count, err := readCount(arg)
	if err != nil {
		return nil, errors.Wrap(err, "inside pstring")
	}
	if count.Mode != PrefixedCount {
		return nil, errors.Wrap(ErrUnimplemented, "'pstring' count mode")
	}
	return NewPrefixedString(count.Prefix), nil
}

// jsonString returns the value of n when n is a JSON string.
func jsonString(n *yaml.Node) (string, bool) {
	if n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		return n.Value, true
	}
	return "", false
}

// mappingValue returns the value mapped to key in the object n, or nil
// when the key is absent.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k, ok := jsonString(n.Content[i]); ok && k == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// describeJSON renders n for error messages.
func describeJSON(n *yaml.Node) string {
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if strings.HasPrefix(n.Tag, "!!") && n.Tag != "!!str" {
			return n.Value
		}
		return fmt.Sprintf("%q", n.Value)
	case yaml.SequenceNode:
		return "an array"
	case yaml.MappingNode:
		return "an object"
	}
	return "an unknown value"
}
