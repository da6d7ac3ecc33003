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

// This file lowers parsed definition language statements to IR.  A
// top level statement is a def_type item followed by a chain of type
// items; each handler consumes the leading item of the chain and hands
// the remainder to the next one down.

import "github.com/pkg/errors"

// TypeDefToIR lowers a top level def_type statement to an IR tree.
// The returned tree is unresolved; run it through RunPasses before
// handing it to a backend.
func TypeDefToIR(stmt *Statement) (*Type, error) {
	if len(stmt.Items) == 0 {
		return nil, errors.New("empty statement")
	}
	item := stmt.Items[0].AsItem()
	if item == nil {
		return nil, errors.New("expected 'def_type' item")
	}
	if name, ok := item.Name.Simple(); !ok || name != "def_type" {
		return nil, errors.Errorf("expected 'def_type' item, got '%s'", item.Name)
	}
	if err := item.Validate(1, nil, nil); err != nil {
		return nil, err
	}
	if _, ok := item.Arg(0).StringValue(); !ok {
		return nil, errors.New("'def_type' name must be a string")
	}
	return typeValuesToIR(stmt.Items[1:])
}

// typeValuesToIR lowers a chain of type values, dispatching on the
// simple name of the leading item.
func typeValuesToIR(values []*Value) (*Type, error) {
	if len(values) == 0 {
		return nil, errors.New("unexpected end of item chain")
	}
	item := values[0].AsItem()
	if item == nil {
		return nil, errors.New("expected type item, got something else")
	}
	name, ok := item.Name.Simple()
	if !ok {
		return nil, errors.Wrapf(ErrUnimplemented, "qualified name '%s'", item.Name)
	}

	var typ *Type
	var err error
	switch name {
	case "container":
		typ, err = containerValuesToIR(values)
	case "array":
		typ, err = arrayValuesToIR(values)
	case "union":
		typ, err = unionValuesToIR(values)
	default:
		if item.IsNameOnly() {
			typ, err = scalarValuesToIR(values)
		} else {
			err = errors.Wrapf(ErrUnimplemented, "'%s'", name)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "inside '%s' node", name)
	}
	return typ, nil
}

// containerValuesToIR lowers container[virtual: "true"] { ... }.  The
// block holds one statement per field; the statement's leading item
// names the field and the chain remainder is the field's type.
func containerValuesToIR(values []*Value) (*Type, error) {
	containerItem := values[0].AsItem()
	if err := containerItem.Validate(0, []string{"virtual"}, nil); err != nil {
		return nil, err
	}

	isVirtual := false
	if s, ok := containerItem.Tagged("virtual").StringValue(); ok {
		isVirtual = s == "true"
	}

	b := NewContainerVariantBuilder(isVirtual)

	for _, stmt := range containerItem.Block {
		if len(stmt.Items) == 0 {
			return nil, errors.New("container block can only contain items")
		}
		blockItem := stmt.Items[0].AsItem()
		if blockItem == nil {
			return nil, errors.New("container block can only contain items")
		}

		name, _ := blockItem.Name.Simple()
		switch name {
		case "field":
			if err := blockItem.Validate(1, nil, nil); err != nil {
				return nil, err
			}
			fieldName, ok := blockItem.Arg(0).StringValue()
			if !ok {
				return nil, errors.New("first argument in 'field' must be a field name")
			}
			fieldType, err := typeValuesToIR(stmt.Items[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "inside '%s' field", fieldName)
			}
			b.NormalField(fieldName, fieldType)

		case "virtual_field":
			if err := blockItem.Validate(1, []string{"ref", "prop"}, []string{"ref", "prop"}); err != nil {
				return nil, err
			}
			fieldName, ok := blockItem.Arg(0).StringValue()
			if !ok {
				return nil, errors.New("first argument in 'virtual_field' must be a field name")
			}
			fieldType, err := typeValuesToIR(stmt.Items[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "inside '%s' virtual_field", fieldName)
			}
			ref, ok := blockItem.Tagged("ref").AsFieldReference()
			if !ok {
				return nil, errors.New("'ref' tag is not a valid field reference")
			}
			prop, ok := blockItem.Tagged("prop").StringValue()
			if !ok {
				return nil, errors.New("'prop' tag is not a string")
			}
			b.Field(fieldName, fieldType, VirtualField, &FieldPropertyReference{
				Reference: ref,
				Property:  prop,
			})

		case "const_field":
			if err := blockItem.Validate(1, []string{"ref", "prop"}, nil); err != nil {
				return nil, err
			}
			return nil, errors.Wrap(ErrUnimplemented, "'const_field'")

		default:
			return nil, errors.New("container block can only contain either 'field', 'virtual_field' or 'const_field'")
		}
	}

	return b.Build()
}

// arrayValuesToIR lowers array(ref: REF) => ELEMENT.
func arrayValuesToIR(values []*Value) (*Type, error) {
	arrayItem := values[0].AsItem()
	if err := arrayItem.Validate(0, []string{"ref"}, []string{"ref"}); err != nil {
		return nil, err
	}

	ref, ok := arrayItem.Tagged("ref").AsFieldReference()
	if !ok {
		return nil, errors.New("array does not contain a valid reference")
	}

	element, err := typeValuesToIR(values[1:])
	if err != nil {
		return nil, errors.Wrap(err, "inside array")
	}

	return NewArray(ref, element), nil
}

// unionValuesToIR lowers union(NAME, ref: REF) { variant(...) ... }.
func unionValuesToIR(values []*Value) (*Type, error) {
	unionItem := values[0].AsItem()
	if err := unionItem.Validate(1, []string{"ref"}, []string{"ref"}); err != nil {
		return nil, err
	}

	unionName, ok := unionItem.Arg(0).StringValue()
	if !ok {
		return nil, errors.New("union name must be a string")
	}
	tagRef, ok := unionItem.Tagged("ref").AsFieldReference()
	if !ok {
		return nil, errors.New("invalid field reference")
	}

	b := NewUnionVariantBuilder(unionName, tagRef)

	for _, stmt := range unionItem.Block {
		if len(stmt.Items) == 0 {
			return nil, errors.New("union block can only contain items")
		}
		blockItem := stmt.Items[0].AsItem()
		if blockItem == nil {
			return nil, errors.New("union block can only contain items")
		}

		if name, _ := blockItem.Name.Simple(); name != "variant" {
			return nil, errors.New("union block can only contain 'variant'")
		}
		if err := blockItem.Validate(1, []string{"match"}, []string{"match"}); err != nil {
			return nil, err
		}

		variantName, ok := blockItem.Arg(0).StringValue()
		if !ok {
			return nil, errors.New("variant name arg must be string")
		}
		variantMatch, ok := blockItem.Tagged("match").StringValue()
		if !ok {
			return nil, errors.New("variant match arg must be string")
		}

		caseType, err := typeValuesToIR(stmt.Items[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "inside '%s' variant", variantName)
		}

		b.Case(variantMatch, variantName, caseType)
	}

	return b.Build()
}

// scalarValuesToIR lowers a name-only item to a simple scalar.  The
// item name becomes the scalar type identifier; names the core knows
// to be integers get a target type, everything else is left for the
// backend.
func scalarValuesToIR(values []*Value) (*Type, error) {
	scalarItem := values[0].AsItem()
	if !scalarItem.IsNameOnly() {
		return nil, errors.New("simple scalars take no arguments and no block")
	}

	name, _ := scalarItem.Name.Simple()
	target := NoTargetType
	switch name {
	case "u8", "i8":
		target = IntegerTarget
	}
	return NewSimpleScalarWithTarget(name, target), nil
}
