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

// The compiler passes.  RunPasses drives a fixed ordered sequence over
// a root node; today that sequence is the reference resolution pass,
// which turns every symbolic FieldReference carried by a variant into
// a direct link to the node it names.

// A Pass checks or rewrites a complete IR tree in place.
type Pass interface {
	// Name returns the pass name.
	Name() string
	// Run applies the pass to the tree rooted at root.
	Run(root *Type) error
}

// passes is the fixed sequence RunPasses applies, in order.
var passes = []Pass{
	resolveReferencePass{},
}

// RunPasses runs the compiler passes over the tree rooted at root,
// stopping at the first error.  A tree that came through without error
// is fully resolved.
func RunPasses(root *Type) error {
	for _, p := range passes {
		if err := p.Run(root); err != nil {
			return err
		}
	}
	return nil
}

// resolveReferencePass resolves the FieldReferences held by variants:
// container property references, array count references, union tag
// references and switch compareTo references.  Resolution is
// idempotent; running the pass over an already resolved tree relinks
// the same nodes.
type resolveReferencePass struct{}

func (resolveReferencePass) Name() string { return "resolve-references" }

func (resolveReferencePass) Run(root *Type) error {
	return resolveNode(root, nil)
}

// resolveNode resolves the references of one node and recurses into
// its children.  ancestors holds the chain from the root down to the
// node's parent, closest ancestor last.
func resolveNode(t *Type, ancestors []*Type) error {
	resolve := func(v Variant, data *TypeData, ref FieldReference) (*Type, error) {
		// Up counts from the enclosing frame: 0 is the node itself,
		// 1 its parent, and so on.
		if ref.Up == 0 {
			child, err := v.ResolveChildName(data, ref.Name)
			if err != nil {
				return nil, &ReferenceError{Reference: ref, Err: err}
			}
			return child, nil
		}
		if ref.Up > len(ancestors) {
			return nil, &ReferenceError{Reference: ref}
		}
		frame := ancestors[len(ancestors)-ref.Up]
		child, err := frame.Variant.ResolveChildName(&frame.Data, ref.Name)
		if err != nil {
			return nil, &ReferenceError{Reference: ref, Err: err}
		}
		return child, nil
	}

	// The resolve step stores links that alias entries of the children
	// list; recurse over a snapshot taken before it ran.
	children := append([]*Type(nil), t.Data.Children...)

	if err := t.Variant.resolveReferences(&t.Data, resolve); err != nil {
		return &VariantError{Kind: t.Variant.Kind(), Err: err}
	}

	ancestors = append(ancestors, t)
	for _, child := range children {
		if err := resolveNode(child, ancestors); err != nil {
			return &VariantError{Kind: t.Variant.Kind(), Err: err}
		}
	}
	return nil
}
