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
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnimplemented marks constructs the grammar accepts but that have
// no lowering yet, such as const_field and non-prefixed string counts.
// Test for it with errors.Is.
var ErrUnimplemented = errors.New("unimplemented")

// A ReferenceError reports a FieldReference that could not be resolved
// to a node: either no frame in range declares the name, or the
// reference ascends past the root.
type ReferenceError struct {
	Reference FieldReference
	Err       error // underlying lookup failure, if any
}

func (e *ReferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not resolve reference %q: %v", e.Reference.String(), e.Err)
	}
	return fmt.Sprintf("could not resolve reference %q", e.Reference.String())
}

func (e *ReferenceError) Unwrap() error { return e.Err }

// A VariantError records the variant kind of the node that an error
// was raised in or below.  The resolve pass adds one per tree level on
// the way out.
type VariantError struct {
	Kind VariantKind
	Err  error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("inside '%s' node: %v", e.Kind, e.Err)
}

func (e *VariantError) Unwrap() error { return e.Err }
