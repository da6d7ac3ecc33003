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
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A CountKind says how a legacy schema construct obtains its element
// count.
type CountKind int

// The count modes the legacy form can express.
const (
	// PrefixedCount reads the count from a scalar written directly
	// before the counted data.
	PrefixedCount = CountKind(iota)
	// ReferencedCount reads the count from a field elsewhere in the
	// tree.
	ReferencedCount
)

func (k CountKind) String() string {
	switch k {
	case PrefixedCount:
		return "prefixed"
	case ReferencedCount:
		return "referenced"
	}
	return fmt.Sprintf("unknown-count-%d", k)
}

// A Count is the lowered form of a legacy "count" specification.
type Count struct {
	Mode      CountKind
	Prefix    *Type          // the prefix scalar, prefixed mode only
	Reference FieldReference // referenced mode only
}

const prefixedBy = "prefixed-by-"

// readCount lowers the "count" key of arg.  "prefixed-by-SCALAR"
// yields a prefixed count carrying the named scalar; any other string
// is read as a field reference.
func readCount(arg *yaml.Node) (Count, error) {
	countNode := mappingValue(arg, "count")
	if countNode == nil {
		return Count{}, errors.New("missing 'count' key")
	}
	s, ok := jsonString(countNode)
	if !ok {
		return Count{}, errors.Wrapf(ErrUnimplemented, "count %s", describeJSON(countNode))
	}
	if strings.HasPrefix(s, prefixedBy) {
		scalar := strings.TrimPrefix(s, prefixedBy)
		prefix, err := variantFromName(scalar, nil)
		if err != nil {
			return Count{}, errors.Wrapf(err, "count prefix %q", scalar)
		}
		return Count{Mode: PrefixedCount, Prefix: prefix}, nil
	}
	ref, ok := ParseFieldReference(s)
	if !ok {
		return Count{}, errors.Errorf("count %q is neither a prefix scalar nor a field reference", s)
	}
	return Count{Mode: ReferencedCount, Reference: ref}, nil
}
