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

// Package pdl compiles protocol definitions into a typed intermediate
// representation.
//
// A protocol definition describes the wire layout of a binary protocol:
// scalars, containers, length-counted arrays, tagged unions, switches
// and length-prefixed strings.  It is written in one of two surface
// syntaxes, a block structured definition language:
//
//	def_type("packet") => container {
//	    virtual_field("len", ref: "body", prop: "length") => u16;
//	    field("body") => array(ref: "../len") => u8;
//	};
//
// or a legacy JSON form:
//
//	["container", [{"name": "id", "type": "u8"}]]
//
// Both lower to the same tree of Type nodes.  Parse turns definition
// language source into statements, TypeDefToIR lowers a statement to a
// tree, and FromJSON lowers a JSON document directly.  The tree then
// goes through RunPasses, which resolves every symbolic field
// reference (a "../"-relative name such as "../len" above) into a
// direct link to the referenced node.  A fully resolved tree is the
// product of this package; code generators consume it.
package pdl
