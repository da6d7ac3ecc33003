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

// Program gopdl compiles protocol definition files, displays errors,
// and writes something related to the input on output.
//
// Usage: gopdl [--json] [--format FORMAT] [FILE ...]
//
// Each FILE is read, lowered to IR, and run through the compiler
// passes; the resolved trees are then displayed.  If no files are
// given, standard input is compiled.  With --json the input is the
// legacy JSON schema form rather than the definition language.
//
// FORMAT, which defaults to "tree", specifies the format of output to
// produce.  Use "gopdl --help" for a list of available formats.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"
	"github.com/protodef/gopdl/pkg/pdl"
)

// Each format must register a formatter with register.  The function f
// will be called once with the set of resolved IR trees.
type formatter struct {
	name string
	f    func(io.Writer, []*pdl.Type)
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

// exitIfError writes errs to standard error and exits with an exit
// status of 1.  If errs is empty then exitIfError does nothing and
// simply returns.
func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		stop(1)
	}
}

var stop = os.Exit

func main() {
	var format string
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var jsonIn bool
	var help bool
	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&jsonIn, "json", 0, "input is the legacy JSON schema form")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE ...]")
	getopt.Parse()

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, `
Formats:
`)
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
		}
		stop(0)
	}

	if format == "" {
		format = "tree"
	}
	if _, ok := formatters[format]; !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	files := getopt.Args()

	type source struct {
		name string
		data string
	}
	var sources []source

	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		sources = append(sources, source{"<STDIN>", string(data)})
	}
	for _, name := range files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		sources = append(sources, source{name, string(data)})
	}

	var trees []*pdl.Type
	var errs []error
	for _, src := range sources {
		types, err := compile(src.data, src.name, jsonIn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		trees = append(trees, types...)
	}
	exitIfError(errs)

	formatters[format].f(os.Stdout, trees)
}

// compile lowers one source to IR and runs the compiler passes over
// every tree it defines.
func compile(data, name string, jsonIn bool) ([]*pdl.Type, error) {
	if jsonIn {
		typ, err := pdl.FromJSON(data)
		if err != nil {
			return nil, err
		}
		if err := pdl.RunPasses(typ); err != nil {
			return nil, err
		}
		return []*pdl.Type{typ}, nil
	}

	file, err := pdl.Parse(data, name)
	if err != nil {
		return nil, err
	}
	var types []*pdl.Type
	for _, stmt := range file.Statements {
		typ, err := pdl.TypeDefToIR(stmt)
		if err != nil {
			return nil, err
		}
		if err := pdl.RunPasses(typ); err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	return types, nil
}
