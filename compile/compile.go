// Copyright © 2016 Abcum Ltd
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

// Package compile drives one compilation unit through the phase
// pipeline. Units are independent; the host may compile several in
// parallel, each with its own state.
package compile

import (
	"runtime/debug"

	"github.com/abcum/vero/check"
	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/gen"
	"github.com/abcum/vero/log"
	"github.com/abcum/vero/vero"
)

// Phase is the pipeline state of a compilation unit.
type Phase int

const (
	Idle Phase = iota
	Lexing
	Parsing
	Validating
	Transpiling
	Done
)

var phaseNames = [...]string{
	Idle:        "idle",
	Lexing:      "lexing",
	Parsing:     "parsing",
	Validating:  "validating",
	Transpiling: "transpiling",
	Done:        "done",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// Unit is one source file or project moving through the pipeline.
type Unit struct {
	Name    string
	Source  string
	Phase   Phase
	Program *vero.Program
	Table   *check.Table
	Output  *gen.Output
	Sink    *diag.Sink
}

// New prepares a unit for compilation.
func New(name, source string) *Unit {
	return &Unit{Name: name, Source: source, Sink: diag.NewSink()}
}

// Valid reports whether the unit compiled without errors. Emitted
// code must not be run from an invalid unit.
func (u *Unit) Valid() bool {
	return u.Phase == Done && !u.Sink.HasErrors()
}

// Run drives the unit through every phase. Phases never short-circuit
// on user errors; they accumulate diagnostics into the shared sink so
// editors can surface partial results. Internal invariant violations
// abort with a VERO-000 diagnostic carrying the stack trace.
func (u *Unit) Run() (err error) {

	defer func() {
		if r := recover(); r != nil {
			log.WithPrefix("compile").Errorf("internal error in %s: %v", u.Name, r)
			d := diag.Internal(diag.Location{Line: 1}, string(debug.Stack()))
			d.Detail("The compiler failed while %s '%s'", u.Phase, u.Name)
			u.Sink.Push(d)
			u.Phase = Done
		}
	}()

	u.Phase = Lexing
	tokens, lexErrs := vero.Lex(u.Source)
	u.Sink.Append(lexErrs)

	u.Phase = Parsing
	prog, parseErrs := vero.Parse(tokens)
	u.Sink.Append(parseErrs)
	u.Program = prog

	u.Phase = Validating
	table, checkErrs := check.Validate(prog)
	u.Sink.Append(checkErrs)
	u.Table = table

	u.Phase = Transpiling
	out := gen.Transpile(prog, table)
	u.Sink.Append(out.Diagnostics)
	u.Output = out

	u.Phase = Done

	log.WithPrefix("compile").
		WithField("unit", u.Name).
		WithField("diagnostics", u.Sink.Count()).
		Debugf("compiled %d page(s), %d feature(s)", len(out.Pages), len(out.Tests))

	return nil

}

// Compile is the convenience single-call form.
func Compile(name, source string) *Unit {
	u := New(name, source)
	u.Run()
	return u
}
