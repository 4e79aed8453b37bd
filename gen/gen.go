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

// Package gen lowers a validated program to Playwright TypeScript:
// one unit per page and one test unit per feature. Output is a pure
// function of the AST; every map iteration runs over sorted keys so
// repeated runs produce byte-identical sources.
package gen

import (
	"sort"

	"github.com/abcum/vero/check"
	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/vero"
)

// Tab statement timing, baked into generated scenarios that switch
// tabs.
const (
	TabWaitTimeoutMs = 5000
	TabWaitPollMs    = 150
)

// Output is the result of transpiling one program.
type Output struct {
	Pages       map[string]string
	Tests       map[string]string
	Diagnostics []diag.Diagnostic
}

type generator struct {
	table *check.Table
	errs  []diag.Diagnostic
}

// Transpile lowers the program against its symbol table. The table is
// borrowed read-only; validation diagnostics do not stop emission, so
// editors can show partial results. Callers must check for errors
// before running the emitted code.
func Transpile(prog *vero.Program, table *check.Table) *Output {

	g := &generator{table: table}

	out := &Output{
		Pages: make(map[string]string),
		Tests: make(map[string]string),
	}

	for _, pg := range prog.Pages {
		out.Pages[pg.Name] = g.pageUnit(pg)
	}

	for _, pa := range prog.PageActions {
		out.Pages[pa.Name] = g.pageActionsUnit(pa)
	}

	for _, f := range prog.Features {
		out.Tests[f.Name] = g.featureUnit(f)
	}

	out.Diagnostics = g.errs

	return out

}

// --------------------------------------------------
// Per-file and per-scenario emission state
// --------------------------------------------------

// fileState accumulates the imports one generated file needs.
type fileState struct {
	preds    map[string]bool
	helpers  map[string]bool
	pages    map[string]bool
	projects map[string]bool
	usesData bool
}

func newFileState() *fileState {
	return &fileState{
		preds:    make(map[string]bool),
		helpers:  make(map[string]bool),
		pages:    make(map[string]bool),
		projects: make(map[string]bool),
	}
}

func (f *fileState) sortedPreds() []string {
	out := make([]string, 0, len(f.preds))
	for p := range f.preds {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (f *fileState) sortedHelpers() []string {
	out := make([]string, 0, len(f.helpers))
	for h := range f.helpers {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

func (f *fileState) sortedPages() []string {
	out := make([]string, 0, len(f.pages))
	for p := range f.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// scenarioState tracks emission context inside one test callback or
// action body.
type scenarioState struct {
	file     *fileState
	vars     map[string]bool
	bindings []string
	bound    map[string]bool
	usesEnv  bool
	ownPage  string
	inAction bool
}

func newScenarioState(file *fileState) *scenarioState {
	return &scenarioState{
		file:  file,
		vars:  make(map[string]bool),
		bound: make(map[string]bool),
	}
}

// helper records that a runtime transform helper is called.
func (sc *scenarioState) helper(name string) {
	sc.file.helpers[name] = true
}

// pred records that a predicate combinator is called.
func (sc *scenarioState) pred(name string) {
	sc.file.preds[name] = true
}

// refPage records a page-object binding used by the callback.
func (sc *scenarioState) refPage(name string) {
	if sc.bound[name] || name == sc.ownPage {
		return
	}
	sc.bound[name] = true
	sc.bindings = append(sc.bindings, name)
	sc.file.pages[name] = true
}

// binding returns the TypeScript reference for a container: the
// camel-cased scenario binding, or `this` inside the container's own
// unit.
func (sc *scenarioState) binding(name string) string {
	if name == sc.ownPage {
		return "this"
	}
	sc.refPage(name)
	return camel(name)
}
