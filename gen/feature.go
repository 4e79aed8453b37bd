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

package gen

import (
	"strings"

	"github.com/abcum/vero/vero"
)

var hookFns = map[vero.HookType]string{
	vero.BeforeAll:  "test.beforeAll",
	vero.BeforeEach: "test.beforeEach",
	vero.AfterAll:   "test.afterAll",
	vero.AfterEach:  "test.afterEach",
}

// featureUnit renders the spec file for one feature: a describe block
// with hooks, fixture wrappers and one test per scenario.
func (g *generator) featureUnit(f *vero.Feature) string {

	file := newFileState()

	tabs := false

	var body writer
	body.in()

	// Serial mode is forced when any scenario declares it, or depends
	// on another scenario.
	serial := false
	for _, s := range f.Scenarios {
		for _, a := range s.Annotations {
			if a == vero.AnnSerial {
				serial = true
			}
		}
		if len(s.DependsOn) > 0 {
			serial = true
		}
	}
	if serial {
		body.line("test.describe.configure({ mode: \"serial\" });")
		body.blank()
	}

	for _, h := range f.Hooks {
		if g.hook(&body, h, file) {
			tabs = true
		}
		body.blank()
	}

	for _, fx := range f.Fixtures {
		g.fixture(&body, fx, file)
	}

	for _, s := range f.Scenarios {
		if g.scenario(&body, s, file) {
			tabs = true
		}
		body.blank()
	}

	return assembleFeatureFile(f.Name, file, tabs, body.String())

}

// hook renders a lifecycle block. Reports whether it used tabs.
func (g *generator) hook(w *writer, h *vero.Hook, file *fileState) bool {

	r := newRefs()
	g.collect(h.Statements, r)

	each := h.Type == vero.BeforeEach || h.Type == vero.AfterEach

	var params []string
	if each {
		params = append(params, "page")
		if r.usesTabs {
			params = append(params, "context")
		}
	}
	if r.usesApi {
		params = append(params, "request")
	}

	sig := "async ()"
	if len(params) > 0 {
		sig = "async ({ " + strings.Join(params, ", ") + " })"
	}

	w.line("%s(%s => {", hookFns[h.Type], sig)
	w.in()

	sc := newScenarioState(file)
	g.preamble(w, r, sc)
	g.stmts(w, h.Statements, sc)

	w.out()
	w.line("});")

	return r.usesTabs

}

// fixture renders a named setup/teardown pair as an each-scenario
// wrapper.
func (g *generator) fixture(w *writer, fx *vero.Fixture, file *fileState) {

	if len(fx.Setup) > 0 {
		r := newRefs()
		g.collect(fx.Setup, r)
		w.line("// fixture: %s", fx.Name)
		w.line("test.beforeEach(async ({ %s }) => {", strings.Join(fixtureParams(r), ", "))
		w.in()
		sc := newScenarioState(file)
		g.preamble(w, r, sc)
		g.stmts(w, fx.Setup, sc)
		w.out()
		w.line("});")
		w.blank()
	}

	if len(fx.Teardown) > 0 {
		r := newRefs()
		g.collect(fx.Teardown, r)
		w.line("// fixture: %s", fx.Name)
		w.line("test.afterEach(async ({ %s }) => {", strings.Join(fixtureParams(r), ", "))
		w.in()
		sc := newScenarioState(file)
		g.preamble(w, r, sc)
		g.stmts(w, fx.Teardown, sc)
		w.out()
		w.line("});")
		w.blank()
	}

}

func fixtureParams(r *refs) []string {
	params := []string{"page"}
	if r.usesTabs {
		params = append(params, "context")
	}
	if r.usesApi {
		params = append(params, "request")
	}
	return params
}

// scenario renders one test. Reports whether it used tabs.
func (g *generator) scenario(w *writer, s *vero.Scenario, file *fileState) bool {

	r := newRefs()
	g.collect(s.Statements, r)

	fn := "test"
	slow := false
	for _, a := range s.Annotations {
		switch a {
		case vero.AnnSkip:
			fn = "test.skip"
		case vero.AnnOnly:
			fn = "test.only"
		case vero.AnnFixme:
			fn = "test.fixme"
		case vero.AnnSlow:
			slow = true
		}
	}

	for _, tag := range s.Tags {
		w.line("// @%s", tag)
	}
	for _, dep := range s.DependsOn {
		w.line("// depends on: %s", tsString(dep))
	}

	params := []string{"page"}
	if r.usesTabs {
		params = append(params, "context")
	}
	if r.usesApi {
		params = append(params, "request")
	}

	w.line("%s(%s, async ({ %s }) => {", fn, tsString(s.Name), strings.Join(params, ", "))
	w.in()

	if slow {
		w.line("test.slow();")
	}

	sc := newScenarioState(file)
	g.preamble(w, r, sc)
	g.stmts(w, s.Statements, sc)

	w.out()
	w.line("});")

	return r.usesTabs

}

// preamble declares the per-callback bindings the collected refs call
// for: page objects (reassignable, as tab switches rebuild them), the
// parsed environment, and the shared API response slot.
func (g *generator) preamble(w *writer, r *refs, sc *scenarioState) {

	for _, name := range r.pages {
		sc.refPage(name)
		w.line("let %s = new %s(page);", camel(name), name)
	}

	if r.usesEnv {
		w.line("const __env__ = JSON.parse(process.env.VERO_ENV || \"{}\");")
	}

	if r.usesApi {
		w.line("let __vero_apiResponse;")
	}

	if len(r.pages) > 0 || r.usesEnv || r.usesApi {
		w.blank()
	}

}

// assembleFeatureFile prepends imports and tab constants to the
// describe body.
func assembleFeatureFile(name string, file *fileState, tabs bool, body string) string {

	var w writer

	w.line("import { test, expect } from \"@playwright/test\";")

	for _, p := range file.sortedPages() {
		w.line("import { %s } from \"../pages/%s\";", p, p)
	}

	writeRuntimeImports(&w, file)

	if tabs {
		w.blank()
		w.line("const TAB_WAIT_TIMEOUT_MS = %d;", TabWaitTimeoutMs)
		w.line("const TAB_WAIT_POLL_MS = %d;", TabWaitPollMs)
	}

	w.blank()
	w.line("test.describe(%s, () => {", tsString(name))
	w.b.WriteString(body)
	w.line("});")

	return w.String()

}
