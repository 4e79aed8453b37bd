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

import "github.com/abcum/vero/vero"

// Tab statements reassign the mutable page binding, so every page
// object bound so far is rebuilt afterwards: locators stay bound to
// the page they were constructed over.

// rebind re-initialises every page-object binding after the active
// page changed.
func (g *generator) rebind(w *writer, sc *scenarioState) {
	for _, name := range sc.bindings {
		w.line("%s = new %s(page);", camel(name), name)
	}
}

// front brings the new page forward and waits for the DOM.
func front(w *writer) {
	w.line("await page.bringToFront();")
	w.line("await page.waitForLoadState(\"domcontentloaded\");")
}

// switchToNewTab lowers both SWITCH TO NEW TAB forms.
func (g *generator) switchToNewTab(w *writer, s *vero.SwitchToNewTabStatement, sc *scenarioState) {

	if s.URL != "" {
		w.line("page = await context.newPage();")
		w.line("await page.goto(%s);", tsString(s.URL))
		front(w)
		g.rebind(w, sc)
		return
	}

	w.line("{")
	w.in()
	w.line("let __newPage = await context.waitForEvent(\"page\", { timeout: TAB_WAIT_TIMEOUT_MS }).catch(() => null);")
	w.line("if (!__newPage) {")
	w.in()
	w.line("__newPage = context.pages().find((p) => p !== page && p.opener() === page) || null;")
	w.out()
	w.line("}")
	w.line("if (!__newPage) {")
	w.in()
	w.line("throw new Error(\"SWITCH TO NEW TAB failed: no new tab found within 5000ms.\");")
	w.out()
	w.line("}")
	w.line("page = __newPage;")
	w.out()
	w.line("}")
	front(w)
	g.rebind(w, sc)

}

// switchToTab lowers SWITCH TO TAB n, polling until enough tabs are
// open.
func (g *generator) switchToTab(w *writer, s *vero.SwitchToTabStatement, sc *scenarioState) {

	w.line("{")
	w.in()
	w.line("let __pages = context.pages();")
	w.line("for (let __waited = 0; __pages.length < %d && __waited < TAB_WAIT_TIMEOUT_MS; __waited += TAB_WAIT_POLL_MS) {", s.Index)
	w.in()
	w.line("await page.waitForTimeout(TAB_WAIT_POLL_MS);")
	w.line("__pages = context.pages();")
	w.out()
	w.line("}")
	w.line("if (__pages.length < %d) {", s.Index)
	w.in()
	w.line("throw new Error(`SWITCH TO TAB %d failed: only ${__pages.length} tab(s) available.`);", s.Index)
	w.out()
	w.line("}")
	w.line("page = __pages[%d];", s.Index-1)
	w.out()
	w.line("}")
	front(w)
	g.rebind(w, sc)

}

// openInNewTab lowers OPEN "url" IN NEW TAB.
func (g *generator) openInNewTab(w *writer, s *vero.OpenInNewTabStatement, sc *scenarioState) {
	w.line("page = await context.newPage();")
	w.line("await page.goto(%s);", tsString(s.URL))
	front(w)
	g.rebind(w, sc)
}

// closeTab lowers CLOSE TAB. The next active page is the neighbour of
// the closed one.
func (g *generator) closeTab(w *writer, sc *scenarioState) {

	w.line("{")
	w.in()
	w.line("const __closing = context.pages().indexOf(page);")
	w.line("await page.close();")
	w.line("const __remaining = context.pages();")
	w.line("if (__remaining.length === 0) {")
	w.in()
	w.line("throw new Error(\"CLOSE TAB failed: no tabs remain.\");")
	w.out()
	w.line("}")
	w.line("page = __remaining[Math.min(__closing, __remaining.length - 1)];")
	w.out()
	w.line("}")
	front(w)
	g.rebind(w, sc)

}
