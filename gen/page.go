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
	"fmt"
	"sort"
	"strings"

	"github.com/abcum/vero/vero"
)

// roleSelectors map selector kinds lowered through getByRole.
var roleSelectors = map[vero.SelectorKind]string{
	vero.SelButton:   "button",
	vero.SelTextbox:  "textbox",
	vero.SelLink:     "link",
	vero.SelCheckbox: "checkbox",
	vero.SelHeading:  "heading",
	vero.SelCombobox: "combobox",
	vero.SelRadio:    "radio",
}

// locatorCall renders the host locator call for a selector. Every
// selector kind lowers to exactly one call.
func locatorCall(recv string, sel vero.Selector) string {

	if role, ok := roleSelectors[sel.Kind]; ok {
		return fmt.Sprintf("%s.getByRole(%s, { name: %s })", recv, tsString(role), tsString(sel.Arg))
	}

	switch sel.Kind {
	case vero.SelRole:
		return fmt.Sprintf("%s.getByRole(%s)", recv, tsString(sel.Arg))
	case vero.SelLabel:
		return fmt.Sprintf("%s.getByLabel(%s)", recv, tsString(sel.Arg))
	case vero.SelPlaceholder:
		return fmt.Sprintf("%s.getByPlaceholder(%s)", recv, tsString(sel.Arg))
	case vero.SelTestID:
		return fmt.Sprintf("%s.getByTestId(%s)", recv, tsString(sel.Arg))
	case vero.SelText:
		return fmt.Sprintf("%s.getByText(%s)", recv, tsString(sel.Arg))
	case vero.SelAlt:
		return fmt.Sprintf("%s.getByAltText(%s)", recv, tsString(sel.Arg))
	case vero.SelTitle:
		return fmt.Sprintf("%s.getByTitle(%s)", recv, tsString(sel.Arg))
	default:
		// CSS and XPath share locator(); the host detects the xpath
		// form by its prefix.
		return fmt.Sprintf("%s.locator(%s)", recv, tsString(sel.Arg))
	}

}

// pageUnit renders the class for one page declaration.
func (g *generator) pageUnit(pg *vero.Page) string {

	file := newFileState()

	var body writer
	body.in()

	body.line("readonly page: Page;")
	body.blank()

	for _, v := range pg.Variables {
		sc := newScenarioState(file)
		sc.ownPage = pg.Name
		body.line("readonly %s = %s;", v.Name, g.expr(v.Value, sc))
	}
	if len(pg.Variables) > 0 {
		body.blank()
	}

	body.line("constructor(page: Page) {")
	body.in()
	body.line("this.page = page;")
	body.out()
	body.line("}")

	for _, f := range pg.Fields {
		body.blank()
		body.line("get %s(): Locator {", f.Name)
		body.in()
		body.line("return %s;", locatorCall("this.page", f.Selector))
		body.out()
		body.line("}")
	}

	if pg.URL != "" {
		body.blank()
		body.line("async open(page: Page): Promise<void> {")
		body.in()
		body.line("await page.goto(%s);", tsString(pg.URL))
		body.out()
		body.line("}")
	}

	for _, a := range pg.Actions {
		body.blank()
		g.actionMethod(&body, a, pg.Name, file)
	}

	return assemblePageFile(pg.Name, file, body.String())

}

// pageActionsUnit renders the class for a PAGEACTIONS declaration.
func (g *generator) pageActionsUnit(pa *vero.PageActions) string {

	file := newFileState()

	var body writer
	body.in()

	body.line("readonly page: Page;")
	body.blank()
	body.line("constructor(page: Page) {")
	body.in()
	body.line("this.page = page;")
	body.out()
	body.line("}")

	for _, a := range pa.Actions {
		body.blank()
		g.actionMethod(&body, a, "", file)
	}

	return assemblePageFile(pa.Name, file, body.String())

}

// actionMethod renders one async action method. ownPage binds `this`
// for targets on the declaring page; PAGEACTIONS methods have no own
// page and instantiate everything they touch.
func (g *generator) actionMethod(w *writer, a *vero.Action, ownPage string, file *fileState) {

	sc := newScenarioState(file)
	sc.ownPage = ownPage
	sc.inAction = true
	for _, p := range a.Parameters {
		sc.vars[p] = true
	}

	r := newRefs()
	g.collect(a.Statements, r)

	var inner writer
	inner.indent = w.indent + 1
	g.stmts(&inner, a.Statements, sc)

	params := make([]string, 0, len(a.Parameters)+1)
	params = append(params, "page: Page")
	for _, p := range a.Parameters {
		params = append(params, p+": string")
	}

	w.line("async %s(%s): Promise<void> {", a.Name, strings.Join(params, ", "))
	w.in()
	if r.usesEnv {
		w.line("const __env__ = JSON.parse(process.env.VERO_ENV || \"{}\");")
	}
	if r.usesApi {
		w.line("let __vero_apiResponse;")
	}
	for _, name := range sc.bindings {
		w.line("let %s = new %s(page);", camel(name), name)
	}
	w.out()
	w.b.WriteString(inner.String())
	w.line("}")

}

// assemblePageFile prepends the import header once the body has
// recorded what it needs.
func assemblePageFile(name string, file *fileState, body string) string {

	var w writer

	w.line("import { Page, Locator } from \"@playwright/test\";")

	for _, p := range file.sortedPages() {
		if p != name {
			w.line("import { %s } from \"./%s\";", p, p)
		}
	}

	writeRuntimeImports(&w, file)

	w.blank()
	w.line("export class %s {", name)
	w.b.WriteString(body)
	w.line("}")

	return w.String()

}

// writeRuntimeImports emits the data and transform runtime imports a
// file has accumulated.
func writeRuntimeImports(w *writer, file *fileState) {

	var dataNames []string
	if file.usesData {
		dataNames = append(dataNames, "dataManager")
	}
	dataNames = append(dataNames, file.sortedPreds()...)
	sort.Strings(dataNames)
	if len(dataNames) > 0 {
		w.line("import { %s } from \"../runtime/data\";", strings.Join(dataNames, ", "))
	}

	for _, p := range sortedKeys(file.projects) {
		w.line("import { %sData } from \"../runtime/data\";", p)
	}

	if helpers := file.sortedHelpers(); len(helpers) > 0 {
		w.line("import { %s } from \"../runtime/transforms\";", strings.Join(helpers, ", "))
	}

}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
