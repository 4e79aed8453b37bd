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
	"strings"

	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/util/slug"
	"github.com/abcum/vero/vero"
)

// locator renders the Locator reference for a target.
func (g *generator) locator(t vero.Target, sc *scenarioState) string {
	return sc.binding(t.Page) + "." + t.Field
}

// stmts lowers a statement list.
func (g *generator) stmts(w *writer, list []vero.Statement, sc *scenarioState) {
	for _, st := range list {
		g.stmt(w, st, sc)
	}
}

// stmt lowers a single statement.
func (g *generator) stmt(w *writer, st vero.Statement, sc *scenarioState) {

	switch s := st.(type) {

	case *vero.ClickStatement:
		w.line("await %s.click();", g.locator(s.Target, sc))

	case *vero.FillStatement:
		w.line("await %s.fill(%s);", g.locator(s.Target, sc), g.expr(s.Value, sc))

	case *vero.OpenStatement:
		w.line("await page.goto(%s);", g.expr(s.URL, sc))

	case *vero.CheckStatement:
		w.line("await %s.check();", g.locator(s.Target, sc))

	case *vero.UncheckStatement:
		w.line("await %s.uncheck();", g.locator(s.Target, sc))

	case *vero.SelectStatement:
		w.line("await %s.selectOption(%s);", g.locator(s.Target, sc), g.expr(s.Value, sc))

	case *vero.HoverStatement:
		w.line("await %s.hover();", g.locator(s.Target, sc))

	case *vero.PressStatement:
		w.line("await page.keyboard.press(%s);", g.expr(s.Key, sc))

	case *vero.ScrollStatement:
		w.line("await %s.scrollIntoViewIfNeeded();", g.locator(s.Target, sc))

	case *vero.WaitStatement:
		ms := s.Amount
		if !s.Milliseconds {
			ms = s.Amount * 1000
		}
		w.line("await page.waitForTimeout(%s);", trimFloat(ms))

	case *vero.RefreshStatement:
		w.line("await page.reload();")

	case *vero.ClearStatement:
		w.line("await %s.clear();", g.locator(s.Target, sc))

	case *vero.UploadStatement:
		w.line("await %s.setInputFiles(%s);", g.locator(s.Target, sc), g.expr(s.Path, sc))

	case *vero.DragStatement:
		w.line("await %s.dragTo(%s);", g.locator(s.Source, sc), g.locator(s.Dest, sc))

	case *vero.LogStatement:
		w.line("console.log(%s);", g.expr(s.Value, sc))

	case *vero.ScreenshotStatement:
		w.line("await page.screenshot({ path: %s });", tsString("screenshots/"+slug.Make(s.Name)+".png"))

	case *vero.PerformStatement:
		args := make([]string, 0, len(s.Arguments)+1)
		args = append(args, "page")
		for _, a := range s.Arguments {
			args = append(args, g.expr(a, sc))
		}
		w.line("await %s.%s(%s);", sc.binding(s.Container), s.Action, strings.Join(args, ", "))

	case *vero.ReturnStatement:
		if s.Value == nil {
			w.line("return;")
		} else {
			w.line("return %s;", g.expr(s.Value, sc))
		}

	case *vero.SetStatement:
		sc.vars[s.Name] = true
		w.line("let %s = %s;", s.Name, g.expr(s.Value, sc))

	case *vero.IfStatement:
		w.line("if (%s) {", g.condition(s.Condition, sc))
		w.in()
		g.stmts(w, s.Then, sc)
		w.out()
		if len(s.Else) > 0 {
			w.line("} else {")
			w.in()
			g.stmts(w, s.Else, sc)
			w.out()
		}
		w.line("}")

	case *vero.RepeatStatement:
		w.line("for (let __i = 0; __i < %d; __i++) {", s.Count)
		w.in()
		g.stmts(w, s.Statements, sc)
		w.out()
		w.line("}")

	case *vero.ForEachStatement:
		sc.vars[s.ItemVariable] = true
		w.line("for (const %s of %s) {", s.ItemVariable, s.CollectionVariable)
		w.in()
		g.stmts(w, s.Statements, sc)
		w.out()
		w.line("}")

	case *vero.TryCatchStatement:
		w.line("try {")
		w.in()
		g.stmts(w, s.Try, sc)
		w.out()
		w.line("} catch (__error) {")
		w.in()
		g.stmts(w, s.Catch, sc)
		w.out()
		w.line("}")

	case *vero.LoadStatement:
		sc.vars[s.Variable] = true
		sc.file.usesData = true
		w.line("const %s = await dataManager.loadTable(%s);", s.Variable, tsSingle(s.Table))

	case *vero.DataQueryStatement:
		g.dataQuery(w, s, sc)

	case *vero.ApiRequestStatement:
		g.apiRequest(w, s, sc)

	case *vero.VerifyResponseStatement:
		g.verifyResponse(w, s, sc)

	case *vero.MockApiStatement:
		g.mockApi(w, s, sc)

	case *vero.VerifyStatement:
		g.verify(w, s, sc)

	case *vero.VerifyScreenshotStatement:
		g.verifyScreenshot(w, s, sc)

	case *vero.SwitchToNewTabStatement:
		g.switchToNewTab(w, s, sc)

	case *vero.SwitchToTabStatement:
		g.switchToTab(w, s, sc)

	case *vero.OpenInNewTabStatement:
		g.openInNewTab(w, s, sc)

	case *vero.CloseTabStatement:
		g.closeTab(w, sc)

	default:
		g.errs = append(g.errs, *diag.Internal(
			diag.Location{Line: st.Pos()},
			fmt.Sprintf("no lowering for statement %T", st),
		))

	}

}

// --------------------------------------------------
// Verification lowering
// --------------------------------------------------

var conditionMatchers = map[vero.ConditionKind]string{
	vero.CondVisible:  "toBeVisible()",
	vero.CondHidden:   "toBeHidden()",
	vero.CondEnabled:  "toBeEnabled()",
	vero.CondDisabled: "toBeDisabled()",
	vero.CondChecked:  "toBeChecked()",
	vero.CondFocused:  "toBeFocused()",
	vero.CondEmpty:    "toBeEmpty()",
}

// verify lowers a VERIFY statement to an expect() call.
func (g *generator) verify(w *writer, s *vero.VerifyStatement, sc *scenarioState) {

	c := s.Condition

	neg := ""
	if c.Negated {
		neg = "not."
	}

	switch c.Kind {

	case vero.CondURLIs:
		w.line("await expect(page).toHaveURL(%s);", g.expr(c.Value, sc))
	case vero.CondURLContains:
		w.line("await expect(page).toContainURL(%s);", g.expr(c.Value, sc))
	case vero.CondTitleIs:
		w.line("await expect(page).toHaveTitle(%s);", g.expr(c.Value, sc))
	case vero.CondTitleContains:
		w.line("await expect(page).toContainTitle(%s);", g.expr(c.Value, sc))

	case vero.CondHasText:
		w.line("await expect(%s).%stoHaveText(%s);", g.locator(*c.Target, sc), neg, g.expr(c.Value, sc))
	case vero.CondContainsText:
		w.line("await expect(%s).%stoContainText(%s);", g.locator(*c.Target, sc), neg, g.expr(c.Value, sc))
	case vero.CondHasValue:
		w.line("await expect(%s).%stoHaveValue(%s);", g.locator(*c.Target, sc), neg, g.expr(c.Value, sc))
	case vero.CondHasClass:
		w.line("await expect(%s).%stoHaveClass(%s);", g.locator(*c.Target, sc), neg, g.expr(c.Value, sc))
	case vero.CondHasCount:
		w.line("await expect(%s).%stoHaveCount(%d);", g.locator(*c.Target, sc), neg, c.Count)
	case vero.CondHasAttribute:
		w.line("await expect(%s).%stoHaveAttribute(%s, %s);", g.locator(*c.Target, sc), neg, tsString(c.Attribute), g.expr(c.Value, sc))

	default:
		if m, ok := conditionMatchers[c.Kind]; ok {
			w.line("await expect(%s).%s%s;", g.locator(*c.Target, sc), neg, m)
			return
		}
		w.line("expect(%s).toBe(true);", g.condition(c, sc))

	}

}

// screenshot tolerance presets.
var presets = map[vero.TolerancePreset][3]float64{
	vero.PresetStrict:   {0.05, 0, 0},
	vero.PresetBalanced: {0.2, 0, 0},
	vero.PresetRelaxed:  {0.4, 0, 0.01},
}

// verifyScreenshot lowers a screenshot comparison with its preset and
// any overrides applied on top.
func (g *generator) verifyScreenshot(w *writer, s *vero.VerifyScreenshotStatement, sc *scenarioState) {

	p := presets[s.Preset]

	threshold, pixels, ratio := p[0], int(p[1]), p[2]

	if s.Threshold != nil {
		threshold = *s.Threshold
	}
	if s.MaxDiffPixels != nil {
		pixels = *s.MaxDiffPixels
	}
	if s.MaxDiffRatio != nil {
		ratio = *s.MaxDiffRatio
	}

	w.line("await expect(page).toHaveScreenshot(%s, { threshold: %s, maxDiffPixels: %d, maxDiffPixelRatio: %s });",
		tsString(slug.Make(s.Baseline)+".png"), trimFloat(threshold), pixels, trimFloat(ratio))

}

// condition renders an awaited boolean for IF statements.
func (g *generator) condition(c vero.Condition, sc *scenarioState) string {

	if c.Target != nil {

		loc := g.locator(*c.Target, sc)

		var probe string
		switch c.Kind {
		case vero.CondVisible:
			probe = "await " + loc + ".isVisible()"
		case vero.CondHidden:
			probe = "await " + loc + ".isHidden()"
		case vero.CondEnabled:
			probe = "await " + loc + ".isEnabled()"
		case vero.CondDisabled:
			probe = "await " + loc + ".isDisabled()"
		case vero.CondChecked:
			probe = "await " + loc + ".isChecked()"
		case vero.CondFocused:
			probe = "await " + loc + ".evaluate((el) => el === document.activeElement)"
		case vero.CondEmpty:
			probe = "((await " + loc + ".textContent()) || \"\").trim() === \"\""
		case vero.CondContainsText:
			probe = "((await " + loc + ".textContent()) || \"\").includes(" + g.expr(c.Value, sc) + ")"
		default:
			probe = "await " + loc + ".isVisible()"
		}

		if c.Negated {
			return "!(" + probe + ")"
		}
		return probe

	}

	left := g.expr(c.Left, sc)
	right := ""
	if c.Value != nil {
		right = g.expr(c.Value, sc)
	}

	switch c.Operator {
	case vero.OpNeq:
		return left + " !== " + right
	case vero.OpContains:
		return "String(" + left + ").includes(" + right + ")"
	case vero.OpMatches:
		return "new RegExp(" + right + ").test(String(" + left + "))"
	default:
		return left + " === " + right
	}

}

// --------------------------------------------------
// API lowering
// --------------------------------------------------

// apiRequest lowers API GET|POST|... to the host request fixture,
// assigning the scenario-scoped response variable.
func (g *generator) apiRequest(w *writer, s *vero.ApiRequestStatement, sc *scenarioState) {

	var opts []string
	if s.Body != nil {
		opts = append(opts, "data: "+g.expr(s.Body, sc))
	}
	if s.Headers != nil {
		opts = append(opts, "headers: "+g.expr(s.Headers, sc))
	}

	// Inside an action method there is no test fixture to
	// destructure; the page's own request context serves instead.
	fixture := "request"
	if sc.inAction {
		fixture = "page.request"
	}

	call := fixture + "." + strings.ToLower(s.Method) + "(" + g.expr(s.URL, sc)
	if len(opts) > 0 {
		call += ", { " + strings.Join(opts, ", ") + " }"
	}
	call += ")"

	w.line("__vero_apiResponse = await %s;", call)

}

// verifyResponse lowers VERIFY RESPONSE assertions.
func (g *generator) verifyResponse(w *writer, s *vero.VerifyResponseStatement, sc *scenarioState) {

	val := g.expr(s.Value, sc)

	switch s.Target {

	case vero.RespStatus:
		switch s.Operator {
		case vero.OpNeq:
			w.line("expect(__vero_apiResponse.status()).not.toBe(%s);", val)
		default:
			w.line("expect(__vero_apiResponse.status()).toBe(%s);", val)
		}

	case vero.RespBody:
		switch s.Operator {
		case vero.OpContains:
			w.line("expect(await __vero_apiResponse.text()).toContain(%s);", val)
		case vero.OpMatches:
			w.line("expect(await __vero_apiResponse.text()).toMatch(new RegExp(%s));", val)
		case vero.OpNeq:
			w.line("expect(await __vero_apiResponse.text()).not.toBe(%s);", val)
		default:
			w.line("expect(await __vero_apiResponse.text()).toBe(%s);", val)
		}

	case vero.RespHeaders:
		switch s.Operator {
		case vero.OpContains:
			w.line("expect(JSON.stringify(__vero_apiResponse.headers())).toContain(%s);", val)
		default:
			w.line("expect(JSON.stringify(__vero_apiResponse.headers())).toBe(%s);", val)
		}

	}

}

// mockApi lowers MOCK API to a fulfilling route handler.
func (g *generator) mockApi(w *writer, s *vero.MockApiStatement, sc *scenarioState) {

	if s.Body == nil {
		w.line("await page.route(%s, (route) => route.fulfill({ status: %d }));", tsString(s.URL), s.Status)
		return
	}

	w.line("await page.route(%s, (route) => route.fulfill({ status: %d, body: %s, contentType: \"application/json\" }));",
		tsString(s.URL), s.Status, g.expr(s.Body, sc))

}

// trimFloat renders a float without a trailing .0 so whole numbers
// stay whole in the output.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
