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

// Package check resolves cross-declaration references and enforces
// the scoping rules of a parsed program.
package check

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/util/fuzzy"
	"github.com/abcum/vero/vero"
)

// checker walks the program with the symbol table under construction.
type checker struct {
	table *Table
	errs  []diag.Diagnostic
}

// Validate builds the symbol table and resolves every reference in
// the program. Validation errors do not abort the pipeline; the
// symbol table is always returned so transpilation and the editor can
// work with partial results.
func Validate(prog *vero.Program) (*Table, []diag.Diagnostic) {

	c := &checker{table: NewTable()}

	c.collect(prog)
	c.resolve(prog)

	return c.table, c.errs

}

func (c *checker) push(code string, line int) *diag.Diagnostic {
	d := diag.New(code, diag.Location{Line: line})
	c.errs = append(c.errs, *d)
	return &c.errs[len(c.errs)-1]
}

// --------------------------------------------------
// Pass 1 — collect
// --------------------------------------------------

func (c *checker) collect(prog *vero.Program) {

	for _, pg := range prog.Pages {

		if c.table.IsContainer(pg.Name) {
			c.push("VERO-303", pg.Line).
				Detail("'%s' is declared more than once", pg.Name)
			continue
		}

		c.table.Pages[pg.Name] = pg
		fields := make(map[string]bool)
		c.table.PageFields[pg.Name] = fields

		for _, f := range pg.Fields {
			if fields[f.Name] {
				c.push("VERO-303", f.Line).
					Detail("Field '%s' is declared more than once on page '%s'", f.Name, pg.Name)
				continue
			}
			fields[f.Name] = true
		}

		for _, a := range pg.Actions {
			if fields[a.Name] {
				c.push("VERO-303", a.Line).
					Detail("'%s' is declared more than once on page '%s'", a.Name, pg.Name)
				continue
			}
			fields[a.Name] = true
		}

		c.checkPageNaming(pg)

	}

	for _, pa := range prog.PageActions {

		if c.table.IsContainer(pa.Name) {
			c.push("VERO-303", pa.Line).
				Detail("'%s' is declared more than once", pa.Name)
			continue
		}

		c.table.PageActions[pa.Name] = pa
		actions := make(map[string]bool)
		c.table.PageActionsActions[pa.Name] = actions

		for _, a := range pa.Actions {
			if actions[a.Name] {
				c.push("VERO-303", a.Line).
					Detail("Action '%s' is declared more than once on '%s'", a.Name, pa.Name)
				continue
			}
			actions[a.Name] = true
		}

	}

}

// --------------------------------------------------
// Pass 2 — resolve
// --------------------------------------------------

// scope tracks the variables visible to the statement being walked.
// It is recomputed for every scenario, hook and action body.
type scope struct {
	uses map[string]bool
	vars map[string]bool
	// tabs are rejected in BEFORE ALL / AFTER ALL hooks and in any
	// PAGEACTIONS action.
	noTabs  bool
	context string
}

func newScope(uses map[string]bool) *scope {
	return &scope{uses: uses, vars: make(map[string]bool)}
}

func (c *checker) resolve(prog *vero.Program) {

	for _, pa := range prog.PageActions {
		if !c.table.IsPage(pa.ForPage) {
			c.push("VERO-321", pa.Line).
				Detail("PAGEACTIONS '%s' is for page '%s', which is not declared", pa.Name, pa.ForPage).
				Suggest(didYouMean(pa.ForPage, c.table.PageNames()))
		}
		for _, a := range pa.Actions {
			sc := newScope(allPages(c.table))
			sc.noTabs = true
			sc.context = fmt.Sprintf("PAGEACTIONS action '%s.%s'", pa.Name, a.Name)
			for _, p := range a.Parameters {
				sc.vars[p] = true
			}
			c.walk(a.Statements, sc)
		}
	}

	for _, pg := range prog.Pages {
		for _, a := range pg.Actions {
			sc := newScope(allPages(c.table))
			sc.context = fmt.Sprintf("action '%s.%s'", pg.Name, a.Name)
			for _, p := range a.Parameters {
				sc.vars[p] = true
			}
			c.walk(a.Statements, sc)
		}
	}

	for _, f := range prog.Features {
		c.resolveFeature(f)
	}

}

func (c *checker) resolveFeature(f *vero.Feature) {

	uses := make(map[string]bool)

	for _, use := range f.Uses {
		if !c.table.IsContainer(use.Name) {
			c.push("VERO-301", use.Line).
				Detail("'%s' is not a declared page or PAGEACTIONS block", use.Name).
				Suggest(didYouMean(use.Name, c.table.ContainerNames()))
			continue
		}
		uses[use.Name] = true
	}

	for _, h := range f.Hooks {
		sc := newScope(uses)
		sc.noTabs = h.Type == vero.BeforeAll || h.Type == vero.AfterAll
		sc.context = h.Type.String() + " hook"
		c.walk(h.Statements, sc)
	}

	for _, fx := range f.Fixtures {
		sc := newScope(uses)
		sc.context = fmt.Sprintf("fixture '%s'", fx.Name)
		c.walk(fx.Setup, sc)
		c.walk(fx.Teardown, sc)
	}

	for _, s := range f.Scenarios {
		sc := newScope(uses)
		sc.context = fmt.Sprintf("scenario '%s'", s.Name)
		c.walk(s.Statements, sc)
	}

}

func allPages(t *Table) map[string]bool {
	out := make(map[string]bool, len(t.Pages))
	for n := range t.Pages {
		out[n] = true
	}
	return out
}

// --------------------------------------------------
// Statement walking
// --------------------------------------------------

func (c *checker) walk(stmts []vero.Statement, sc *scope) {

	for _, st := range stmts {

		switch s := st.(type) {

		case *vero.ClickStatement:
			c.target(s.Target, sc)
		case *vero.FillStatement:
			c.target(s.Target, sc)
		case *vero.CheckStatement:
			c.target(s.Target, sc)
		case *vero.UncheckStatement:
			c.target(s.Target, sc)
		case *vero.SelectStatement:
			c.target(s.Target, sc)
		case *vero.HoverStatement:
			c.target(s.Target, sc)
		case *vero.ScrollStatement:
			c.target(s.Target, sc)
		case *vero.ClearStatement:
			c.target(s.Target, sc)
		case *vero.UploadStatement:
			c.target(s.Target, sc)
		case *vero.DragStatement:
			c.target(s.Source, sc)
			c.target(s.Dest, sc)

		case *vero.PerformStatement:
			c.perform(s, sc)

		case *vero.SetStatement:
			sc.vars[s.Name] = true

		case *vero.LoadStatement:
			sc.vars[s.Variable] = true

		case *vero.DataQueryStatement:
			sc.vars[s.Variable] = true

		case *vero.VerifyStatement:
			if s.Condition.Target != nil {
				c.target(*s.Condition.Target, sc)
			}

		case *vero.IfStatement:
			if s.Condition.Target != nil {
				c.target(*s.Condition.Target, sc)
			}
			c.walk(s.Then, sc)
			c.walk(s.Else, sc)

		case *vero.RepeatStatement:
			c.walk(s.Statements, sc)

		case *vero.ForEachStatement:
			if !sc.vars[s.CollectionVariable] {
				c.push("VERO-204", s.Pos()).
					Detail("'%s' is not bound in this scenario", s.CollectionVariable).
					Suggest(fmt.Sprintf("Bind it first, for example: rows %s from TableName", s.CollectionVariable))
			}
			sc.vars[s.ItemVariable] = true
			c.walk(s.Statements, sc)

		case *vero.TryCatchStatement:
			c.walk(s.Try, sc)
			c.walk(s.Catch, sc)

		case *vero.SwitchToNewTabStatement:
			c.tab(s.Pos(), sc)
		case *vero.SwitchToTabStatement:
			c.tab(s.Pos(), sc)
		case *vero.OpenInNewTabStatement:
			c.tab(s.Pos(), sc)
		case *vero.CloseTabStatement:
			c.tab(s.Pos(), sc)

		}

	}

}

// target validates a Page.field reference against the USE list and
// the page's field set.
func (c *checker) target(t vero.Target, sc *scope) {

	// Row variables can shadow page names in member positions; a
	// bound variable on the left is not a page reference.
	if sc.vars[t.Page] {
		return
	}

	if !c.table.IsPage(t.Page) || !sc.uses[t.Page] {
		c.push("VERO-304", t.Line).
			Detail("Page '%s' is not available here", t.Page).
			Suggest(didYouMean(t.Page, c.table.PageNames())).
			Suggest(fmt.Sprintf("Add 'use %s' to the feature", t.Page))
		return
	}

	if !c.table.HasField(t.Page, t.Field) {
		available := c.table.FieldNames(t.Page)
		d := c.push("VERO-302", t.Line)
		d.Detail("Page '%s' has no field '%s'", t.Page, t.Field)
		if near := fuzzy.Suggest(t.Field, available, 1); len(near) > 0 {
			d.Suggest(fmt.Sprintf("Did you mean '%s'?", near[0]))
		}
		if len(available) > 5 {
			available = fuzzy.Suggest(t.Field, available, 5)
		}
		d.Suggest("Available fields: " + strings.Join(available, ", "))
	}

}

// perform validates a Container.action call and its arity.
func (c *checker) perform(s *vero.PerformStatement, sc *scope) {

	if !c.table.IsContainer(s.Container) {
		c.push("VERO-305", s.Pos()).
			Detail("'%s' is not a declared page or PAGEACTIONS block", s.Container).
			Suggest(didYouMean(s.Container, c.table.ContainerNames()))
		return
	}

	act := c.table.ActionOf(s.Container, s.Action)
	if act == nil {
		c.push("VERO-305", s.Pos()).
			Detail("'%s' has no action '%s'", s.Container, s.Action).
			Suggest(didYouMean(s.Action, c.table.ActionNames(s.Container)))
		return
	}

	if len(s.Arguments) != len(act.Parameters) {
		c.push("VERO-306", s.Pos()).
			Detail("Action '%s.%s' takes %d parameter(s) but %d argument(s) were passed",
				s.Container, s.Action, len(act.Parameters), len(s.Arguments))
	}

}

// tab rejects tab operations in contexts with no scenario page.
func (c *checker) tab(line int, sc *scope) {
	if sc.noTabs {
		c.push("VERO-320", line).
			Detail("Tab operations cannot run in a %s", sc.context)
	}
}

// --------------------------------------------------
// Naming conventions (warnings only)
// --------------------------------------------------

func (c *checker) checkPageNaming(pg *vero.Page) {

	if !isPascal(pg.Name) {
		c.push("VERO-310", pg.Line).
			Detail("Page '%s' should be PascalCase", pg.Name)
	}

	for _, f := range pg.Fields {
		if !isCamel(f.Name) {
			c.push("VERO-310", f.Line).
				Detail("Field '%s' should be camelCase", f.Name)
		}
	}

	for _, a := range pg.Actions {
		if !isCamel(a.Name) {
			c.push("VERO-310", a.Line).
				Detail("Action '%s' should be camelCase", a.Name)
		}
	}

}

func isPascal(name string) bool {
	if name == "" || strings.ContainsAny(name, "_-") {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func isCamel(name string) bool {
	if name == "" || strings.ContainsAny(name, "_-") {
		return false
	}
	return unicode.IsLower(rune(name[0]))
}

// didYouMean formats the closest candidate names as a suggestion.
func didYouMean(name string, candidates []string) string {
	near := fuzzy.Suggest(name, candidates, 3)
	if len(near) == 0 {
		return "Declare it before using it"
	}
	quoted := make([]string, len(near))
	for i, n := range near {
		quoted[i] = "'" + n + "'"
	}
	return "Did you mean " + strings.Join(quoted, ", ") + "?"
}
