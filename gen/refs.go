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

// refs is the result of scanning a statement list ahead of emission:
// which page objects the code binds, and which fixtures the generated
// test callback must destructure.
type refs struct {
	pages    []string
	seen     map[string]bool
	rowVars  map[string]bool
	usesApi  bool
	usesEnv  bool
	usesTabs bool
	usesData bool
	visited  map[string]bool
}

func newRefs() *refs {
	return &refs{
		seen:    make(map[string]bool),
		rowVars: make(map[string]bool),
		visited: make(map[string]bool),
	}
}

// addPage records a page identifier in first-appearance order. Row
// variables bound earlier shadow page names and are never collected.
func (r *refs) addPage(name string) {
	if name == "" || r.seen[name] || r.rowVars[name] {
		return
	}
	r.seen[name] = true
	r.pages = append(r.pages, name)
}

// collect scans statements for page references, API usage,
// environment references, tab operations and data queries. Perform
// calls are followed into their action bodies so that fixture needs
// propagate transitively.
func (g *generator) collect(stmts []vero.Statement, r *refs) {

	for _, st := range stmts {

		switch s := st.(type) {

		case *vero.ClickStatement:
			r.addPage(s.Target.Page)
		case *vero.FillStatement:
			r.addPage(s.Target.Page)
			g.collectExpr(s.Value, r)
		case *vero.OpenStatement:
			g.collectExpr(s.URL, r)
		case *vero.CheckStatement:
			r.addPage(s.Target.Page)
		case *vero.UncheckStatement:
			r.addPage(s.Target.Page)
		case *vero.SelectStatement:
			r.addPage(s.Target.Page)
			g.collectExpr(s.Value, r)
		case *vero.HoverStatement:
			r.addPage(s.Target.Page)
		case *vero.PressStatement:
			g.collectExpr(s.Key, r)
		case *vero.ScrollStatement:
			r.addPage(s.Target.Page)
		case *vero.ClearStatement:
			r.addPage(s.Target.Page)
		case *vero.UploadStatement:
			r.addPage(s.Target.Page)
			g.collectExpr(s.Path, r)
		case *vero.DragStatement:
			r.addPage(s.Source.Page)
			r.addPage(s.Dest.Page)
		case *vero.LogStatement:
			g.collectExpr(s.Value, r)

		case *vero.PerformStatement:
			r.addPage(s.Container)
			for _, a := range s.Arguments {
				g.collectExpr(a, r)
			}
			// Follow the action body once, so API usage inside page
			// actions surfaces on the calling scenario.
			key := s.Container + "." + s.Action
			if g.table != nil && !r.visited[key] {
				r.visited[key] = true
				if act := g.table.ActionOf(s.Container, s.Action); act != nil {
					g.collect(act.Statements, r)
				}
			}

		case *vero.ReturnStatement:
			if s.Value != nil {
				g.collectExpr(s.Value, r)
			}

		case *vero.SetStatement:
			r.rowVars[s.Name] = true
			g.collectExpr(s.Value, r)

		case *vero.LoadStatement:
			r.rowVars[s.Variable] = true
			r.usesData = true

		case *vero.DataQueryStatement:
			r.rowVars[s.Variable] = true
			r.usesData = true
			if s.Query != nil {
				g.collectCondition(s.Query.Where, r)
				if s.Query.DefaultValue != nil {
					g.collectExpr(s.Query.DefaultValue, r)
				}
			}

		case *vero.VerifyStatement:
			if s.Condition.Target != nil {
				r.addPage(s.Condition.Target.Page)
			}
			if s.Condition.Value != nil {
				g.collectExpr(s.Condition.Value, r)
			}
			if s.Condition.Left != nil {
				g.collectExpr(s.Condition.Left, r)
			}

		case *vero.IfStatement:
			if s.Condition.Target != nil {
				r.addPage(s.Condition.Target.Page)
			}
			if s.Condition.Value != nil {
				g.collectExpr(s.Condition.Value, r)
			}
			if s.Condition.Left != nil {
				g.collectExpr(s.Condition.Left, r)
			}
			g.collect(s.Then, r)
			g.collect(s.Else, r)

		case *vero.RepeatStatement:
			g.collect(s.Statements, r)

		case *vero.ForEachStatement:
			r.rowVars[s.ItemVariable] = true
			g.collect(s.Statements, r)

		case *vero.TryCatchStatement:
			g.collect(s.Try, r)
			g.collect(s.Catch, r)

		case *vero.ApiRequestStatement:
			r.usesApi = true
			g.collectExpr(s.URL, r)
			if s.Body != nil {
				g.collectExpr(s.Body, r)
			}
			if s.Headers != nil {
				g.collectExpr(s.Headers, r)
			}

		case *vero.MockApiStatement:
			if s.Body != nil {
				g.collectExpr(s.Body, r)
			}

		case *vero.SwitchToNewTabStatement:
			r.usesTabs = true
		case *vero.SwitchToTabStatement:
			r.usesTabs = true
		case *vero.OpenInNewTabStatement:
			r.usesTabs = true
		case *vero.CloseTabStatement:
			r.usesTabs = true

		}

	}

}

func (g *generator) collectExpr(e vero.Expr, r *refs) {

	switch v := e.(type) {

	case *vero.EnvVarReference:
		r.usesEnv = true

	case *vero.MemberAccess:
		if ref, ok := v.Object.(*vero.VariableReference); ok {
			if g.table != nil && g.table.IsPage(ref.Name) && !r.rowVars[ref.Name] {
				r.addPage(ref.Name)
				return
			}
		}
		g.collectExpr(v.Object, r)

	case *vero.ArrayLiteral:
		for _, it := range v.Items {
			g.collectExpr(it, r)
		}

	case *vero.TransformExpr:
		for _, a := range v.Args {
			g.collectExpr(a, r)
		}

	}

}

func (g *generator) collectCondition(c vero.DataCondition, r *refs) {

	switch v := c.(type) {

	case *vero.AndCondition:
		g.collectCondition(v.Left, r)
		g.collectCondition(v.Right, r)

	case *vero.OrCondition:
		g.collectCondition(v.Left, r)
		g.collectCondition(v.Right, r)

	case *vero.NotCondition:
		g.collectCondition(v.Inner, r)

	case *vero.Comparison:
		if v.Value != nil {
			g.collectExpr(v.Value, r)
		}
		for _, val := range v.Values {
			g.collectExpr(val, r)
		}

	}

}
