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

	"github.com/abcum/vero/vero"
)

// dataQuery lowers a typed VDQL binding to a query-builder chain.
func (g *generator) dataQuery(w *writer, s *vero.DataQueryStatement, sc *scenarioState) {

	sc.vars[s.Variable] = true

	q := s.Query
	ref := q.Ref

	manager := "dataManager"
	if ref.Project != "" {
		manager = ref.Project + "Data"
		sc.file.projects[ref.Project] = true
	} else {
		sc.file.usesData = true
	}

	var chain strings.Builder
	fmt.Fprintf(&chain, "%s.query(%s)", manager, tsSingle(ref.Table))

	if len(ref.Columns) > 0 && q.Function == vero.AggNone {
		cols := make([]string, len(ref.Columns))
		for i, c := range ref.Columns {
			cols[i] = tsSingle(c)
		}
		fmt.Fprintf(&chain, ".select([%s])", strings.Join(cols, ", "))
	}

	if ref.RowIndex != nil {
		fmt.Fprintf(&chain, ".row(%d)", *ref.RowIndex)
	}
	if ref.RangeStart != nil && ref.RangeEnd != nil {
		fmt.Fprintf(&chain, ".range(%d, %d)", *ref.RangeStart, *ref.RangeEnd)
	}
	if ref.CellRow != nil && ref.CellCol != nil {
		fmt.Fprintf(&chain, ".cell(%d, %d)", *ref.CellRow, *ref.CellCol)
	}

	if q.Where != nil {
		fmt.Fprintf(&chain, ".where(%s)", g.predicate(q.Where, sc))
	}

	if len(q.OrderBy) > 0 {
		keys := make([]string, len(q.OrderBy))
		for i, k := range q.OrderBy {
			dir := "ASC"
			if k.Descending {
				dir = "DESC"
			}
			keys[i] = fmt.Sprintf("{column:%s, direction:%s}", tsSingle(k.Column), tsSingle(dir))
		}
		fmt.Fprintf(&chain, ".orderBy([%s])", strings.Join(keys, ", "))
	}

	if q.Limit != nil {
		fmt.Fprintf(&chain, ".limit(%d)", *q.Limit)
	}
	if q.Offset != nil {
		fmt.Fprintf(&chain, ".offset(%d)", *q.Offset)
	}
	if q.DefaultValue != nil {
		fmt.Fprintf(&chain, ".default(%s)", g.expr(q.DefaultValue, sc))
	}

	chain.WriteString(g.terminal(q))

	value := chain.String()

	// A single-column scalar binding reads the column off the chosen
	// row.
	if q.Function == vero.AggNone && ref.Column != "" &&
		(s.ResultType == vero.ResultText || s.ResultType == vero.ResultNumber || s.ResultType == vero.ResultFlag) {
		value = fmt.Sprintf("(%s || {})[%s]", value, tsSingle(ref.Column))
	}

	w.line("const %s = %s;", s.Variable, value)

}

// terminal picks the materialising call for a query.
func (g *generator) terminal(q *vero.DataQuery) string {

	col := tsSingle(q.Ref.Column)

	switch q.Function {
	case vero.AggCount:
		if q.Distinct {
			return ".countDistinct(" + col + ")"
		}
		return ".count()"
	case vero.AggSum:
		return ".sum(" + col + ")"
	case vero.AggAverage:
		return ".average(" + col + ")"
	case vero.AggMin:
		return ".min(" + col + ")"
	case vero.AggMax:
		return ".max(" + col + ")"
	case vero.AggDistinct:
		return ".distinct(" + col + ")"
	case vero.AggRows:
		return ".rowCount()"
	case vero.AggColumns:
		return ".columnCount()"
	case vero.AggHeaders:
		return ".headers()"
	}

	switch q.Position {
	case vero.PosFirst:
		return ".first()"
	case vero.PosLast:
		return ".last()"
	case vero.PosRandom:
		return ".random()"
	}

	return ".execute()"

}

// predicate compiles a WHERE tree to the combinator helpers.
func (g *generator) predicate(c vero.DataCondition, sc *scenarioState) string {

	switch v := c.(type) {

	case *vero.AndCondition:
		sc.pred("and")
		return "and(" + g.predicate(v.Left, sc) + ", " + g.predicate(v.Right, sc) + ")"

	case *vero.OrCondition:
		sc.pred("or")
		return "or(" + g.predicate(v.Left, sc) + ", " + g.predicate(v.Right, sc) + ")"

	case *vero.NotCondition:
		sc.pred("not")
		return "not(" + g.predicate(v.Inner, sc) + ")"

	case *vero.Comparison:
		return g.comparison(v, sc)

	}

	return "undefined"

}

var comparisonPreds = map[vero.CompareOp]string{
	vero.OpEq:         "eq",
	vero.OpNeq:        "neq",
	vero.OpGt:         "gt",
	vero.OpLt:         "lt",
	vero.OpGte:        "gte",
	vero.OpLte:        "lte",
	vero.OpContains:   "contains",
	vero.OpStartsWith: "startsWith",
	vero.OpEndsWith:   "endsWith",
	vero.OpMatches:    "matches",
	vero.OpIn:         "isIn",
	vero.OpNotIn:      "notIn",
	vero.OpIsNull:     "isNull",
	vero.OpIsEmpty:    "isEmpty",
	vero.OpIsNotEmpty: "isNotEmpty",
}

func (g *generator) comparison(v *vero.Comparison, sc *scenarioState) string {

	name := comparisonPreds[v.Operator]
	sc.pred(name)

	col := tsSingle(v.Column)

	switch v.Operator {

	case vero.OpIsNull, vero.OpIsEmpty, vero.OpIsNotEmpty:
		return name + "(" + col + ")"

	case vero.OpIn, vero.OpNotIn:
		vals := make([]string, len(v.Values))
		for i, e := range v.Values {
			vals[i] = g.queryValue(e, sc)
		}
		return name + "(" + col + ", [" + strings.Join(vals, ", ") + "])"

	default:
		return name + "(" + col + ", " + g.queryValue(v.Value, sc) + ")"

	}

}

// queryValue renders a comparison value, using the single-quoted form
// for plain strings to match the query-chain style.
func (g *generator) queryValue(e vero.Expr, sc *scenarioState) string {
	if lit, ok := e.(*vero.StringLiteral); ok {
		return tsSingle(lit.Value)
	}
	return g.expr(e, sc)
}
