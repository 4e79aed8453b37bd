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

// expr lowers an expression to its TypeScript form. Side effects on
// the scenario state record which runtime helpers and environment
// lookups the surrounding unit must declare.
func (g *generator) expr(e vero.Expr, sc *scenarioState) string {

	switch v := e.(type) {

	case *vero.StringLiteral:
		return tsString(v.Value)

	case *vero.NumberLiteral:
		return v.Lexeme

	case *vero.BooleanLiteral:
		if v.Value {
			return "true"
		}
		return "false"

	case *vero.NullLiteral:
		return "null"

	case *vero.EnvVarReference:
		sc.usesEnv = true
		return "__env__[" + tsString(v.Name) + "]"

	case *vero.VariableReference:
		return v.Name

	case *vero.MemberAccess:
		if ref, ok := v.Object.(*vero.VariableReference); ok {
			// Page.variable reads resolve through the page binding,
			// unless a row variable shadows the page name.
			if g.table != nil && g.table.IsPage(ref.Name) && !sc.vars[ref.Name] {
				return sc.binding(ref.Name) + "." + v.Member
			}
		}
		return g.expr(v.Object, sc) + "." + v.Member

	case *vero.ArrayLiteral:
		items := make([]string, len(v.Items))
		for i, it := range v.Items {
			items[i] = g.expr(it, sc)
		}
		return "[" + strings.Join(items, ", ") + "]"

	case *vero.TransformExpr:
		return g.transform(v, sc)

	}

	return "undefined"

}

// transform lowers a transform expression. String transforms inline
// to standard library calls; date, format and id transforms call the
// runtime helpers.
func (g *generator) transform(t *vero.TransformExpr, sc *scenarioState) string {

	arg := func(i int) string {
		if i < len(t.Args) {
			return g.expr(t.Args[i], sc)
		}
		return "undefined"
	}

	switch t.Op {

	case vero.UPPERCASE:
		return "String(" + arg(0) + ").toUpperCase()"

	case vero.LOWERCASE:
		return "String(" + arg(0) + ").toLowerCase()"

	case vero.TRIM:
		return "String(" + arg(0) + ").trim()"

	case vero.LENGTH:
		return "String(" + arg(0) + ").length"

	case vero.ROUND:
		return "Math.round(Number(" + arg(0) + "))"

	case vero.ABSOLUTE:
		return "Math.abs(Number(" + arg(0) + "))"

	case vero.EXTRACT:
		return "(String(" + arg(0) + ").match(new RegExp(" + arg(1) + ")) || [\"\"])[0]"

	case vero.REPLACE:
		return "String(" + arg(0) + ").split(" + arg(1) + ").join(" + arg(2) + ")"

	case vero.SPLIT:
		return "String(" + arg(0) + ").split(" + arg(1) + ")"

	case vero.JOIN:
		return "(" + arg(0) + ").join(" + arg(1) + ")"

	case vero.PAD:
		return "String(" + arg(0) + ").padStart(" + arg(1) + ", " + arg(2) + ")"

	case vero.TODAY:
		return "new Date().toISOString().slice(0, 10)"

	case vero.NOW:
		return "new Date().toISOString()"

	case vero.ADD:
		sc.helper("dateAdd")
		return "dateAdd(" + arg(0) + ", " + arg(1) + ", " + arg(2) + ")"

	case vero.SUBTRACT:
		sc.helper("dateAdd")
		return "dateAdd(" + arg(0) + ", -(" + arg(1) + "), " + arg(2) + ")"

	case vero.FORMAT:
		sc.helper("formatValue")
		return "formatValue(" + arg(0) + ", " + arg(1) + ")"

	case vero.CONVERT:
		if len(t.Args) > 1 {
			if lit, ok := t.Args[1].(*vero.StringLiteral); ok && lit.Value == "PERCENT" {
				sc.helper("toPercent")
				return "toPercent(" + arg(0) + ")"
			}
		}
		sc.helper("toCurrency")
		return "toCurrency(" + arg(0) + ")"

	case vero.UUID:
		sc.helper("generateUuid")
		return "generateUuid()"

	}

	return "undefined"

}
