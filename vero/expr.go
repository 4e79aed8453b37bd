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

package vero

import "strconv"

// transforms which take a parenthesised argument list.
var transformKinds = []Kind{
	TRIM, CONVERT, UPPERCASE, LOWERCASE, EXTRACT, REPLACE, SPLIT,
	JOIN, LENGTH, PAD, ADD, SUBTRACT, FORMAT, ROUND, ABSOLUTE,
}

// unit keywords valid as bare transform arguments.
var unitKinds = []Kind{DAY, MONTH, YEAR, CURRENCY, PERCENT}

// parseExpr parses a single expression: a literal, a variable or
// member reference, an environment reference, an array literal, or a
// transform application.
func (p *parser) parseExpr() (Expr, bool) {

	tok := p.peek()

	switch tok.Kind {

	case STRING:
		p.next()
		return &StringLiteral{Value: tok.Lexeme}, true

	case NUMBERLIT:
		p.next()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.fail("VERO-202").Detail("The number '%s' cannot be parsed", tok.Lexeme)
			return nil, false
		}
		return &NumberLiteral{Value: f, Lexeme: tok.Lexeme}, true

	case TRUE:
		p.next()
		return &BooleanLiteral{Value: true}, true

	case FALSE:
		p.next()
		return &BooleanLiteral{Value: false}, true

	case NULL:
		p.next()
		return &NullLiteral{}, true

	case ENVREF:
		p.next()
		return &EnvVarReference{Name: tok.Lexeme}, true

	case LBRACK:
		return p.parseArray()

	case TODAY, NOW:
		p.next()
		return &TransformExpr{Op: tok.Kind}, true

	case GENERATE:
		p.next()
		if _, ok := p.shouldBe(UUID); !ok {
			return nil, false
		}
		return &TransformExpr{Op: UUID}, true

	}

	if tok.Is(transformKinds...) && p.peekAt(1).Kind == LPAREN {
		return p.parseTransform()
	}

	if tok.Is(unitKinds...) {
		p.next()
		return &StringLiteral{Value: tok.Kind.String()}, true
	}

	if tok.Kind == IDENT || tok.Kind.isKeyword() {
		p.next()
		var e Expr = &VariableReference{Name: tok.Lexeme}
		for p.at(DOT) {
			p.next()
			member, ok := p.parseName()
			if !ok {
				return nil, false
			}
			e = &MemberAccess{Object: e, Member: member}
		}
		return e, true
	}

	p.fail("VERO-202").Detail("Found %s where a value was expected", tok.Kind)
	return nil, false

}

// parseArray parses a bracketed expression list.
func (p *parser) parseArray() (Expr, bool) {

	p.next() // [

	arr := &ArrayLiteral{}

	for !p.at(RBRACK, EOF) {
		item, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		arr.Items = append(arr.Items, item)
		if _, ok := p.mightBe(COMMA); !ok {
			break
		}
	}

	if _, ok := p.shouldBe(RBRACK); !ok {
		return nil, false
	}

	return arr, true

}

// parseTransform parses transform(arg, ...).
func (p *parser) parseTransform() (Expr, bool) {

	op := p.next()

	if _, ok := p.shouldBe(LPAREN); !ok {
		return nil, false
	}

	t := &TransformExpr{Op: op.Kind}

	for !p.at(RPAREN, EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		t.Args = append(t.Args, arg)
		if _, ok := p.mightBe(COMMA); !ok {
			break
		}
	}

	if _, ok := p.shouldBe(RPAREN); !ok {
		return nil, false
	}

	return t, true

}
