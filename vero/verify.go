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

var stateConditions = map[Kind]ConditionKind{
	VISIBLE:  CondVisible,
	HIDDEN:   CondHidden,
	ENABLED:  CondEnabled,
	DISABLED: CondDisabled,
	CHECKED:  CondChecked,
	FOCUSED:  CondFocused,
	EMPTY:    CondEmpty,
}

// parseVerify parses every VERIFY statement shape.
func (p *parser) parseVerify() Statement {

	tok := p.next() // VERIFY

	switch p.peek().Kind {

	case RESPONSE:
		return p.parseVerifyResponse(tok)

	case SCREENSHOT:
		return p.parseVerifyScreenshot(tok)

	case URL, TITLE:
		lead := p.next()
		op, ok := p.shouldBe(IS, CONTAINS)
		if !ok {
			p.syncBlock()
			return nil
		}
		val, ok := p.parseExpr()
		if !ok {
			p.syncBlock()
			return nil
		}
		cond := Condition{Value: val}
		switch {
		case lead.Kind == URL && op.Kind == IS:
			cond.Kind = CondURLIs
		case lead.Kind == URL:
			cond.Kind = CondURLContains
		case op.Kind == IS:
			cond.Kind = CondTitleIs
		default:
			cond.Kind = CondTitleContains
		}
		return &VerifyStatement{stmtBase{tok.Line}, cond}

	}

	target, ok := p.parseTarget()
	if !ok {
		p.syncBlock()
		return nil
	}

	cond, ok := p.parseTargetCondition(target)
	if !ok {
		p.syncBlock()
		return nil
	}

	return &VerifyStatement{stmtBase{tok.Line}, cond}

}

// parseTargetCondition parses the condition tail after a target:
// IS [NOT] <state>, CONTAINS <expr>, or HAS <property>.
func (p *parser) parseTargetCondition(target Target) (Condition, bool) {

	cond := Condition{Target: &target}

	switch p.peek().Kind {

	case IS:
		p.next()
		if _, ok := p.mightBe(NOT); ok {
			cond.Negated = true
		}
		state, ok := p.shouldBe(VISIBLE, HIDDEN, ENABLED, DISABLED, CHECKED, FOCUSED, EMPTY)
		if !ok {
			return cond, false
		}
		cond.Kind = stateConditions[state.Kind]
		return cond, true

	case CONTAINS:
		p.next()
		val, ok := p.parseExpr()
		if !ok {
			return cond, false
		}
		cond.Kind = CondContainsText
		cond.Value = val
		return cond, true

	case HAS:
		p.next()
		prop, ok := p.shouldBe(TEXT, VALUE, CLASS, COUNT, ATTRIBUTE)
		if !ok {
			return cond, false
		}
		switch prop.Kind {
		case TEXT:
			cond.Kind = CondHasText
		case VALUE:
			cond.Kind = CondHasValue
		case CLASS:
			cond.Kind = CondHasClass
		case COUNT:
			n, ok := p.parseInt()
			if !ok {
				return cond, false
			}
			cond.Kind = CondHasCount
			cond.Count = n
			return cond, true
		case ATTRIBUTE:
			name, ok := p.shouldBe(STRING)
			if !ok {
				return cond, false
			}
			if _, ok := p.shouldBe(EQ); !ok {
				return cond, false
			}
			val, ok := p.parseExpr()
			if !ok {
				return cond, false
			}
			cond.Kind = CondHasAttribute
			cond.Attribute = name.Lexeme
			cond.Value = val
			return cond, true
		}
		val, ok := p.parseExpr()
		if !ok {
			return cond, false
		}
		cond.Value = val
		return cond, true

	default:
		p.unexpected(IS, CONTAINS, HAS)
		return cond, false

	}

}

// parseVerifyResponse parses VERIFY RESPONSE STATUS|BODY|HEADERS <op> <expr>.
func (p *parser) parseVerifyResponse(tok Token) Statement {

	p.next() // RESPONSE

	part, ok := p.shouldBe(STATUS, BODY, HEADERS)
	if !ok {
		p.syncBlock()
		return nil
	}

	st := &VerifyResponseStatement{stmtBase: stmtBase{tok.Line}}

	switch part.Kind {
	case STATUS:
		st.Target = RespStatus
	case BODY:
		st.Target = RespBody
	case HEADERS:
		st.Target = RespHeaders
	}

	op, ok := p.shouldBe(IS, CONTAINS, MATCHES)
	if !ok {
		p.syncBlock()
		return nil
	}

	switch op.Kind {
	case IS:
		st.Operator = OpEq
		if _, ok := p.mightBe(NOT); ok {
			st.Operator = OpNeq
		}
	case CONTAINS:
		st.Operator = OpContains
	case MATCHES:
		st.Operator = OpMatches
	}

	val, ok := p.parseExpr()
	if !ok {
		p.syncBlock()
		return nil
	}
	st.Value = val

	return st

}

// parseVerifyScreenshot parses VERIFY SCREENSHOT "name" with an
// optional tolerance preset and overrides.
func (p *parser) parseVerifyScreenshot(tok Token) Statement {

	p.next() // SCREENSHOT

	name, ok := p.shouldBe(STRING)
	if !ok {
		p.syncBlock()
		return nil
	}

	st := &VerifyScreenshotStatement{stmtBase: stmtBase{tok.Line}, Baseline: name.Lexeme, Preset: PresetBalanced}

	if _, ok := p.mightBe(WITH); !ok {
		return st
	}

	preset, ok := p.shouldBe(STRICT, BALANCED, RELAXED)
	if !ok {
		p.syncBlock()
		return st
	}

	switch preset.Kind {
	case STRICT:
		st.Preset = PresetStrict
	case RELAXED:
		st.Preset = PresetRelaxed
	}

	for p.at(THRESHOLD, MAXDIFFPIXELS, MAXDIFFRATIO) {
		switch p.next().Kind {
		case THRESHOLD:
			if f, ok := p.parseFloat(); ok {
				st.Threshold = &f
			}
		case MAXDIFFPIXELS:
			if n, ok := p.parseInt(); ok {
				st.MaxDiffPixels = &n
			}
		case MAXDIFFRATIO:
			if f, ok := p.parseFloat(); ok {
				st.MaxDiffRatio = &f
			}
		}
	}

	return st

}

// parseCondition parses the predicate of an IF statement: either a
// target state condition or an expression comparison.
func (p *parser) parseCondition() (Condition, bool) {

	// Page.field IS ... reads as a target condition.
	if (p.at(IDENT) || p.peek().Kind.isKeyword()) && p.peekAt(1).Kind == DOT && p.peekAt(3).Kind == IS {
		target, ok := p.parseTarget()
		if !ok {
			return Condition{}, false
		}
		return p.parseTargetCondition(target)
	}

	left, ok := p.parseExpr()
	if !ok {
		return Condition{}, false
	}

	cond := Condition{Kind: CondCompare, Left: left}

	op, ok := p.shouldBe(IS, EQ, CONTAINS, MATCHES)
	if !ok {
		return cond, false
	}

	switch op.Kind {
	case CONTAINS:
		cond.Operator = OpContains
	case MATCHES:
		cond.Operator = OpMatches
	default:
		cond.Operator = OpEq
		if op.Kind == IS {
			if _, ok := p.mightBe(NOT); ok {
				cond.Operator = OpNeq
			}
		}
	}

	right, ok := p.parseExpr()
	if !ok {
		return cond, false
	}
	cond.Value = right

	return cond, true

}
