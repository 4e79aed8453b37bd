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

// parseStatement dispatches on the leading token of a statement.
// A nil return means the statement could not be parsed; recovery has
// already advanced past it.
func (p *parser) parseStatement() Statement {

	switch p.peek().Kind {

	case CLICK:
		tok := p.next()
		if t, ok := p.parseTarget(); ok {
			return &ClickStatement{stmtBase{tok.Line}, t}
		}

	case FILL:
		tok := p.next()
		t, ok := p.parseTarget()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(WITH); !ok {
			break
		}
		if v, ok := p.parseExpr(); ok {
			return &FillStatement{stmtBase{tok.Line}, t, v}
		}

	case OPEN:
		return p.parseOpen()

	case CHECK:
		tok := p.next()
		if t, ok := p.parseTarget(); ok {
			return &CheckStatement{stmtBase{tok.Line}, t}
		}

	case UNCHECK:
		tok := p.next()
		if t, ok := p.parseTarget(); ok {
			return &UncheckStatement{stmtBase{tok.Line}, t}
		}

	case SELECT:
		tok := p.next()
		v, ok := p.parseExpr()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(FROM); !ok {
			break
		}
		if t, ok := p.parseTarget(); ok {
			return &SelectStatement{stmtBase{tok.Line}, v, t}
		}

	case HOVER:
		tok := p.next()
		if t, ok := p.parseTarget(); ok {
			return &HoverStatement{stmtBase{tok.Line}, t}
		}

	case PRESS:
		tok := p.next()
		if k, ok := p.parseExpr(); ok {
			return &PressStatement{stmtBase{tok.Line}, k}
		}

	case SCROLL:
		tok := p.next()
		p.mightBe(TO)
		if t, ok := p.parseTarget(); ok {
			return &ScrollStatement{stmtBase{tok.Line}, t}
		}

	case WAIT:
		tok := p.next()
		n, ok := p.parseFloat()
		if !ok {
			break
		}
		unit, ok := p.shouldBe(SECONDS, MILLISECONDS)
		if !ok {
			break
		}
		return &WaitStatement{stmtBase{tok.Line}, n, unit.Kind == MILLISECONDS}

	case REFRESH:
		tok := p.next()
		return &RefreshStatement{stmtBase{tok.Line}}

	case CLEAR:
		tok := p.next()
		if t, ok := p.parseTarget(); ok {
			return &ClearStatement{stmtBase{tok.Line}, t}
		}

	case UPLOAD:
		tok := p.next()
		path, ok := p.parseExpr()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(TO); !ok {
			break
		}
		if t, ok := p.parseTarget(); ok {
			return &UploadStatement{stmtBase{tok.Line}, path, t}
		}

	case DRAG:
		tok := p.next()
		src, ok := p.parseTarget()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(TO); !ok {
			break
		}
		if dst, ok := p.parseTarget(); ok {
			return &DragStatement{stmtBase{tok.Line}, src, dst}
		}

	case LOG:
		tok := p.next()
		if v, ok := p.parseExpr(); ok {
			return &LogStatement{stmtBase{tok.Line}, v}
		}

	case SCREENSHOT:
		tok := p.next()
		if name, ok := p.shouldBe(STRING); ok {
			return &ScreenshotStatement{stmtBase{tok.Line}, name.Lexeme}
		}

	case PERFORM:
		return p.parsePerform()

	case RETURN:
		tok := p.next()
		st := &ReturnStatement{stmtBase: stmtBase{tok.Line}}
		if p.at(RBRACE) || p.peek().Line > tok.Line {
			return st
		}
		if v, ok := p.parseExpr(); ok {
			st.Value = v
		}
		return st

	case VARIABLE:
		tok := p.next()
		name, ok := p.parseName()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(EQ); !ok {
			break
		}
		if v, ok := p.parseExpr(); ok {
			return &SetStatement{stmtBase{tok.Line}, name, v}
		}

	case IF:
		return p.parseIf()

	case REPEAT:
		tok := p.next()
		n, ok := p.parseInt()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(TIMES); !ok {
			break
		}
		return &RepeatStatement{stmtBase{tok.Line}, n, p.parseBlock()}

	case FOR:
		return p.parseForEach()

	case TRY:
		tok := p.next()
		try := p.parseBlock()
		if _, ok := p.shouldBe(CATCH); !ok {
			return &TryCatchStatement{stmtBase{tok.Line}, try, nil}
		}
		return &TryCatchStatement{stmtBase{tok.Line}, try, p.parseBlock()}

	case LOAD:
		tok := p.next()
		name, ok := p.parseName()
		if !ok {
			break
		}
		if _, ok := p.shouldBe(FROM); !ok {
			break
		}
		if table, ok := p.shouldBe(STRING); ok {
			return &LoadStatement{stmtBase{tok.Line}, name, table.Lexeme}
		}

	case ROW, ROWS, NUMBER, TEXT, FLAG, DATA, LIST:
		return p.parseDataQuery()

	case API:
		return p.parseApiRequest()

	case MOCK:
		return p.parseMockApi()

	case VERIFY:
		return p.parseVerify()

	case SWITCH, CLOSE:
		return p.parseTab()

	default:
		p.unexpected(stmtLeads...)
	}

	p.syncBlock()
	return nil

}

// parseOpen parses OPEN <expr>, with the OPEN "url" IN NEW TAB form
// diverted to the tab statement.
func (p *parser) parseOpen() Statement {

	tok := p.next() // OPEN

	url, ok := p.parseExpr()
	if !ok {
		p.syncBlock()
		return nil
	}

	if p.at(IN) {
		lit, isStr := url.(*StringLiteral)
		p.next()
		if _, ok := p.shouldBe(NEW); !ok {
			p.tabInvalid(`OPEN "{url}" IN NEW TAB`)
			p.syncBlock()
			return nil
		}
		if _, ok := p.shouldBe(TAB); !ok {
			p.tabInvalid(`OPEN "{url}" IN NEW TAB`)
			p.syncBlock()
			return nil
		}
		if !isStr {
			p.tabInvalid(`OPEN "{url}" IN NEW TAB`)
			return nil
		}
		return &OpenInNewTabStatement{stmtBase{tok.Line}, lit.Value}
	}

	return &OpenStatement{stmtBase{tok.Line}, url}

}

// parsePerform parses PERFORM Container.action [WITH expr (, expr)*].
func (p *parser) parsePerform() Statement {

	tok := p.next() // PERFORM

	container, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	if _, ok := p.shouldBe(DOT); !ok {
		p.syncBlock()
		return nil
	}

	action, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	st := &PerformStatement{stmtBase{tok.Line}, container, action, nil}

	if _, ok := p.mightBe(WITH); ok {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				p.syncBlock()
				return st
			}
			st.Arguments = append(st.Arguments, arg)
			if _, ok := p.mightBe(COMMA); !ok {
				break
			}
		}
	}

	return st

}

// parseIf parses IF condition { } [ELSE { }].
func (p *parser) parseIf() Statement {

	tok := p.next() // IF

	cond, ok := p.parseCondition()
	if !ok {
		p.syncBlock()
		return nil
	}

	st := &IfStatement{stmtBase: stmtBase{tok.Line}, Condition: cond}
	st.Then = p.parseBlock()

	if _, ok := p.mightBe(ELSE); ok {
		st.Else = p.parseBlock()
	}

	return st

}

// parseForEach parses FOR EACH item IN collection { }.
func (p *parser) parseForEach() Statement {

	tok := p.next() // FOR

	if _, ok := p.shouldBe(EACH); !ok {
		p.syncBlock()
		return nil
	}

	item, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	if _, ok := p.shouldBe(IN); !ok {
		p.syncBlock()
		return nil
	}

	coll, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	return &ForEachStatement{stmtBase{tok.Line}, item, coll, p.parseBlock()}

}
