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

// selector kind keywords in source form.
var selectorKinds = map[Kind]SelectorKind{
	BUTTON:      SelButton,
	TEXTBOX:     SelTextbox,
	LINK:        SelLink,
	CHECKBOX:    SelCheckbox,
	HEADING:     SelHeading,
	COMBOBOX:    SelCombobox,
	RADIO:       SelRadio,
	ROLE:        SelRole,
	LABEL:       SelLabel,
	PLACEHOLDER: SelPlaceholder,
	TESTID:      SelTestID,
	TEXT:        SelText,
	ALT:         SelAlt,
	TITLE:       SelTitle,
	CSS:         SelCSS,
	XPATH:       SelXPath,
}

var selectorLeads = []Kind{
	BUTTON, TEXTBOX, LINK, CHECKBOX, HEADING, COMBOBOX, RADIO,
	ROLE, LABEL, PLACEHOLDER, TESTID, TEXT, ALT, TITLE, CSS, XPATH,
}

// parsePage parses PAGE name [("url")] { members }.
func (p *parser) parsePage() *Page {

	tok := p.next() // PAGE

	page := &Page{Line: tok.Line}

	name, ok := p.parseName()
	if !ok {
		p.syncTopLevel()
		return nil
	}
	page.Name = name

	if _, ok := p.mightBe(LPAREN); ok {
		if url, ok := p.shouldBe(STRING); ok {
			page.URL = url.Lexeme
		}
		p.shouldBe(RPAREN)
	}

	open, ok := p.shouldBe(LBRACE)
	if !ok {
		p.syncTopLevel()
		return page
	}

	for {
		switch {

		case p.at(RBRACE):
			p.next()
			return page

		case p.at(EOF):
			p.unclosed(open)
			return page

		case p.at(FIELD):
			if f := p.parseField(); f != nil {
				page.Fields = append(page.Fields, f)
			}

		case p.at(VARIABLE):
			if v := p.parseVariable(); v != nil {
				page.Variables = append(page.Variables, v)
			}

		case p.at(ACTION):
			p.next()
			if a := p.parseAction(); a != nil {
				page.Actions = append(page.Actions, a)
			}

		case (p.at(IDENT) || p.peek().Kind.isKeyword()) && p.peekAt(1).Kind == LPAREN:
			if a := p.parseAction(); a != nil {
				page.Actions = append(page.Actions, a)
			}

		default:
			p.unexpected(FIELD, VARIABLE, IDENT, RBRACE)
			p.syncBlock()
			if p.at(RBRACE) {
				p.next()
				return page
			}
			if !p.at(EOF) {
				continue
			}
			return page
		}
	}

}

// parseField parses FIELD name = selectorLiteral.
func (p *parser) parseField() *Field {

	tok := p.next() // FIELD

	name, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	if _, ok := p.shouldBe(EQ); !ok {
		p.syncBlock()
		return nil
	}

	sel, ok := p.parseSelector()
	if !ok {
		p.syncBlock()
		return nil
	}

	return &Field{Name: name, Selector: sel, Line: tok.Line}

}

// parseSelector parses one of the sixteen selector literals.
func (p *parser) parseSelector() (Selector, bool) {

	tok, ok := p.shouldBe(selectorLeads...)
	if !ok {
		return Selector{}, false
	}

	arg, ok := p.shouldBe(STRING)
	if !ok {
		return Selector{}, false
	}

	return Selector{Kind: selectorKinds[tok.Kind], Arg: arg.Lexeme}, true

}

// parseVariable parses VARIABLE name = expr.
func (p *parser) parseVariable() *Variable {

	tok := p.next() // VARIABLE

	name, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	if _, ok := p.shouldBe(EQ); !ok {
		p.syncBlock()
		return nil
	}

	val, ok := p.parseExpr()
	if !ok {
		p.syncBlock()
		return nil
	}

	return &Variable{Name: name, Value: val, Line: tok.Line}

}

// parseAction parses name(params?) { statements }.
func (p *parser) parseAction() *Action {

	tok := p.peek()

	name, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}

	act := &Action{Name: name, Line: tok.Line}

	if _, ok := p.shouldBe(LPAREN); !ok {
		p.syncBlock()
		return nil
	}

	for !p.at(RPAREN, EOF) {
		param, ok := p.parseName()
		if !ok {
			break
		}
		act.Parameters = append(act.Parameters, param)
		if _, ok := p.mightBe(COMMA); !ok {
			break
		}
	}
	p.shouldBe(RPAREN)

	act.Statements = p.parseBlock()

	return act

}

// parsePageActions parses PAGEACTIONS name FOR page { actions }.
func (p *parser) parsePageActions() *PageActions {

	tok := p.next() // PAGEACTIONS

	pa := &PageActions{Line: tok.Line}

	name, ok := p.parseName()
	if !ok {
		p.syncTopLevel()
		return nil
	}
	pa.Name = name

	if _, ok := p.shouldBe(FOR); !ok {
		p.syncTopLevel()
		return pa
	}

	forPage, ok := p.parseName()
	if !ok {
		p.syncTopLevel()
		return pa
	}
	pa.ForPage = forPage

	open, ok := p.shouldBe(LBRACE)
	if !ok {
		p.syncTopLevel()
		return pa
	}

	for {
		switch {

		case p.at(RBRACE):
			p.next()
			return pa

		case p.at(EOF):
			p.unclosed(open)
			return pa

		case p.at(ACTION):
			p.next()
			if a := p.parseAction(); a != nil {
				pa.Actions = append(pa.Actions, a)
			}

		case (p.at(IDENT) || p.peek().Kind.isKeyword()) && p.peekAt(1).Kind == LPAREN:
			if a := p.parseAction(); a != nil {
				pa.Actions = append(pa.Actions, a)
			}

		default:
			p.unexpected(IDENT, RBRACE)
			p.syncBlock()
			if p.at(RBRACE) {
				p.next()
				return pa
			}
			if p.at(EOF) {
				return pa
			}
		}
	}

}
