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

var annotationKinds = map[Kind]Annotation{
	SKIP:   AnnSkip,
	ONLY:   AnnOnly,
	SLOW:   AnnSlow,
	FIXME:  AnnFixme,
	SERIAL: AnnSerial,
}

// parseFeature parses FEATURE name { (use | hook | fixture | scenario)* }.
func (p *parser) parseFeature() *Feature {

	tok := p.next() // FEATURE

	f := &Feature{Line: tok.Line}

	name, ok := p.parseName()
	if !ok {
		p.syncTopLevel()
		return nil
	}
	f.Name = name

	open, ok := p.shouldBe(LBRACE)
	if !ok {
		p.syncTopLevel()
		return f
	}

	for {
		switch {

		case p.at(RBRACE):
			p.next()
			return f

		case p.at(EOF):
			p.unclosed(open)
			return f

		case p.at(USE):
			use := p.next()
			if n, ok := p.parseName(); ok {
				f.Uses = append(f.Uses, &UseRef{Name: n, Line: use.Line})
			}

		case p.at(BEFORE, AFTER):
			if h := p.parseHook(); h != nil {
				f.Hooks = append(f.Hooks, h)
			}

		case p.at(FIXTURE):
			if fx := p.parseFixture(); fx != nil {
				f.Fixtures = append(f.Fixtures, fx)
			}

		case p.at(AT, SCENARIO):
			if sc := p.parseScenario(); sc != nil {
				f.Scenarios = append(f.Scenarios, sc)
			}

		default:
			p.unexpected(USE, BEFORE, AFTER, FIXTURE, SCENARIO, RBRACE)
			p.syncBlock()
			if p.at(RBRACE) {
				p.next()
				return f
			}
			if p.at(EOF) {
				return f
			}
		}
	}

}

// parseHook parses BEFORE|AFTER ALL|EACH { statements }.
func (p *parser) parseHook() *Hook {

	lead := p.next() // BEFORE or AFTER

	scope, ok := p.shouldBe(ALL, EACH)
	if !ok {
		p.syncBlock()
		return nil
	}

	h := &Hook{Line: lead.Line}

	switch {
	case lead.Kind == BEFORE && scope.Kind == ALL:
		h.Type = BeforeAll
	case lead.Kind == BEFORE && scope.Kind == EACH:
		h.Type = BeforeEach
	case lead.Kind == AFTER && scope.Kind == ALL:
		h.Type = AfterAll
	default:
		h.Type = AfterEach
	}

	h.Statements = p.parseBlock()

	return h

}

// parseFixture parses FIXTURE name { SETUP { } TEARDOWN { } }.
func (p *parser) parseFixture() *Fixture {

	tok := p.next() // FIXTURE

	fx := &Fixture{Line: tok.Line}

	name, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}
	fx.Name = name

	open, ok := p.shouldBe(LBRACE)
	if !ok {
		p.syncBlock()
		return fx
	}

	for {
		switch {
		case p.at(RBRACE):
			p.next()
			return fx
		case p.at(EOF):
			p.unclosed(open)
			return fx
		case p.at(SETUP):
			p.next()
			fx.Setup = p.parseBlock()
		case p.at(TEARDOWN):
			p.next()
			fx.Teardown = p.parseBlock()
		default:
			p.unexpected(SETUP, TEARDOWN, RBRACE)
			p.syncBlock()
			if p.at(RBRACE) {
				p.next()
				return fx
			}
			if p.at(EOF) {
				return fx
			}
		}
	}

}

// parseScenario parses (@tag | @annotation)* SCENARIO name
// [DEPENDS ON "name"] { statements }. The name may be bare or quoted;
// both forms are treated uniformly downstream.
func (p *parser) parseScenario() *Scenario {

	sc := &Scenario{Line: p.peek().Line}

	// The lexer emits @tag as two tokens; the parser joins them. A
	// leading @ always reads the next token as a tag or annotation,
	// so a scenario name can never be taken for one.
	for p.at(AT) {
		p.next()
		tok := p.peek()
		if tok.Kind != IDENT && !tok.Kind.isKeyword() {
			p.unexpected(IDENT)
			break
		}
		p.next()
		if ann, ok := annotationKinds[tok.Kind]; ok {
			sc.Annotations = append(sc.Annotations, ann)
		} else {
			sc.Tags = append(sc.Tags, tok.Lexeme)
		}
	}

	if _, ok := p.shouldBe(SCENARIO); !ok {
		p.syncBlock()
		return nil
	}

	switch {
	case p.at(STRING):
		sc.Name = p.next().Lexeme
	default:
		name, ok := p.parseName()
		if !ok {
			p.syncBlock()
			return nil
		}
		sc.Name = name
	}

	for p.at(DEPENDS) {
		p.next()
		if _, ok := p.shouldBe(ON); !ok {
			break
		}
		if dep, ok := p.shouldBe(STRING); ok {
			sc.DependsOn = append(sc.DependsOn, dep.Lexeme)
		}
	}

	sc.Statements = p.parseBlock()

	return sc

}
