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

// The tab DSL has exactly five forms:
//
//	SWITCH TO NEW TAB
//	SWITCH TO NEW TAB "url"
//	SWITCH TO TAB n
//	OPEN "url" IN NEW TAB
//	CLOSE TAB
//
// Any other combination is rejected with VERO-210 and a suggestion of
// the closest canonical form.

// parseTab parses the SWITCH and CLOSE tab statements. The OPEN form
// is handled by parseOpen.
func (p *parser) parseTab() Statement {

	tok := p.next() // SWITCH or CLOSE

	if tok.Kind == CLOSE {
		if _, ok := p.mightBe(TAB); !ok {
			p.tabInvalid("CLOSE TAB")
			p.syncBlock()
			return nil
		}
		return &CloseTabStatement{stmtBase{tok.Line}}
	}

	if _, ok := p.mightBe(TO); !ok {
		p.tabInvalid("SWITCH TO NEW TAB")
		p.syncBlock()
		return nil
	}

	switch {

	case p.at(NEW):
		p.next()
		if _, ok := p.mightBe(TAB); !ok {
			p.tabInvalid("SWITCH TO NEW TAB")
			p.syncBlock()
			return nil
		}
		st := &SwitchToNewTabStatement{stmtBase: stmtBase{tok.Line}}
		if p.at(STRING) {
			st.URL = p.next().Lexeme
		}
		return st

	case p.at(TAB):
		p.next()
		n, ok := p.parseInt()
		if !ok {
			p.tabInvalid("SWITCH TO TAB {n}")
			p.syncBlock()
			return nil
		}
		return &SwitchToTabStatement{stmtBase{tok.Line}, n}

	default:
		p.tabInvalid("SWITCH TO NEW TAB")
		p.syncBlock()
		return nil

	}

}

// tabInvalid reports VERO-210 at the current token, suggesting the
// closest canonical tab form.
func (p *parser) tabInvalid(closest string) {
	p.fail("VERO-210").
		Detail("This is not one of the five tab statements").
		Suggest("Did you mean '" + closest + "'?")
}
