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

import (
	"strconv"
	"strings"

	"github.com/abcum/vero/diag"
)

// parser is a hand-written recursive descent parser with single-token
// lookahead and panic-mode recovery.
type parser struct {
	toks     []Token
	pos      int
	errs     []diag.Diagnostic
	reported map[int]bool
}

// Parse builds a best-effort Program from a token stream. Parsing
// always proceeds to EOF; syntax errors are accumulated as
// diagnostics, never more than one per offending token.
func Parse(tokens []Token) (*Program, []diag.Diagnostic) {

	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF, Line: 1, Column: 1})
	}

	p := &parser{toks: tokens, reported: make(map[int]bool)}

	prog := &Program{}

	for !p.at(EOF) {
		switch p.peek().Kind {
		case PAGE:
			if pg := p.parsePage(); pg != nil {
				prog.Pages = append(prog.Pages, pg)
			}
		case PAGEACTIONS:
			if pa := p.parsePageActions(); pa != nil {
				prog.PageActions = append(prog.PageActions, pa)
			}
		case FEATURE:
			if f := p.parseFeature(); f != nil {
				prog.Features = append(prog.Features, f)
			}
		default:
			p.unexpected(PAGE, PAGEACTIONS, FEATURE)
			p.syncTopLevel()
		}
	}

	return prog, p.errs

}

// ParseSource lexes and parses in one step, concatenating the
// diagnostics of both phases.
func ParseSource(source string) (*Program, []diag.Diagnostic) {
	toks, lexErrs := Lex(source)
	prog, parseErrs := Parse(toks)
	return prog, append(lexErrs, parseErrs...)
}

// --------------------------------------------------
// Token plumbing
// --------------------------------------------------

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	return p.toks[p.pos]
}

// peekAt returns the token n positions ahead of the current one.
func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// next consumes and returns the current token. EOF is sticky.
func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

// at reports whether the current token is one of the given kinds.
func (p *parser) at(kinds ...Kind) bool {
	return p.peek().Is(kinds...)
}

// mightBe consumes the current token iff it is one of the expected
// kinds.
func (p *parser) mightBe(expected ...Kind) (Token, bool) {
	if p.at(expected...) {
		return p.next(), true
	}
	return p.peek(), false
}

// shouldBe consumes the current token when it matches, and otherwise
// reports an unexpected-token diagnostic naming the expected set.
func (p *parser) shouldBe(expected ...Kind) (Token, bool) {
	if p.at(expected...) {
		return p.next(), true
	}
	p.unexpected(expected...)
	return p.peek(), false
}

// unexpected emits VERO-200 for the current token, once per token.
func (p *parser) unexpected(expected ...Kind) {

	if p.reported[p.pos] {
		return
	}
	p.reported[p.pos] = true

	tok := p.peek()

	want := make([]string, len(expected))
	for i, k := range expected {
		want[i] = k.String()
	}

	found := tok.Kind.String()
	if tok.Kind == IDENT || tok.Kind == STRING || tok.Kind == NUMBERLIT {
		found += " '" + tok.Lexeme + "'"
	}

	d := diag.New("VERO-200", p.spanOf(tok))
	d.Detail("Found %s where it is not valid", found)
	d.Fix("Expected one of %s; got %s", strings.Join(want, ", "), found)
	p.errs = append(p.errs, *d)

}

// fail emits a specific diagnostic code for the current token, once
// per token, and returns the diagnostic for decoration.
func (p *parser) fail(code string) *diag.Diagnostic {

	tok := p.peek()
	d := diag.New(code, p.spanOf(tok))

	if p.reported[p.pos] {
		return d
	}
	p.reported[p.pos] = true

	p.errs = append(p.errs, *d)
	return &p.errs[len(p.errs)-1]

}

// unclosed reports an unterminated block opened at the given token.
func (p *parser) unclosed(open Token) {
	d := diag.New("VERO-201", p.spanOf(open))
	d.Detail("The block opened at line %d is never closed", open.Line)
	p.errs = append(p.errs, *d)
}

func (p *parser) spanOf(tok Token) diag.Location {
	width := len(tok.Lexeme)
	if width == 0 {
		width = 1
	}
	return diag.Location{
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   tok.Line,
		EndColumn: tok.Column + width,
	}
}

// --------------------------------------------------
// Recovery
// --------------------------------------------------

// statement leading keywords, used as synchronisation points.
var stmtLeads = []Kind{
	CLICK, FILL, OPEN, CHECK, UNCHECK, SELECT, HOVER, PRESS, SCROLL,
	WAIT, REFRESH, CLEAR, UPLOAD, DRAG, LOG, SCREENSHOT, PERFORM,
	RETURN, VARIABLE, IF, REPEAT, FOR, TRY, LOAD, ROW, ROWS, NUMBER,
	TEXT, FLAG, DATA, LIST, API, VERIFY, MOCK, SWITCH, CLOSE,
}

// syncBlock discards tokens until the next closing brace, a token
// that starts a statement on a fresh line, or EOF.
func (p *parser) syncBlock() {

	line := p.peek().Line

	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF, tok.Kind == RBRACE:
			return
		case tok.Line > line && tok.Is(stmtLeads...):
			return
		}
		p.next()
	}

}

// syncTopLevel discards tokens until the next top-level declaration.
func (p *parser) syncTopLevel() {
	for !p.at(EOF, PAGE, PAGEACTIONS, FEATURE) {
		p.next()
	}
}

// --------------------------------------------------
// Shared pieces
// --------------------------------------------------

// parseName accepts an identifier, tolerating keywords used as names.
func (p *parser) parseName() (string, bool) {
	tok := p.peek()
	if tok.Kind == IDENT || tok.Kind.isKeyword() {
		p.next()
		return tok.Lexeme, true
	}
	p.unexpected(IDENT)
	return "", false
}

// parseTarget parses a Page.field reference.
func (p *parser) parseTarget() (Target, bool) {

	tok := p.peek()

	page, ok := p.parseName()
	if !ok {
		return Target{}, false
	}

	if _, ok := p.shouldBe(DOT); !ok {
		return Target{}, false
	}

	field, ok := p.parseName()
	if !ok {
		return Target{}, false
	}

	return Target{Page: page, Field: field, Line: tok.Line}, true

}

// parseInt parses the current token as an integer literal.
func (p *parser) parseInt() (int, bool) {
	tok, ok := p.shouldBe(NUMBERLIT)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		f, ferr := strconv.ParseFloat(tok.Lexeme, 64)
		if ferr != nil {
			return 0, false
		}
		n = int(f)
	}
	return n, true
}

// parseFloat parses the current token as a numeric literal.
func (p *parser) parseFloat() (float64, bool) {
	tok, ok := p.shouldBe(NUMBERLIT)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseBlock parses a braced statement list.
func (p *parser) parseBlock() []Statement {

	open, ok := p.shouldBe(LBRACE)
	if !ok {
		p.syncBlock()
		return nil
	}

	var out []Statement

	for {
		switch {
		case p.at(RBRACE):
			p.next()
			return out
		case p.at(EOF):
			p.unclosed(open)
			return out
		}
		if st := p.parseStatement(); st != nil {
			out = append(out, st)
		}
	}

}
