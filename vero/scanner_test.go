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
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanner(t *testing.T) {

	Convey("keywords are matched case-insensitively and keep their lexeme", t, func() {
		toks, errs := Lex("page Page PAGE pAgE")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{PAGE, PAGE, PAGE, PAGE, EOF})
		So(toks[0].Lexeme, ShouldEqual, "page")
		So(toks[1].Lexeme, ShouldEqual, "Page")
		So(toks[3].Lexeme, ShouldEqual, "pAgE")
	})

	Convey("identifiers keep case and positions are 1-based", t, func() {
		toks, errs := Lex("LoginPage\n  email")
		So(errs, ShouldBeEmpty)
		So(toks[0].Kind, ShouldEqual, IDENT)
		So(toks[0].Line, ShouldEqual, 1)
		So(toks[0].Column, ShouldEqual, 1)
		So(toks[1].Kind, ShouldEqual, IDENT)
		So(toks[1].Line, ShouldEqual, 2)
		So(toks[1].Column, ShouldEqual, 3)
	})

	Convey("comments produce no tokens", t, func() {
		toks, errs := Lex("click # trailing words\n// whole line\nfill")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{CLICK, FILL, EOF})
	})

	Convey("strings decode their escapes", t, func() {
		toks, errs := Lex(`"a\"b\\c\nd"`)
		So(errs, ShouldBeEmpty)
		So(toks[0].Kind, ShouldEqual, STRING)
		So(toks[0].Lexeme, ShouldEqual, "a\"b\\c\nd")
	})

	Convey("an unterminated string reports VERO-101 at the opening quote", t, func() {
		toks, errs := Lex("fill \"oops\nclick")
		So(len(errs), ShouldEqual, 1)
		So(errs[0].Code, ShouldEqual, "VERO-101")
		So(errs[0].Location.Line, ShouldEqual, 1)
		So(errs[0].Location.Column, ShouldEqual, 6)
		So(errs[0].Suggestions[0].Text, ShouldEqual, "add closing quote")
		So(toks[len(toks)-1].Kind, ShouldEqual, EOF)
	})

	Convey("numbers accept a sign and a single decimal point", t, func() {
		toks, errs := Lex("1 2.5 -3.25")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{NUMBERLIT, NUMBERLIT, NUMBERLIT, EOF})
		So(toks[2].Lexeme, ShouldEqual, "-3.25")
	})

	Convey("a number with two decimal points reports VERO-102", t, func() {
		toks, errs := Lex("1.2.3")
		So(len(errs), ShouldEqual, 1)
		So(errs[0].Code, ShouldEqual, "VERO-102")
		So(toks[0].Kind, ShouldEqual, ILLEGAL)
	})

	Convey("environment references are a single token holding the name", t, func() {
		toks, errs := Lex("{{BASE_URL}}")
		So(errs, ShouldBeEmpty)
		So(toks[0].Kind, ShouldEqual, ENVREF)
		So(toks[0].Lexeme, ShouldEqual, "BASE_URL")
	})

	Convey("an unterminated environment reference reports VERO-103", t, func() {
		_, errs := Lex("{{BASE_URL")
		So(len(errs), ShouldEqual, 1)
		So(errs[0].Code, ShouldEqual, "VERO-103")
	})

	Convey("a lone brace is punctuation, not an env reference", t, func() {
		toks, errs := Lex("{ }")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{LBRACE, RBRACE, EOF})
	})

	Convey("comparison operators lex as single tokens", t, func() {
		toks, errs := Lex("= == != > < >= <=")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{EQ, EQ, NEQ, GT, LT, GTE, LTE, EOF})
	})

	Convey("unknown characters report VERO-100 and lexing continues", t, func() {
		toks, errs := Lex("click ; fill")
		So(len(errs), ShouldEqual, 1)
		So(errs[0].Code, ShouldEqual, "VERO-100")
		So(kinds(toks), ShouldResemble, []Kind{CLICK, ILLEGAL, FILL, EOF})
	})

	Convey("a byte order mark is tolerated", t, func() {
		toks, errs := Lex("\uFEFFpage")
		So(errs, ShouldBeEmpty)
		So(kinds(toks), ShouldResemble, []Kind{PAGE, EOF})
	})

}

func TestScannerTotality(t *testing.T) {

	// Lexing always terminates with EOF, whatever the input.
	inputs := []string{
		"",
		"   \t\n\r ",
		"\"",
		"{{",
		"{{}}",
		"....",
		"@@@@",
		"页面 窗口",
		strings.Repeat("x", 10000),
		"page { \"unterminated",
	}

	Convey("every input yields a stream ending in EOF", t, func() {
		for _, in := range inputs {
			toks, _ := Lex(in)
			So(len(toks), ShouldBeGreaterThan, 0)
			So(toks[len(toks)-1].Kind, ShouldEqual, EOF)
			for _, tok := range toks {
				So(tok.Kind, ShouldNotEqual, COMMENT)
			}
		}
	})

}

// render writes tokens back to source form, for the round-trip check.
func render(toks []Token) string {

	var b strings.Builder

	for _, tok := range toks {
		switch tok.Kind {
		case EOF:
		case STRING:
			v := tok.Lexeme
			v = strings.ReplaceAll(v, "\\", "\\\\")
			v = strings.ReplaceAll(v, "\"", "\\\"")
			v = strings.ReplaceAll(v, "\n", "\\n")
			v = strings.ReplaceAll(v, "\t", "\\t")
			v = strings.ReplaceAll(v, "\r", "\\r")
			b.WriteString("\"" + v + "\"")
		case ENVREF:
			b.WriteString("{{" + tok.Lexeme + "}}")
		default:
			b.WriteString(tok.Lexeme)
		}
		b.WriteByte(' ')
	}

	return b.String()

}

func TestScannerRoundTrip(t *testing.T) {

	sources := []string{
		`PAGE LoginPage { FIELD email = TEXTBOX "Email" }`,
		`ROW user = FIRST Users WHERE state = "CA" ORDER BY name DESC`,
		`WAIT 2.5 SECONDS`,
		`FILL LoginPage.email WITH {{USER_EMAIL}}`,
	}

	Convey("rendering tokens and re-lexing yields the same stream", t, func() {
		for _, src := range sources {
			first, errs := Lex(src)
			So(errs, ShouldBeEmpty)
			second, errs := Lex(render(first))
			So(errs, ShouldBeEmpty)
			So(kinds(second), ShouldResemble, kinds(first))
			for i := range first {
				So(second[i].Lexeme, ShouldEqual, first[i].Lexeme)
			}
		}
	})

}
