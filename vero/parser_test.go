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

func TestParsePage(t *testing.T) {

	Convey("a page with fields, a variable, and an action", t, func() {

		src := `
PAGE LoginPage ("https://app/login") {
  FIELD email = TEXTBOX "Email"
  FIELD submit = BUTTON "Sign In"
  VARIABLE retries = 3
  login(user) {
    FILL LoginPage.email WITH user
    CLICK LoginPage.submit
  }
}
`
		prog, errs := ParseSource(src)
		So(errs, ShouldBeEmpty)
		So(prog.Pages, ShouldHaveLength, 1)

		pg := prog.Pages[0]
		So(pg.Name, ShouldEqual, "LoginPage")
		So(pg.URL, ShouldEqual, "https://app/login")
		So(pg.Fields, ShouldHaveLength, 2)
		So(pg.Fields[0].Name, ShouldEqual, "email")
		So(pg.Fields[0].Selector, ShouldResemble, Selector{Kind: SelTextbox, Arg: "Email"})
		So(pg.Fields[1].Selector, ShouldResemble, Selector{Kind: SelButton, Arg: "Sign In"})
		So(pg.Variables, ShouldHaveLength, 1)
		So(pg.Variables[0].Name, ShouldEqual, "retries")
		So(pg.Actions, ShouldHaveLength, 1)
		So(pg.Actions[0].Name, ShouldEqual, "login")
		So(pg.Actions[0].Parameters, ShouldResemble, []string{"user"})
		So(pg.Actions[0].Statements, ShouldHaveLength, 2)

	})

	Convey("every selector kind parses", t, func() {

		selectors := map[string]SelectorKind{
			"BUTTON":      SelButton,
			"TEXTBOX":     SelTextbox,
			"LINK":        SelLink,
			"CHECKBOX":    SelCheckbox,
			"HEADING":     SelHeading,
			"COMBOBOX":    SelCombobox,
			"RADIO":       SelRadio,
			"ROLE":        SelRole,
			"LABEL":       SelLabel,
			"PLACEHOLDER": SelPlaceholder,
			"TESTID":      SelTestID,
			"TEXT":        SelText,
			"ALT":         SelAlt,
			"TITLE":       SelTitle,
			"CSS":         SelCSS,
			"XPATH":       SelXPath,
		}

		for kw, kind := range selectors {
			prog, errs := ParseSource("PAGE P { FIELD f = " + kw + " \"x\" }")
			So(errs, ShouldBeEmpty)
			So(prog.Pages[0].Fields[0].Selector.Kind, ShouldEqual, kind)
		}

	})

	Convey("a PAGEACTIONS block records its target page", t, func() {

		src := `
PAGEACTIONS CartActions FOR ProductsPage {
  addItem() {
    CLICK ProductsPage.addToCart
  }
}
`
		prog, errs := ParseSource(src)
		So(errs, ShouldBeEmpty)
		So(prog.PageActions, ShouldHaveLength, 1)
		So(prog.PageActions[0].Name, ShouldEqual, "CartActions")
		So(prog.PageActions[0].ForPage, ShouldEqual, "ProductsPage")
		So(prog.PageActions[0].Actions, ShouldHaveLength, 1)

	})

}

func TestParseFeature(t *testing.T) {

	Convey("a feature with uses, hooks, tags and annotations", t, func() {

		src := `
FEATURE Login {
  USE LoginPage
  USE CartActions

  BEFORE ALL {
    LOG "starting"
  }
  AFTER EACH {
    REFRESH
  }

  @smoke @slow
  SCENARIO "User logs in" {
    OPEN "https://app/"
  }

  @skip
  SCENARIO Bare_name {
    REFRESH
  }
}
`
		prog, errs := ParseSource(src)
		So(errs, ShouldBeEmpty)
		So(prog.Features, ShouldHaveLength, 1)

		f := prog.Features[0]
		So(f.Name, ShouldEqual, "Login")
		So(f.Uses, ShouldHaveLength, 2)
		So(f.Uses[0].Name, ShouldEqual, "LoginPage")
		So(f.Hooks, ShouldHaveLength, 2)
		So(f.Hooks[0].Type, ShouldEqual, BeforeAll)
		So(f.Hooks[1].Type, ShouldEqual, AfterEach)
		So(f.Scenarios, ShouldHaveLength, 2)

		first := f.Scenarios[0]
		So(first.Name, ShouldEqual, "User logs in")
		So(first.Tags, ShouldResemble, []string{"smoke"})
		So(first.Annotations, ShouldResemble, []Annotation{AnnSlow})

		second := f.Scenarios[1]
		So(second.Name, ShouldEqual, "Bare_name")
		So(second.Annotations, ShouldResemble, []Annotation{AnnSkip})

	})

	Convey("fixtures and DEPENDS ON parse", t, func() {

		src := `
FEATURE Orders {
  FIXTURE session {
    SETUP {
      LOG "setup"
    }
    TEARDOWN {
      LOG "teardown"
    }
  }

  SCENARIO "Place order" DEPENDS ON "User logs in" {
    REFRESH
  }
}
`
		prog, errs := ParseSource(src)
		So(errs, ShouldBeEmpty)

		f := prog.Features[0]
		So(f.Fixtures, ShouldHaveLength, 1)
		So(f.Fixtures[0].Name, ShouldEqual, "session")
		So(f.Fixtures[0].Setup, ShouldHaveLength, 1)
		So(f.Fixtures[0].Teardown, ShouldHaveLength, 1)
		So(f.Scenarios[0].DependsOn, ShouldResemble, []string{"User logs in"})

	})

}

func scenarioOf(t *testing.T, body string) ([]Statement, []string) {

	src := "FEATURE F {\n  SCENARIO S {\n" + body + "\n  }\n}"
	prog, errs := ParseSource(src)

	var codes []string
	for _, d := range errs {
		codes = append(codes, d.Code)
	}

	if len(prog.Features) == 0 || len(prog.Features[0].Scenarios) == 0 {
		return nil, codes
	}

	return prog.Features[0].Scenarios[0].Statements, codes

}

func TestParseStatements(t *testing.T) {

	Convey("simple statements parse to their variants", t, func() {

		stmts, codes := scenarioOf(t, `
    CLICK LoginPage.submit
    FILL LoginPage.email WITH "a@b.com"
    OPEN "https://app/"
    CHECK Prefs.optIn
    UNCHECK Prefs.optIn
    SELECT "CA" FROM Address.state
    HOVER Menu.profile
    PRESS "Enter"
    SCROLL TO Footer.legal
    WAIT 2 SECONDS
    WAIT 250 MILLISECONDS
    REFRESH
    CLEAR LoginPage.email
    UPLOAD "a.png" TO Profile.avatar
    DRAG Board.card TO Board.done
    LOG "hello"
    SCREENSHOT "after login"
    PERFORM LoginPage.login WITH "a@b.com", "secret"
`)
		So(codes, ShouldBeEmpty)
		So(stmts, ShouldHaveLength, 18)

		So(stmts[0], ShouldHaveSameTypeAs, &ClickStatement{})
		So(stmts[1], ShouldHaveSameTypeAs, &FillStatement{})
		So(stmts[2], ShouldHaveSameTypeAs, &OpenStatement{})
		So(stmts[5], ShouldHaveSameTypeAs, &SelectStatement{})
		So(stmts[9].(*WaitStatement).Amount, ShouldEqual, 2)
		So(stmts[9].(*WaitStatement).Milliseconds, ShouldBeFalse)
		So(stmts[10].(*WaitStatement).Milliseconds, ShouldBeTrue)
		So(stmts[17].(*PerformStatement).Arguments, ShouldHaveLength, 2)

	})

	Convey("control flow statements nest", t, func() {

		stmts, codes := scenarioOf(t, `
    IF LoginPage.error IS VISIBLE {
      LOG "visible"
    } ELSE {
      LOG "hidden"
    }
    REPEAT 3 TIMES {
      REFRESH
    }
    FOR EACH user IN users {
      LOG user
    }
    TRY {
      CLICK LoginPage.submit
    } CATCH {
      LOG "failed"
    }
`)
		So(codes, ShouldBeEmpty)
		So(stmts, ShouldHaveLength, 4)

		iff := stmts[0].(*IfStatement)
		So(iff.Condition.Kind, ShouldEqual, CondVisible)
		So(iff.Then, ShouldHaveLength, 1)
		So(iff.Else, ShouldHaveLength, 1)

		rep := stmts[1].(*RepeatStatement)
		So(rep.Count, ShouldEqual, 3)

		each := stmts[2].(*ForEachStatement)
		So(each.ItemVariable, ShouldEqual, "user")
		So(each.CollectionVariable, ShouldEqual, "users")

		try := stmts[3].(*TryCatchStatement)
		So(try.Try, ShouldHaveLength, 1)
		So(try.Catch, ShouldHaveLength, 1)

	})

	Convey("verify statements cover every shape", t, func() {

		stmts, codes := scenarioOf(t, `
    VERIFY URL CONTAINS "dashboard"
    VERIFY TITLE IS "Home"
    VERIFY LoginPage.error IS NOT VISIBLE
    VERIFY LoginPage.banner CONTAINS "Welcome"
    VERIFY LoginPage.email HAS VALUE "a@b.com"
    VERIFY Cart.items HAS COUNT 3
    VERIFY Nav.logo HAS ATTRIBUTE "alt" = "Logo"
    VERIFY SCREENSHOT "home" WITH STRICT
    VERIFY SCREENSHOT "home" WITH RELAXED THRESHOLD 0.5 MAX_DIFF_PIXELS 10 MAX_DIFF_RATIO 0.02
`)
		So(codes, ShouldBeEmpty)
		So(stmts, ShouldHaveLength, 9)

		So(stmts[0].(*VerifyStatement).Condition.Kind, ShouldEqual, CondURLContains)
		So(stmts[1].(*VerifyStatement).Condition.Kind, ShouldEqual, CondTitleIs)

		neg := stmts[2].(*VerifyStatement).Condition
		So(neg.Kind, ShouldEqual, CondVisible)
		So(neg.Negated, ShouldBeTrue)

		So(stmts[5].(*VerifyStatement).Condition.Count, ShouldEqual, 3)
		So(stmts[6].(*VerifyStatement).Condition.Attribute, ShouldEqual, "alt")

		strict := stmts[7].(*VerifyScreenshotStatement)
		So(strict.Preset, ShouldEqual, PresetStrict)
		So(strict.Threshold, ShouldBeNil)

		over := stmts[8].(*VerifyScreenshotStatement)
		So(over.Preset, ShouldEqual, PresetRelaxed)
		So(*over.Threshold, ShouldEqual, 0.5)
		So(*over.MaxDiffPixels, ShouldEqual, 10)
		So(*over.MaxDiffRatio, ShouldEqual, 0.02)

	})

	Convey("api, mock and response statements parse", t, func() {

		stmts, codes := scenarioOf(t, `
    API POST "https://x/api/users" WITH BODY "{}" AND HEADERS "{\"a\":\"b\"}"
    VERIFY RESPONSE STATUS IS 201
    VERIFY RESPONSE BODY CONTAINS "id"
    MOCK API "https://x/api" WITH STATUS 500 AND BODY "{\"error\":\"e\"}"
`)
		So(codes, ShouldBeEmpty)
		So(stmts, ShouldHaveLength, 4)

		api := stmts[0].(*ApiRequestStatement)
		So(api.Method, ShouldEqual, "POST")
		So(api.Body, ShouldNotBeNil)
		So(api.Headers, ShouldNotBeNil)

		status := stmts[1].(*VerifyResponseStatement)
		So(status.Target, ShouldEqual, RespStatus)
		So(status.Operator, ShouldEqual, OpEq)

		body := stmts[2].(*VerifyResponseStatement)
		So(body.Target, ShouldEqual, RespBody)
		So(body.Operator, ShouldEqual, OpContains)

		mock := stmts[3].(*MockApiStatement)
		So(mock.URL, ShouldEqual, "https://x/api")
		So(mock.Status, ShouldEqual, 500)

	})

	Convey("the five tab statements parse bit-exactly", t, func() {

		stmts, codes := scenarioOf(t, `
    SWITCH TO NEW TAB
    SWITCH TO NEW TAB "https://x/"
    SWITCH TO TAB 2
    OPEN "https://x/" IN NEW TAB
    CLOSE TAB
`)
		So(codes, ShouldBeEmpty)
		So(stmts, ShouldHaveLength, 5)

		So(stmts[0].(*SwitchToNewTabStatement).URL, ShouldEqual, "")
		So(stmts[1].(*SwitchToNewTabStatement).URL, ShouldEqual, "https://x/")
		So(stmts[2].(*SwitchToTabStatement).Index, ShouldEqual, 2)
		So(stmts[3].(*OpenInNewTabStatement).URL, ShouldEqual, "https://x/")
		So(stmts[4], ShouldHaveSameTypeAs, &CloseTabStatement{})

	})

	Convey("unknown tab forms report VERO-210 with a suggestion", t, func() {
		_, codes := scenarioOf(t, "    SWITCH TAB 2")
		So(codes, ShouldContain, "VERO-210")
	})

}

func TestParserRecovery(t *testing.T) {

	Convey("a bad statement does not take down the scenario", t, func() {

		stmts, codes := scenarioOf(t, `
    CLICK LoginPage.submit
    frobnicate the widget
    FILL LoginPage.email WITH "x"
`)
		So(codes, ShouldContain, "VERO-200")
		So(stmts, ShouldHaveLength, 2)

	})

	Convey("an unclosed block reports VERO-201 and still returns the AST", t, func() {
		prog, errs := ParseSource("FEATURE F {\n  SCENARIO S {\n    REFRESH\n")
		var codes []string
		for _, d := range errs {
			codes = append(codes, d.Code)
		}
		So(codes, ShouldContain, "VERO-201")
		So(prog.Features, ShouldHaveLength, 1)
		So(prog.Features[0].Scenarios[0].Statements, ShouldHaveLength, 1)
	})

	Convey("diagnostics are bounded by the token count", t, func() {
		src := strings.Repeat("%\n", 50)
		toks, lexErrs := Lex(src)
		_, parseErrs := Parse(toks)
		So(len(lexErrs)+len(parseErrs), ShouldBeLessThanOrEqualTo, len(toks))
	})

	Convey("garbage at the top level skips to the next declaration", t, func() {
		prog, errs := ParseSource("wibble wobble\nPAGE P {\n  FIELD f = CSS \"#x\"\n}")
		So(len(errs), ShouldBeGreaterThan, 0)
		So(prog.Pages, ShouldHaveLength, 1)
	})

}

func TestParseError(t *testing.T) {

	Convey("unexpected tokens name the expected set", t, func() {
		_, errs := ParseSource("PAGE P { FIELD f TEXTBOX \"x\" }")
		So(len(errs), ShouldBeGreaterThan, 0)
		So(errs[0].Code, ShouldEqual, "VERO-200")
		So(errs[0].HowToFix, ShouldContainSubstring, "Expected one of")
		So(errs[0].HowToFix, ShouldContainSubstring, "=")
	})

}
