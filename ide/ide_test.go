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

package ide

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/vero/check"
	"github.com/abcum/vero/vero"
)

const docSrc = `PAGE LoginPage {
  FIELD email = TEXTBOX "Email"
  FIELD submit = BUTTON "Sign In"
  login(user) {
    FILL LoginPage.email WITH user
  }
}
FEATURE Login {
  USE LoginPage
  SCENARIO "User logs in" {
    ROWS users = Users
    FILL LoginPage.email WITH "a@b.com"
    CLICK LoginPage.submit
    FOR EACH u IN users {
      LOG u
    }
  }
}`

func provider(t *testing.T) *Provider {
	prog, errs := vero.ParseSource(docSrc)
	So(errs, ShouldBeEmpty)
	table, _ := check.Validate(prog)
	return NewProvider("login.vero", docSrc, prog, table)
}

func TestHover(t *testing.T) {

	Convey("keywords yield their documentation", t, func() {
		p := provider(t)
		h := p.Hover(12, "fill", "    FILL LoginPage.email WITH \"a@b.com\"")
		So(h, ShouldNotBeNil)
		So(h.HTML, ShouldContainSubstring, "FILL")
		So(h.HTML, ShouldContainSubstring, "Types a value")
	})

	Convey("pages yield their field and action counts", t, func() {
		p := provider(t)
		h := p.Hover(1, "LoginPage", "PAGE LoginPage {")
		So(h, ShouldNotBeNil)
		So(h.HTML, ShouldContainSubstring, "2 field(s)")
		So(h.HTML, ShouldContainSubstring, "1 action(s)")
	})

	Convey("fields yield their selector", t, func() {
		p := provider(t)
		h := p.Hover(12, "email", "    FILL LoginPage.email WITH \"a@b.com\"")
		So(h, ShouldNotBeNil)
		So(h.HTML, ShouldContainSubstring, `TEXTBOX "Email"`)
	})

	Convey("unknown words yield nothing", t, func() {
		p := provider(t)
		So(p.Hover(1, "zzz", "zzz"), ShouldBeNil)
	})

}

func TestDefinition(t *testing.T) {

	Convey("a use reference resolves to the page declaration", t, func() {
		p := provider(t)
		locs := p.Definition(9, "LoginPage", "  USE LoginPage")
		So(locs, ShouldHaveLength, 1)
		So(locs[0].Range.StartLine, ShouldEqual, 1)
	})

	Convey("a field reference resolves to the field line", t, func() {
		p := provider(t)
		locs := p.Definition(12, "email", "    FILL LoginPage.email WITH \"a@b.com\"")
		So(locs, ShouldHaveLength, 1)
		So(locs[0].Range.StartLine, ShouldEqual, 2)
	})

	Convey("a data variable resolves to its binding", t, func() {
		p := provider(t)
		locs := p.Definition(14, "users", "    FOR EACH u IN users {")
		So(locs, ShouldHaveLength, 1)
		So(locs[0].Range.StartLine, ShouldEqual, 11)
	})

}

func TestReferences(t *testing.T) {

	Convey("references classify how each site uses the symbol", t, func() {

		p := provider(t)
		refs := p.References("email", true)

		kinds := make(map[string]int)
		for _, r := range refs {
			kinds[r.Kind]++
		}

		So(kinds["definition"], ShouldEqual, 1)
		So(kinds["fill"], ShouldEqual, 2)

	})

	Convey("page references include uses and clicks", t, func() {

		p := provider(t)
		refs := p.References("LoginPage", false)

		kinds := make(map[string]int)
		for _, r := range refs {
			kinds[r.Kind]++
		}

		So(kinds["use"], ShouldEqual, 1)
		So(kinds["click"], ShouldEqual, 1)
		So(kinds["fill"], ShouldEqual, 2)

	})

}

func TestSymbols(t *testing.T) {

	Convey("the outline nests members under their containers", t, func() {

		p := provider(t)
		syms := p.DocumentSymbols()

		So(syms, ShouldHaveLength, 2)
		So(syms[0].Name, ShouldEqual, "LoginPage")
		So(syms[0].Kind, ShouldEqual, SymClass)
		So(syms[0].Children, ShouldHaveLength, 3)
		So(syms[0].Children[0].Kind, ShouldEqual, SymField)
		So(syms[0].Children[2].Kind, ShouldEqual, SymMethod)

		So(syms[1].Name, ShouldEqual, "Login")
		So(syms[1].Children, ShouldHaveLength, 1)
		So(syms[1].Children[0].Kind, ShouldEqual, SymFunction)

	})

}

func TestFolding(t *testing.T) {

	Convey("every brace block folds", t, func() {

		p := provider(t)
		ranges := p.FoldingRanges()

		// Page, action, feature, scenario, for-each.
		So(len(ranges), ShouldEqual, 5)

		var page *FoldingRange
		for i := range ranges {
			if ranges[i].StartLine == 1 {
				page = &ranges[i]
			}
		}
		So(page, ShouldNotBeNil)
		So(page.EndLine, ShouldEqual, 7)

	})

	Convey("braces inside strings do not pair", t, func() {
		p := NewProvider("x.vero", "PAGE P {\n  FIELD f = CSS \"{weird}\"\n}", nil, nil)
		ranges := p.FoldingRanges()
		So(ranges, ShouldHaveLength, 1)
		So(ranges[0].StartLine, ShouldEqual, 1)
		So(ranges[0].EndLine, ShouldEqual, 3)
	})

}

func TestCompletion(t *testing.T) {

	Convey("after VERIFY the condition keywords are offered", t, func() {
		p := provider(t)
		items := p.Completion(1, len("verify ")+1, "verify ")
		So(len(items), ShouldBeGreaterThan, 5)
		labels := make(map[string]bool)
		for _, it := range items {
			labels[it.Label] = true
		}
		So(labels["is visible"], ShouldBeTrue)
		So(labels["has count"], ShouldBeTrue)
	})

	Convey("after a FIELD assignment the selector kinds are offered", t, func() {
		p := provider(t)
		items := p.Completion(1, len("field f = ")+1, "field f = ")
		labels := make(map[string]bool)
		for _, it := range items {
			labels[it.Label] = true
		}
		So(labels["textbox"], ShouldBeTrue)
		So(labels["xpath"], ShouldBeTrue)
	})

	Convey("after PERFORM the container.action pairs are offered", t, func() {
		p := provider(t)
		items := p.Completion(1, len("perform ")+1, "perform ")
		labels := make(map[string]bool)
		for _, it := range items {
			labels[it.Label] = true
		}
		So(labels["LoginPage.login"], ShouldBeTrue)
	})

	Convey("after $ the in-scope variables are offered", t, func() {
		p := provider(t)
		items := p.Completion(1, 2, "$")
		labels := make(map[string]bool)
		for _, it := range items {
			labels[it.Label] = true
		}
		So(labels["users"], ShouldBeTrue)
		So(labels["u"], ShouldBeTrue)
	})

	Convey("at line start the statement keywords are offered", t, func() {
		p := provider(t)
		items := p.Completion(1, 1, "")
		labels := make(map[string]bool)
		for _, it := range items {
			labels[it.Label] = true
		}
		So(labels["click"], ShouldBeTrue)
		So(labels["switch to new tab"], ShouldBeTrue)
	})

}
