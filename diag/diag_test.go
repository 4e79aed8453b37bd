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

package diag

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {

	Convey("compile-time categories are never retryable", t, func() {
		for code, e := range catalog {
			switch e.Category {
			case CategoryLexer, CategoryParser, CategoryValidation:
				So(e.Retryable, ShouldBeFalse)
				So(e.Flakiness, ShouldEqual, FlakinessPermanent)
				_ = code
			}
		}
	})

	Convey("every entry carries a title and a fix", t, func() {
		for code, e := range catalog {
			So(e.Title, ShouldNotBeEmpty)
			So(e.HowToFix, ShouldNotBeEmpty)
			So(code, ShouldStartWith, "VERO-")
		}
	})

	Convey("codes live in their category ranges", t, func() {
		ranges := map[string]Category{
			"VERO-1": CategoryLexer,
			"VERO-2": CategoryParser,
			"VERO-3": CategoryValidation,
			"VERO-4": CategoryLocator,
			"VERO-5": CategoryAssertion,
			"VERO-6": CategoryNavigation,
			"VERO-7": CategoryInteraction,
			"VERO-8": CategoryBrowser,
			"VERO-9": CategoryNetwork,
		}
		for code, e := range catalog {
			if code == "VERO-000" {
				continue
			}
			want, ok := ranges[code[:6]]
			So(ok, ShouldBeTrue)
			So(e.Category, ShouldEqual, want)
		}
	})

	Convey("an unknown code produces an internal diagnostic", t, func() {
		d := New("VERO-424242", Location{Line: 1})
		So(d.Code, ShouldEqual, "VERO-000")
	})

}

func TestMarker(t *testing.T) {

	Convey("markers map severities and concatenate the explanation", t, func() {

		d := New("VERO-302", Location{Line: 4, Column: 10})
		d.Detail("Page 'LoginPage' has no field 'emial'")
		d.Suggest("Did you mean 'email'?")

		m := ToMarker(d)
		So(m.Severity, ShouldEqual, 8)
		So(m.StartLine, ShouldEqual, 4)
		So(m.StartCol, ShouldEqual, 10)
		So(m.Code, ShouldEqual, "VERO-302")
		So(m.Source, ShouldEqual, "vero")

		parts := strings.Split(m.Message, "\n\n")
		So(parts, ShouldHaveLength, 3)
		So(parts[0], ShouldEqual, "Unknown field")
		So(parts[1], ShouldContainSubstring, "emial")
		So(parts[2], ShouldContainSubstring, "• Did you mean 'email'?")

	})

	Convey("warning, info and hint severities map to 4, 2 and 1", t, func() {
		So(markerSeverities[SeverityWarning], ShouldEqual, 4)
		So(markerSeverities[SeverityInfo], ShouldEqual, 2)
		So(markerSeverities[SeverityHint], ShouldEqual, 1)
	})

	Convey("batches adapt in order and codes classify", t, func() {

		ms := ToMarkers([]Diagnostic{
			*New("VERO-101", Location{Line: 1}),
			*New("VERO-310", Location{Line: 2}),
		})
		So(ms, ShouldHaveLength, 2)
		So(ms[0].Severity, ShouldEqual, 8)
		So(ms[1].Severity, ShouldEqual, 4)

		cat, sev, ok := Lookup("VERO-601")
		So(ok, ShouldBeTrue)
		So(cat, ShouldEqual, CategoryNavigation)
		So(sev, ShouldEqual, SeverityError)

		_, _, ok = Lookup("VERO-999999")
		So(ok, ShouldBeFalse)

	})

}

func TestSink(t *testing.T) {

	Convey("a sink accumulates and classifies diagnostics", t, func() {

		s := NewSink()
		So(s.HasErrors(), ShouldBeFalse)

		s.Push(New("VERO-310", Location{Line: 1}))
		So(s.HasErrors(), ShouldBeFalse)

		s.Push(New("VERO-200", Location{Line: 2}))
		So(s.HasErrors(), ShouldBeTrue)
		So(s.Count(), ShouldEqual, 2)

	})

}

func TestFixes(t *testing.T) {

	Convey("missing USE fixes insert at line 2", t, func() {

		m := Marker{Code: "VERO-301", StartLine: 5, StartCol: 7}
		fixes := Fixes(m, FixContext{DefinedPages: []string{"LoginPage"}})

		So(fixes, ShouldHaveLength, 1)
		So(fixes[0].Title, ShouldEqual, "Insert 'use LoginPage'")
		So(fixes[0].Edits[0].Range.StartLine, ShouldEqual, 2)
		So(fixes[0].Edits[0].Text, ShouldEqual, "  use LoginPage\n")

	})

	Convey("undefined variable fixes insert a load above", t, func() {

		m := Marker{Code: "VERO-203", StartLine: 3, StartCol: 19}
		fixes := Fixes(m, FixContext{LineContent: "    for each u in users {"})

		So(fixes, ShouldHaveLength, 1)
		So(fixes[0].Edits[0].Text, ShouldContainSubstring, "load users from \"table_name\"")

	})

	Convey("keyword typos rewrite with the minimal edit", t, func() {

		m := Marker{Code: "VERO-200", StartLine: 7}
		fixes := Fixes(m, FixContext{LineContent: "    clik LoginPage.submit"})

		So(fixes, ShouldHaveLength, 1)
		So(fixes[0].Title, ShouldEqual, "Replace 'clik' with 'click'")

		edit := fixes[0].Edits[0]
		So(edit.Range.StartLine, ShouldEqual, 7)
		// The edit touches only the typo, not the whole line.
		So(edit.Range.EndCol-edit.Range.StartCol, ShouldBeLessThanOrEqualTo, len("clik")+1)

	})

	Convey("the typo table holds at least thirty entries", t, func() {
		So(len(typos), ShouldBeGreaterThanOrEqualTo, 30)
	})

	Convey("case is preserved when correcting a typo", t, func() {

		m := Marker{Code: "VERO-200", StartLine: 1}
		fixes := Fixes(m, FixContext{LineContent: "CLIK LoginPage.submit"})

		So(fixes, ShouldHaveLength, 1)
		So(fixes[0].Title, ShouldContainSubstring, "'CLICK'")

	})

	Convey("naming fixes offer a rename", t, func() {

		m := Marker{Code: "VERO-310", StartLine: 1, StartCol: 6}
		fixes := Fixes(m, FixContext{LineContent: "page login_page {"})

		So(len(fixes), ShouldBeGreaterThanOrEqualTo, 1)
		So(fixes[0].Title, ShouldContainSubstring, "Rename 'login_page'")

	})

	Convey("an unclosed block offers a closing brace", t, func() {

		m := Marker{Code: "VERO-201", StartLine: 9}
		fixes := Fixes(m, FixContext{LineContent: "page P {"})

		So(fixes, ShouldHaveLength, 1)
		So(fixes[0].Edits[0].Text, ShouldEqual, "}\n")
		So(fixes[0].Edits[0].Range.StartLine, ShouldEqual, 10)

	})

}
