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

package compile

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPipeline(t *testing.T) {

	Convey("a clean unit runs every phase and is valid", t, func() {

		u := Compile("unit", `
PAGE LoginPage {
  FIELD email = TEXTBOX "Email"
}
FEATURE Login {
  USE LoginPage
  SCENARIO "ok" {
    FILL LoginPage.email WITH "a@b.com"
  }
}
`)
		So(u.Phase, ShouldEqual, Done)
		So(u.Valid(), ShouldBeTrue)
		So(u.Program, ShouldNotBeNil)
		So(u.Table, ShouldNotBeNil)
		So(u.Output.Pages, ShouldHaveLength, 1)
		So(u.Output.Tests, ShouldHaveLength, 1)

	})

	Convey("phases never short-circuit on user errors", t, func() {

		u := Compile("unit", `
FEATURE Login {
  USE MissingPage
  SCENARIO "broken" {
    FILL MissingPage.nope WITH "x
  }
}
`)
		So(u.Phase, ShouldEqual, Done)
		So(u.Valid(), ShouldBeFalse)

		// The lexer error did not stop validation or transpilation.
		So(u.Table, ShouldNotBeNil)
		So(u.Output, ShouldNotBeNil)
		So(len(u.Output.Tests), ShouldEqual, 1)

		var codes []string
		for _, d := range u.Sink.All() {
			codes = append(codes, d.Code)
		}
		So(codes, ShouldContain, "VERO-101")
		So(codes, ShouldContain, "VERO-301")

	})

	Convey("separately compiled units are independent", t, func() {

		a := Compile("a", `PAGE P { FIELD f = CSS "#x" }`)
		b := Compile("b", `PAGE Q { FIELD g = CSS "#y" }`)

		So(a.Table.IsPage("P"), ShouldBeTrue)
		So(a.Table.IsPage("Q"), ShouldBeFalse)
		So(b.Table.IsPage("Q"), ShouldBeTrue)

	})

}
